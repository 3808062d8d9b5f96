package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func folder(id uint, name string, parent *uint) models.Folder {
	return models.Folder{ID: id, Name: name, ParentID: parent, WorkspaceID: 1}
}

func TestBuildFolderTreeNested(t *testing.T) {
	folders := []models.Folder{
		folder(2, "F2", uintPtr(1)),
		folder(1, "F1", nil),
	}
	files := []models.File{{ID: 10, Filename: "X.pdf", FolderID: uintPtr(2)}}

	tree := BuildFolderTree(folders, files)

	require.Len(t, tree.Roots, 1)
	assert.Equal(t, uint(1), tree.Roots[0].Folder.ID)
	require.Len(t, tree.Roots[0].Children, 1)
	f2 := tree.Roots[0].Children[0]
	assert.Equal(t, uint(2), f2.Folder.ID)
	require.Len(t, f2.Files, 1)
	assert.Equal(t, "X.pdf", f2.Files[0].Filename)
	assert.Empty(t, tree.Roots[0].Files)
	assert.Empty(t, tree.RootFiles)
}

func TestBuildFolderTreeEveryFolderOnceAtItsDepth(t *testing.T) {
	folders := []models.Folder{
		folder(1, "a", nil),
		folder(2, "b", nil),
		folder(3, "a1", uintPtr(1)),
		folder(4, "a2", uintPtr(1)),
		folder(5, "a1x", uintPtr(3)),
		folder(6, "b1", uintPtr(2)),
	}
	files := []models.File{
		{ID: 1, Filename: "root.txt"},
		{ID: 2, Filename: "deep.txt", FolderID: uintPtr(5)},
	}

	tree := BuildFolderTree(folders, files)

	depths := map[uint]int{}
	tree.Walk(func(n *FolderNode, depth int) {
		_, dup := depths[n.Folder.ID]
		assert.False(t, dup, "folder %d placed twice", n.Folder.ID)
		depths[n.Folder.ID] = depth
	})
	assert.Equal(t, map[uint]int{1: 0, 2: 0, 3: 1, 4: 1, 5: 2, 6: 1}, depths)
	assert.Equal(t, 6, tree.Count())
	require.Len(t, tree.RootFiles, 1)
	assert.Equal(t, "root.txt", tree.RootFiles[0].Filename)
}

func TestBuildFolderTreeOrphanBecomesRoot(t *testing.T) {
	folders := []models.Folder{
		folder(1, "kept", nil),
		folder(2, "orphan", uintPtr(99)),
	}
	files := []models.File{{ID: 1, Filename: "lost.png", FolderID: uintPtr(42)}}

	tree := BuildFolderTree(folders, files)

	require.Len(t, tree.Roots, 2)
	assert.Equal(t, "kept", tree.Roots[0].Folder.Name)
	assert.Equal(t, "orphan", tree.Roots[1].Folder.Name)
	require.Len(t, tree.RootFiles, 1)
	assert.Equal(t, "lost.png", tree.RootFiles[0].Filename)
}

func TestBuildFolderTreeCycleTerminates(t *testing.T) {
	folders := []models.Folder{
		folder(1, "root", nil),
		folder(2, "loop-a", uintPtr(3)),
		folder(3, "loop-b", uintPtr(2)),
		folder(4, "self", uintPtr(4)),
	}

	tree := BuildFolderTree(folders, nil)

	assert.Equal(t, 4, tree.Count())
	var rootIDs []uint
	for _, r := range tree.Roots {
		rootIDs = append(rootIDs, r.Folder.ID)
	}
	assert.Equal(t, []uint{1, 4, 2}, rootIDs)
	require.Len(t, tree.Roots[2].Children, 1)
	assert.Equal(t, uint(3), tree.Roots[2].Children[0].Folder.ID)
}

func TestBuildFolderTreeEmpty(t *testing.T) {
	tree := BuildFolderTree(nil, nil)
	assert.True(t, tree.IsEmpty())
	assert.NotNil(t, tree.Roots)
}

func TestBuildFolderTreeSortsSiblingsByName(t *testing.T) {
	folders := []models.Folder{
		folder(1, "Renders", nil),
		folder(2, "Contracts", nil),
		folder(3, "Moodboards", nil),
	}

	tree := BuildFolderTree(folders, nil)

	var names []string
	for _, r := range tree.Roots {
		names = append(names, r.Folder.Name)
	}
	assert.Equal(t, []string{"Contracts", "Moodboards", "Renders"}, names)
}
