package hierarchy

import (
	"sort"

	"github.com/balkashynov/luna/internal/models"
)

// FolderNode is one folder with its attached files and child folders
type FolderNode struct {
	Folder   models.Folder `json:"folder"`
	Files    []models.File `json:"files"`
	Children []*FolderNode `json:"children"`
}

// FolderTree is the folder forest of one (workspace, project) scope
type FolderTree struct {
	Roots     []*FolderNode `json:"roots"`
	RootFiles []models.File `json:"root_files"`
}

// BuildFolderTree reconstructs the folder forest from flat parent pointers.
//
// A folder whose parent is not among folders becomes a root, and so does a
// file whose folder is missing. Folders caught in a parent cycle are never
// reachable from a root; they are promoted one at a time (lowest ID first)
// so every folder is placed exactly once.
func BuildFolderTree(folders []models.Folder, files []models.File) FolderTree {
	byID := make(map[uint]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	children := make(map[uint][]models.Folder)
	var roots []models.Folder
	for _, f := range folders {
		if f.ParentID != nil {
			if _, ok := byID[*f.ParentID]; ok && *f.ParentID != f.ID {
				children[*f.ParentID] = append(children[*f.ParentID], f)
				continue
			}
		}
		roots = append(roots, f)
	}

	filesByFolder := make(map[uint][]models.File)
	var rootFiles []models.File
	for _, file := range files {
		if file.FolderID != nil {
			if _, ok := byID[*file.FolderID]; ok {
				filesByFolder[*file.FolderID] = append(filesByFolder[*file.FolderID], file)
				continue
			}
		}
		rootFiles = append(rootFiles, file)
	}

	visited := make(map[uint]bool, len(folders))
	var build func(f models.Folder) *FolderNode
	build = func(f models.Folder) *FolderNode {
		visited[f.ID] = true
		node := &FolderNode{
			Folder:   f,
			Files:    sortFiles(filesByFolder[f.ID]),
			Children: []*FolderNode{},
		}
		kids := children[f.ID]
		sortFolders(kids)
		for _, child := range kids {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	sortFolders(roots)
	tree := FolderTree{Roots: []*FolderNode{}, RootFiles: sortFiles(rootFiles)}
	for _, f := range roots {
		tree.Roots = append(tree.Roots, build(f))
	}

	// Whatever is left hangs off a cycle.
	for len(visited) < len(byID) {
		var next *models.Folder
		for _, f := range folders {
			if visited[f.ID] {
				continue
			}
			if next == nil || f.ID < next.ID {
				f := f
				next = &f
			}
		}
		tree.Roots = append(tree.Roots, build(*next))
	}

	return tree
}

// Walk visits every folder depth-first, parents before children
func (t FolderTree) Walk(fn func(node *FolderNode, depth int)) {
	var walk func(nodes []*FolderNode, depth int)
	walk = func(nodes []*FolderNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(t.Roots, 0)
}

// Count returns the number of folders in the tree
func (t FolderTree) Count() int {
	n := 0
	t.Walk(func(*FolderNode, int) { n++ })
	return n
}

// IsEmpty reports whether the scope has no folders and no root files
func (t FolderTree) IsEmpty() bool {
	return len(t.Roots) == 0 && len(t.RootFiles) == 0
}

func sortFolders(folders []models.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ID < folders[j].ID
	})
}

func sortFiles(files []models.File) []models.File {
	out := make([]models.File, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		return out[i].ID < out[j].ID
	})
	return out
}
