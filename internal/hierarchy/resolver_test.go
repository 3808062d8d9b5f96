package hierarchy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func list(id uint, name string) models.List {
	return models.List{ID: id, ProjectID: 1, Name: name}
}

func task(id uint, lists ...models.List) models.Task {
	t := models.Task{ID: id, WorkspaceID: 1, ProjectID: uintPtr(1), Name: "task"}
	for _, l := range lists {
		l := l
		t.Memberships = append(t.Memberships, models.ListTask{ListID: l.ID, TaskID: id, List: &l})
	}
	return t
}

func rowIDs(rows []TaskRow) []uint {
	ids := []uint{}
	for _, r := range rows {
		ids = append(ids, r.Task.ID)
	}
	return ids
}

func TestResolveTaskInTwoLists(t *testing.T) {
	l1, l2 := list(1, "L1"), list(2, "L2")
	tasks := []models.Task{task(10, l1, l2), task(11)}

	p := Resolve(tasks, []models.List{l2, l1}, nil)

	assert.Equal(t, []uint{11}, rowIDs(p.Direct))
	require.Len(t, p.Groups, 2)
	assert.Equal(t, "L1", p.Groups[0].List.Name)
	assert.Equal(t, []uint{10}, rowIDs(p.Groups[0].Rows))
	assert.Equal(t, "L2", p.Groups[1].List.Name)
	assert.Equal(t, []uint{10}, rowIDs(p.Groups[1].Rows))
	assert.Equal(t, 2, p.Total())
}

func TestResolveCoversEveryTopLevelTask(t *testing.T) {
	a, b, c := list(1, "Design"), list(2, "Build"), list(3, "Empty")
	tasks := []models.Task{
		task(1, a),
		task(2),
		task(3, a, b),
		task(4, b),
		task(5),
	}
	sub := task(6, a)
	sub.ParentTaskID = uintPtr(1)
	tasks = append(tasks, sub)

	p := Resolve(tasks, []models.List{a, b, c}, map[uint]int64{1: 1})

	assert.Equal(t, 5, p.Total())
	direct := map[uint]bool{}
	for _, r := range p.Direct {
		direct[r.Task.ID] = true
		assert.Empty(t, r.Task.Memberships)
	}
	assert.Equal(t, map[uint]bool{2: true, 5: true}, direct)

	names := []string{}
	for _, g := range p.Groups {
		names = append(names, g.List.Name)
	}
	assert.Equal(t, []string{"Build", "Design", "Empty"}, names)
	assert.Equal(t, []uint{3, 4}, rowIDs(p.Groups[0].Rows))
	assert.Equal(t, []uint{1, 3}, rowIDs(p.Groups[1].Rows))
	assert.Empty(t, p.Groups[2].Rows)
	assert.Equal(t, int64(1), p.Groups[1].Rows[0].SubtaskCount)
}

func TestResolveIgnoresOutOfScopeLists(t *testing.T) {
	inScope, other := list(1, "Here"), list(9, "Elsewhere")
	tasks := []models.Task{task(1, other), task(2, other, inScope)}

	p := Resolve(tasks, []models.List{inScope}, nil)

	assert.Equal(t, []uint{1}, rowIDs(p.Direct))
	require.Len(t, p.Groups, 1)
	assert.Equal(t, []uint{2}, rowIDs(p.Groups[0].Rows))
}

func TestResolveKeepsInputOrder(t *testing.T) {
	tasks := []models.Task{task(3), task(1), task(2)}

	p := Resolve(tasks, nil, nil)

	assert.Equal(t, []uint{3, 1, 2}, rowIDs(p.Direct))
	assert.Empty(t, p.Groups)
}

func TestSortSubtasksOldestFirst(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: 3, CreatedAt: now},
		{ID: 1, CreatedAt: now.Add(-time.Hour)},
		{ID: 2, CreatedAt: now},
	}

	SortSubtasks(tasks)

	assert.Equal(t, []uint{1, 2, 3}, []uint{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestGroupLabels(t *testing.T) {
	tk := task(1, list(2, "Renders"), list(1, "Concepts"))
	assert.Equal(t, "Concepts, Renders", ListLabel(tk, DirectLabel))
	assert.Equal(t, DirectLabel, ListLabel(task(2), DirectLabel))

	assert.Equal(t, WorkspaceLabel, ProjectLabel(models.Task{}))
	assert.Equal(t, "Loft", ProjectLabel(models.Task{Project: &models.Project{Name: "Loft"}}))
}

func TestRowsSkipsSubtasks(t *testing.T) {
	sub := task(2)
	sub.ParentTaskID = uintPtr(1)

	rows := Rows([]models.Task{task(1), sub}, map[uint]int64{1: 4})

	require.Len(t, rows, 1)
	assert.Equal(t, int64(4), rows[0].SubtaskCount)
}
