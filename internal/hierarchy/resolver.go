// Package hierarchy turns flat task, list and folder rows into the nested
// shapes shown by the workspace, project and client views.
package hierarchy

import (
	"sort"
	"strings"

	"github.com/balkashynov/luna/internal/models"
)

const (
	// DirectLabel groups project tasks that belong to no list
	DirectLabel = "Direct"
	// WorkspaceLabel groups workspace tasks that belong to no project
	WorkspaceLabel = "Workspace"
)

// TaskRow is a top-level task as shown in a table
type TaskRow struct {
	Task         models.Task `json:"task"`
	SubtaskCount int64       `json:"subtask_count"`
}

// ListGroup is one list and the tasks that are members of it
type ListGroup struct {
	List models.List `json:"list"`
	Rows []TaskRow   `json:"rows"`
}

// Partition splits the top-level tasks of a scope into tasks that belong to
// no list and per-list groups. A task in several lists shows up once in
// each of them.
type Partition struct {
	Direct []TaskRow   `json:"direct"`
	Groups []ListGroup `json:"groups"`
}

// Resolve partitions tasks against the lists of a scope.
//
// Tasks must have Memberships loaded. Subtasks are skipped. Memberships of
// lists outside the scope are ignored, so a task whose only lists are out
// of scope counts as direct. Rows keep the order of tasks; groups are sorted
// by list name.
func Resolve(tasks []models.Task, lists []models.List, subtaskCounts map[uint]int64) Partition {
	sorted := make([]models.List, len(lists))
	copy(sorted, lists)
	SortLists(sorted)

	inScope := make(map[uint]int, len(sorted))
	p := Partition{
		Direct: []TaskRow{},
		Groups: make([]ListGroup, len(sorted)),
	}
	for i, l := range sorted {
		inScope[l.ID] = i
		p.Groups[i] = ListGroup{List: l, Rows: []TaskRow{}}
	}

	for _, t := range tasks {
		if !t.IsTopLevel() {
			continue
		}
		row := TaskRow{Task: t, SubtaskCount: subtaskCounts[t.ID]}

		grouped := false
		seen := make(map[uint]bool, len(t.Memberships))
		for _, m := range t.Memberships {
			idx, ok := inScope[m.ListID]
			if !ok || seen[m.ListID] {
				continue
			}
			seen[m.ListID] = true
			p.Groups[idx].Rows = append(p.Groups[idx].Rows, row)
			grouped = true
		}
		if !grouped {
			p.Direct = append(p.Direct, row)
		}
	}

	return p
}

// Total returns the number of distinct tasks in the partition
func (p Partition) Total() int {
	ids := make(map[uint]bool)
	for _, r := range p.Direct {
		ids[r.Task.ID] = true
	}
	for _, g := range p.Groups {
		for _, r := range g.Rows {
			ids[r.Task.ID] = true
		}
	}
	return len(ids)
}

// Rows wraps tasks as table rows without any list grouping
func Rows(tasks []models.Task, subtaskCounts map[uint]int64) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsTopLevel() {
			continue
		}
		rows = append(rows, TaskRow{Task: t, SubtaskCount: subtaskCounts[t.ID]})
	}
	return rows
}

// SortLists orders lists by name, then ID
func SortLists(lists []models.List) {
	sort.SliceStable(lists, func(i, j int) bool {
		if lists[i].Name != lists[j].Name {
			return lists[i].Name < lists[j].Name
		}
		return lists[i].ID < lists[j].ID
	})
}

// SortSubtasks orders subtasks oldest first, as the task detail view shows them
func SortSubtasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// ListNames returns the names of the lists a task belongs to, sorted.
// Memberships without a loaded list are skipped.
func ListNames(t models.Task) []string {
	names := make([]string, 0, len(t.Memberships))
	for _, m := range t.Memberships {
		if m.List != nil {
			names = append(names, m.List.Name)
		}
	}
	sort.Strings(names)
	return names
}

// ListLabel is the kanban group label in project scope: the task's list
// names joined with ", ", or fallback when it has none.
func ListLabel(t models.Task, fallback string) string {
	names := ListNames(t)
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}

// ProjectLabel is the kanban group label in workspace scope: the project
// name, or WorkspaceLabel for tasks outside any project.
func ProjectLabel(t models.Task) string {
	if t.Project != nil && t.Project.Name != "" {
		return t.Project.Name
	}
	return WorkspaceLabel
}
