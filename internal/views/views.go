// Package views assembles the admin and client view-models from the
// database and the pure hierarchy, approval, kanban and fields components.
// Every view is built from a fresh read; nothing is cached between calls.
package views

import (
	"context"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/fields"
	"github.com/balkashynov/luna/internal/hierarchy"
	"github.com/balkashynov/luna/internal/kanban"
	"github.com/balkashynov/luna/internal/models"
)

// ProjectSection is one project with its fields and partitioned tasks
type ProjectSection struct {
	Project   models.Project      `json:"project"`
	Fields    []fields.FieldValue `json:"fields"`
	Partition hierarchy.Partition `json:"tasks"`
	TaskCount int                 `json:"task_count"`
}

// scope is every row a workspace or project view needs, loaded once
type scope struct {
	tasks    []models.Task
	lists    []models.List
	counts   map[uint]int64
	values   []models.CustomFieldValue
	folders  []models.Folder
	files    []models.File
	statuses []models.TaskStatus
}

func loadScope(ctx context.Context, workspaceID uint, projectID *uint, projectIDs []uint) (*scope, error) {
	var (
		s   scope
		err error
	)
	if s.tasks, err = db.ListTasks(ctx, db.TaskFilter{WorkspaceID: &workspaceID, ProjectID: projectID}); err != nil {
		return nil, err
	}
	if s.counts, err = db.SubtaskCounts(ctx, db.TaskIDs(s.tasks)); err != nil {
		return nil, err
	}
	if s.lists, err = db.ProjectLists(ctx, projectIDs...); err != nil {
		return nil, err
	}
	if s.values, err = db.ProjectFieldValues(ctx, projectIDs...); err != nil {
		return nil, err
	}
	if s.folders, err = db.ListFolders(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}
	if s.files, err = db.ListFiles(ctx, workspaceID, projectID); err != nil {
		return nil, err
	}
	if s.statuses, err = db.Statuses(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// section builds the view of one project out of a loaded scope
func (s *scope) section(p models.Project, defs []models.CustomFieldDefinition) ProjectSection {
	var (
		tasks  []models.Task
		lists  []models.List
		values []models.CustomFieldValue
	)
	for _, t := range s.tasks {
		if t.ProjectID != nil && *t.ProjectID == p.ID {
			tasks = append(tasks, t)
		}
	}
	for _, l := range s.lists {
		if l.ProjectID == p.ID {
			lists = append(lists, l)
		}
	}
	for _, v := range s.values {
		if v.ProjectID == p.ID {
			values = append(values, v)
		}
	}

	partition := hierarchy.Resolve(tasks, lists, s.counts)
	return ProjectSection{
		Project:   p,
		Fields:    fields.Project(defs, values),
		Partition: partition,
		TaskCount: partition.Total(),
	}
}

func (s *scope) board(label func(models.Task) string) kanban.Board {
	cards := make([]kanban.Card, 0, len(s.tasks))
	for _, t := range s.tasks {
		cards = append(cards, kanban.CardFromTask(t, label(t)))
	}
	return kanban.Build(s.statuses, cards)
}

func projectIDs(projects []db.ProjectSummary) []uint {
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
