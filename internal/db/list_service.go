package db

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// ListSummary is a list with its project and membership count
type ListSummary struct {
	models.List
	TaskCount int64 `json:"task_count"`
}

// CreateList creates a named list inside a project
func CreateList(ctx context.Context, projectID uint, name string) (*models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("list name is required")
	}

	list := models.List{ProjectID: projectID, Name: name}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Project{}, projectID).Error; err != nil {
			return notFound(err, "project", projectID)
		}
		return tx.Create(&list).Error
	})
	if err != nil {
		return nil, err
	}

	log.Debug("list created", zap.Uint("list_id", list.ID), zap.Uint("project_id", projectID))
	return &list, nil
}

// ListLists returns lists by name with their project and workspace,
// optionally for one project
func ListLists(ctx context.Context, projectID *uint) ([]ListSummary, error) {
	q := DB.WithContext(ctx).Preload("Project.Workspace").Order("name ASC, id ASC")
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}

	var lists []models.List
	if err := q.Find(&lists).Error; err != nil {
		return nil, err
	}

	counts, err := countBy(ctx, &models.ListTask{}, "list_id")
	if err != nil {
		return nil, err
	}

	summaries := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		summaries = append(summaries, ListSummary{List: l, TaskCount: counts[l.ID]})
	}
	return summaries, nil
}

// ProjectLists returns the lists of the given projects, by name
func ProjectLists(ctx context.Context, projectIDs ...uint) ([]models.List, error) {
	var lists []models.List
	if len(projectIDs) == 0 {
		return lists, nil
	}
	err := DB.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("name ASC, id ASC").
		Find(&lists).Error
	return lists, err
}

// AddTaskToList records a membership. The list must belong to the task's project.
func AddTaskToList(ctx context.Context, taskID, listID uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err, "task", taskID)
		}
		return addMembership(tx, &task, listID)
	})
}

// RemoveTaskFromList deletes a membership
func RemoveTaskFromList(ctx context.Context, taskID, listID uint) error {
	res := DB.WithContext(ctx).
		Where("task_id = ? AND list_id = ?", taskID, listID).
		Delete(&models.ListTask{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "membership of task", taskID)
	}
	return nil
}

func addMembership(tx *gorm.DB, task *models.Task, listID uint) error {
	var list models.List
	if err := tx.First(&list, listID).Error; err != nil {
		return notFound(err, "list", listID)
	}
	if task.ProjectID == nil || *task.ProjectID != list.ProjectID {
		return invalid("list #%d belongs to another project", listID)
	}
	if !task.IsTopLevel() {
		return invalid("subtask #%d cannot join a list", task.ID)
	}

	var existing int64
	if err := tx.Model(&models.ListTask{}).Where("list_id = ? AND task_id = ?", listID, task.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return conflict("task #%d is already in list #%d", task.ID, listID)
	}

	if err := tx.Create(&models.ListTask{ListID: listID, TaskID: task.ID}).Error; err != nil {
		if isUniqueViolation(err) {
			return conflict("task #%d is already in list #%d", task.ID, listID)
		}
		return err
	}
	return nil
}
