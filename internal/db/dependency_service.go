package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// AddDependency records that taskID is blocked by dependsOnID. Edges that
// point at the task itself or would close a cycle are rejected.
func AddDependency(ctx context.Context, taskID, dependsOnID uint) (*models.TaskDependency, error) {
	if taskID == dependsOnID {
		return nil, invalid("task #%d cannot depend on itself", taskID)
	}

	dep := models.TaskDependency{TaskID: taskID, DependsOnID: dependsOnID}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task, blocker models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err, "task", taskID)
		}
		if err := tx.First(&blocker, dependsOnID).Error; err != nil {
			return notFound(err, "task", dependsOnID)
		}
		if task.WorkspaceID != blocker.WorkspaceID {
			return invalid("task #%d belongs to another workspace", dependsOnID)
		}

		cycle, err := reaches(tx, dependsOnID, taskID)
		if err != nil {
			return err
		}
		if cycle {
			return invalid("task #%d already depends on task #%d", dependsOnID, taskID)
		}

		if err := tx.Create(&dep).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("task #%d already depends on task #%d", taskID, dependsOnID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

// RemoveDependency deletes an edge
func RemoveDependency(ctx context.Context, taskID, dependsOnID uint) error {
	res := DB.WithContext(ctx).
		Where("task_id = ? AND depends_on_id = ?", taskID, dependsOnID).
		Delete(&models.TaskDependency{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "dependency of task", taskID)
	}
	return nil
}

// BlockedBy returns the tasks taskID waits on
func BlockedBy(ctx context.Context, taskID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := DB.WithContext(ctx).
		Preload("Status").
		Where("id IN (?)", DB.Model(&models.TaskDependency{}).Select("depends_on_id").Where("task_id = ?", taskID)).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

// Blocking returns the tasks waiting on taskID
func Blocking(ctx context.Context, taskID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := DB.WithContext(ctx).
		Preload("Status").
		Where("id IN (?)", DB.Model(&models.TaskDependency{}).Select("task_id").Where("depends_on_id = ?", taskID)).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

// reaches does a breadth-first walk over blocked-by edges from start and
// reports whether target is reachable
func reaches(tx *gorm.DB, start, target uint) (bool, error) {
	visited := map[uint]bool{start: true}
	frontier := []uint{start}

	for len(frontier) > 0 {
		var next []uint
		if err := tx.Model(&models.TaskDependency{}).
			Where("task_id IN ?", frontier).
			Pluck("depends_on_id", &next).Error; err != nil {
			return false, err
		}

		frontier = frontier[:0]
		for _, id := range next {
			if id == target {
				return true, nil
			}
			if !visited[id] {
				visited[id] = true
				frontier = append(frontier, id)
			}
		}
	}
	return false, nil
}
