package db

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CreateStatusRequest holds the data needed to create a task status
type CreateStatusRequest struct {
	Name      string
	Color     string
	Order     int
	IsDefault bool
	State     models.StatusState
}

// StatusSummary is a status with the number of tasks on it
type StatusSummary struct {
	models.TaskStatus
	TaskCount int64 `json:"task_count"`
}

// CreateStatus creates a global status. A new default clears the old one.
func CreateStatus(ctx context.Context, req CreateStatusRequest) (*models.TaskStatus, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("status name is required")
	}
	state := req.State
	if state == "" {
		state = models.StatusActive
	}
	if state != models.StatusActive && state != models.StatusArchived {
		return nil, invalid("unknown status state %q", state)
	}
	color := req.Color
	if color == "" {
		color = "#E4E4E7"
	}

	status := models.TaskStatus{
		Name:      name,
		Color:     color,
		Order:     req.Order,
		IsDefault: req.IsDefault,
		State:     state,
	}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status.IsDefault {
			if err := tx.Model(&models.TaskStatus{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&status).Error
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ListStatuses returns every status by order with task counts
func ListStatuses(ctx context.Context) ([]StatusSummary, error) {
	statuses, err := Statuses(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := countBy(ctx, &models.Task{}, "status_id")
	if err != nil {
		return nil, err
	}

	summaries := make([]StatusSummary, 0, len(statuses))
	for _, s := range statuses {
		summaries = append(summaries, StatusSummary{TaskStatus: s, TaskCount: counts[s.ID]})
	}
	return summaries, nil
}

// Statuses returns every status, archived included, by order
func Statuses(ctx context.Context) ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	err := DB.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&statuses).Error
	return statuses, err
}

// DefaultStatus returns the status flagged as default, or the first by order
func DefaultStatus(ctx context.Context) (*models.TaskStatus, error) {
	var status models.TaskStatus
	err := DB.WithContext(ctx).Order("is_default DESC, sort_order ASC, id ASC").First(&status).Error
	if err != nil {
		return nil, notFound(err, "status", "default")
	}
	return &status, nil
}

// SetStatusState archives or reactivates a status. Archived statuses keep
// their tasks but drop out of every board.
func SetStatusState(ctx context.Context, id uint, state models.StatusState) (*models.TaskStatus, error) {
	if state != models.StatusActive && state != models.StatusArchived {
		return nil, invalid("unknown status state %q", state)
	}
	var status models.TaskStatus
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&status, id).Error; err != nil {
			return notFound(err, "status", id)
		}
		if status.State == state {
			return nil
		}
		status.State = state
		return tx.Model(&status).Update("state", state).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info("status state changed", zap.Uint("status_id", id), zap.String("state", string(state)))
	return &status, nil
}
