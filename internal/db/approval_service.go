package db

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/models"
)

// DecideApproval approves or rejects the pending approval of a task.
// The status change only lands while the row is still PENDING, so two
// deciders racing on the same task cannot both succeed.
func DecideApproval(ctx context.Context, taskID uint, decision models.ApprovalStatus, deciderID uint, note string) (*models.TaskApproval, error) {
	var a models.TaskApproval
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).First(&a).Error; err != nil {
			return notFound(err, "approval for task", taskID)
		}
		if err := tx.Select("id").First(&models.User{}, deciderID).Error; err != nil {
			return notFound(err, "user", deciderID)
		}

		if err := approval.Decide(&a, decision, deciderID, note, now()); err != nil {
			return err
		}

		res := tx.Model(&models.TaskApproval{}).
			Where("id = ? AND status = ?", a.ID, models.ApprovalPending).
			Updates(map[string]any{
				"status":        a.Status,
				"decided_by_id": a.DecidedByID,
				"decided_at":    a.DecidedAt,
				"note":          a.Note,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return approval.ErrAlreadyDecided
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("approval decided",
		zap.Uint("task_id", taskID),
		zap.String("decision", string(a.Status)),
		zap.Uint("decided_by", deciderID),
	)
	return &a, nil
}

// PendingApprovals returns the tasks waiting on a decision, newest first,
// optionally for one workspace
func PendingApprovals(ctx context.Context, workspaceID *uint) ([]models.Task, error) {
	tasks, err := ApprovalTasks(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return approval.PendingQueue(tasks), nil
}
