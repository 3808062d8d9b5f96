package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// Stats are the dashboard counters
type Stats struct {
	Workspaces       int64 `json:"workspaces"`
	ActiveProjects   int64 `json:"active_projects"`
	OpenTasks        int64 `json:"open_tasks"`
	PendingApprovals int64 `json:"pending_approvals"`
}

// DashboardStats counts across every workspace
func DashboardStats(ctx context.Context) (Stats, error) {
	return collectStats(ctx, nil)
}

// WorkspaceStats counts inside one workspace
func WorkspaceStats(ctx context.Context, workspaceID uint) (Stats, error) {
	return collectStats(ctx, &workspaceID)
}

// collectStats takes all four counts inside one read transaction so they
// describe the same snapshot.
func collectStats(ctx context.Context, workspaceID *uint) (Stats, error) {
	var s Stats
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workspaces := tx.Model(&models.Workspace{})
		projects := tx.Model(&models.Project{}).Where("status = ?", models.ProjectActive)
		tasks := tx.Model(&models.Task{}).Scopes(topLevel)
		approvals := tx.Model(&models.TaskApproval{}).Where("status = ?", models.ApprovalPending)

		if workspaceID != nil {
			workspaces = workspaces.Where("id = ?", *workspaceID)
			projects = projects.Where("workspace_id = ?", *workspaceID)
			tasks = tasks.Where("workspace_id = ?", *workspaceID)
			approvals = approvals.Where("task_id IN (?)",
				tx.Model(&models.Task{}).Select("id").Where("workspace_id = ?", *workspaceID))
		}

		for _, c := range []struct {
			q   *gorm.DB
			dst *int64
		}{
			{workspaces, &s.Workspaces},
			{projects, &s.ActiveProjects},
			{tasks, &s.OpenTasks},
			{approvals, &s.PendingApprovals},
		} {
			if err := c.q.Count(c.dst).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return s, err
}
