package db

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
	"github.com/balkashynov/luna/internal/parser"
)

// CreateWorkspaceRequest holds the data needed to create a workspace
type CreateWorkspaceRequest struct {
	Name          string
	Slug          string // derived from Name when empty
	Type          models.WorkspaceType
	Address       string
	PrimaryUserID *uint
}

// WorkspaceSummary is a workspace with its project and task counts
type WorkspaceSummary struct {
	models.Workspace
	ProjectCount int64 `json:"project_count"`
	TaskCount    int64 `json:"task_count"`
}

// CreateWorkspace creates a workspace with a unique slug
func CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("workspace name is required")
	}

	slug := parser.Slugify(name)
	if req.Slug != "" {
		s, err := parser.NormalizeSlug(req.Slug)
		if err != nil {
			return nil, invalid("%v", err)
		}
		slug = s
	}
	if slug == "" {
		return nil, invalid("workspace name %q has no usable slug", name)
	}

	wsType := req.Type
	if wsType == "" {
		wsType = models.WorkspaceClient
	}
	if wsType != models.WorkspaceClient && wsType != models.WorkspaceCompany {
		return nil, invalid("unknown workspace type %q", wsType)
	}

	ws := models.Workspace{
		Name:          name,
		Slug:          slug,
		Type:          wsType,
		Address:       req.Address,
		PrimaryUserID: req.PrimaryUserID,
	}
	if err := DB.WithContext(ctx).Create(&ws).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("workspace slug %q is taken", slug)
		}
		if isForeignKeyViolation(err) {
			return nil, invalid("primary user does not exist")
		}
		return nil, err
	}

	log.Debug("workspace created", zap.Uint("workspace_id", ws.ID), zap.String("slug", ws.Slug))
	return &ws, nil
}

// ListWorkspaces returns all workspaces by name with their counts
func ListWorkspaces(ctx context.Context) ([]WorkspaceSummary, error) {
	var workspaces []models.Workspace
	if err := DB.WithContext(ctx).Order("name ASC, id ASC").Find(&workspaces).Error; err != nil {
		return nil, err
	}

	projects, err := countBy(ctx, &models.Project{}, "workspace_id")
	if err != nil {
		return nil, err
	}
	tasks, err := countBy(ctx, &models.Task{}, "workspace_id")
	if err != nil {
		return nil, err
	}

	summaries := make([]WorkspaceSummary, 0, len(workspaces))
	for _, ws := range workspaces {
		summaries = append(summaries, WorkspaceSummary{
			Workspace:    ws,
			ProjectCount: projects[ws.ID],
			TaskCount:    tasks[ws.ID],
		})
	}
	return summaries, nil
}

// GetWorkspace retrieves a workspace with its primary user and custom fields
func GetWorkspace(ctx context.Context, id uint) (*models.Workspace, error) {
	var ws models.Workspace
	err := DB.WithContext(ctx).
		Preload("PrimaryUser").
		Preload("CustomFields", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&ws, id).Error
	if err != nil {
		return nil, notFound(err, "workspace", id)
	}
	return &ws, nil
}

// GetWorkspaceBySlug looks a workspace up by slug, whatever its type
func GetWorkspaceBySlug(ctx context.Context, slug string) (*models.Workspace, error) {
	var ws models.Workspace
	err := DB.WithContext(ctx).
		Preload("PrimaryUser").
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&ws).Error
	if err != nil {
		return nil, notFound(err, "workspace", slug)
	}
	return &ws, nil
}

// GetClientWorkspace resolves a portal slug. Company workspaces are
// reported as not found so the portal never reveals them.
func GetClientWorkspace(ctx context.Context, slug string) (*models.Workspace, error) {
	ws, err := GetWorkspaceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ws.IsClient() {
		return nil, notFound(gorm.ErrRecordNotFound, "workspace", slug)
	}
	return ws, nil
}

// DeleteWorkspace removes a workspace and everything it owns, children
// first, in one transaction.
func DeleteWorkspace(ctx context.Context, id uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ws models.Workspace
		if err := tx.First(&ws, id).Error; err != nil {
			return notFound(err, "workspace", id)
		}

		taskIDs := tx.Model(&models.Task{}).Select("id").Where("workspace_id = ?", id)
		projectIDs := tx.Model(&models.Project{}).Select("id").Where("workspace_id = ?", id)
		commentIDs := tx.Model(&models.TaskComment{}).Select("id").Where("task_id IN (?)", taskIDs)

		steps := []struct {
			model any
			query string
			args  []any
		}{
			{&models.TaskCommentFile{}, "comment_id IN (?)", []any{commentIDs}},
			{&models.TaskComment{}, "task_id IN (?) AND parent_comment_id IS NOT NULL", []any{taskIDs}},
			{&models.TaskComment{}, "task_id IN (?)", []any{taskIDs}},
			{&models.TaskApproval{}, "task_id IN (?)", []any{taskIDs}},
			{&models.TaskDependency{}, "task_id IN (?) OR depends_on_id IN (?)", []any{taskIDs, taskIDs}},
			{&models.TaskFile{}, "task_id IN (?)", []any{taskIDs}},
			{&models.ListTask{}, "task_id IN (?)", []any{taskIDs}},
			{&models.TaskTag{}, "task_id IN (?)", []any{taskIDs}},
			{&models.Task{}, "workspace_id = ? AND parent_task_id IS NOT NULL", []any{id}},
			{&models.Task{}, "workspace_id = ?", []any{id}},
			{&models.List{}, "project_id IN (?)", []any{projectIDs}},
			{&models.CustomFieldValue{}, "project_id IN (?)", []any{projectIDs}},
			{&models.CustomFieldDefinition{}, "workspace_id = ?", []any{id}},
			{&models.File{}, "workspace_id = ?", []any{id}},
			{&models.Folder{}, "workspace_id = ?", []any{id}},
			{&models.Project{}, "workspace_id = ?", []any{id}},
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).Where("workspace_id = ?", id).Update("workspace_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ws).Error; err != nil {
			return err
		}

		log.Info("workspace deleted", zap.Uint("workspace_id", id), zap.String("slug", ws.Slug))
		return nil
	})
}
