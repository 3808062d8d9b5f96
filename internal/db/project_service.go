package db

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CreateProjectRequest holds the data needed to create a project
type CreateProjectRequest struct {
	WorkspaceID uint
	Name        string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

// ProjectSummary is a project with its top-level task count
type ProjectSummary struct {
	models.Project
	TaskCount int64 `json:"task_count"`
}

// ValidProjectStatus reports whether s is a known project status
func ValidProjectStatus(s models.ProjectStatus) bool {
	switch s {
	case models.ProjectIntake, models.ProjectPending, models.ProjectActive,
		models.ProjectOnHold, models.ProjectComplete:
		return true
	}
	return false
}

// CreateProject creates a project in a workspace
func CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("project name is required")
	}
	if req.WorkspaceID == 0 {
		return nil, invalid("workspace is required")
	}
	status := req.Status
	if status == "" {
		status = models.ProjectIntake
	}
	if !ValidProjectStatus(status) {
		return nil, invalid("unknown project status %q", status)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, invalid("project ends before it starts")
	}

	project := models.Project{
		WorkspaceID: req.WorkspaceID,
		Name:        name,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Workspace{}, req.WorkspaceID).Error; err != nil {
			return notFound(err, "workspace", req.WorkspaceID)
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		return nil, err
	}

	log.Debug("project created", zap.Uint("project_id", project.ID), zap.Uint("workspace_id", project.WorkspaceID))
	return &project, nil
}

// ListProjects returns projects by name, optionally for one workspace
func ListProjects(ctx context.Context, workspaceID *uint) ([]ProjectSummary, error) {
	q := DB.WithContext(ctx).Preload("Workspace").Order("name ASC, id ASC")
	if workspaceID != nil {
		q = q.Where("workspace_id = ?", *workspaceID)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}

	counts, err := countBy(ctx, &models.Task{}, "project_id", topLevel)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, ProjectSummary{Project: p, TaskCount: counts[p.ID]})
	}
	return summaries, nil
}

// GetProject retrieves a project with its workspace and lists
func GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := DB.WithContext(ctx).
		Preload("Workspace").
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC, id ASC")
		}).
		First(&project, id).Error
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return &project, nil
}

// GetWorkspaceProject retrieves a project only if it belongs to the workspace
func GetWorkspaceProject(ctx context.Context, workspaceID, id uint) (*models.Project, error) {
	project, err := GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.WorkspaceID != workspaceID {
		return nil, notFound(gorm.ErrRecordNotFound, "project", id)
	}
	return project, nil
}

// UpdateProjectStatus moves a project to another lifecycle stage
func UpdateProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) (*models.Project, error) {
	if !ValidProjectStatus(status) {
		return nil, invalid("unknown project status %q", status)
	}

	var project models.Project
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, id).Error; err != nil {
			return notFound(err, "project", id)
		}
		project.Status = status
		return tx.Model(&project).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func topLevel(db *gorm.DB) *gorm.DB {
	return db.Where("parent_task_id IS NULL")
}
