package db

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/luna/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	WorkspaceID      uint            `json:"workspaceId"`
	ProjectID        *uint           `json:"projectId"`
	ListID           *uint           `json:"listId"`
	ParentTaskID     *uint           `json:"parentTaskId"`
	StatusID         uint            `json:"statusId"`
	Priority         models.Priority `json:"priority"`
	OwnerID          *uint           `json:"ownerId"`
	RequestorID      *uint           `json:"requestorId"`
	DueDate          *time.Time      `json:"dueDate"`
	StartDate        *time.Time      `json:"startDate"`
	TimeEstimate     *float64        `json:"timeEstimate"`
	Points           *int            `json:"points"`
	Tags             []string        `json:"tags"`
	RequiresApproval bool            `json:"requiresApproval"`
}

// Validate checks required fields. It never touches the database.
func (r *CreateTaskRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.WorkspaceID == 0 {
		missing = append(missing, "workspaceId")
	}
	if r.StatusID == 0 {
		missing = append(missing, "statusId")
	}
	if len(missing) > 0 {
		return invalid("missing required fields: %s", strings.Join(missing, ", "))
	}

	if r.Priority == "" {
		r.Priority = models.PriorityNormal
	}
	if !r.Priority.Valid() {
		return invalid("unknown priority %q", r.Priority)
	}
	if r.ListID != nil && r.ProjectID == nil {
		return invalid("a list requires a project")
	}
	if r.TimeEstimate != nil && *r.TimeEstimate < 0 {
		return invalid("time estimate cannot be negative")
	}
	if r.Points != nil && *r.Points < 0 {
		return invalid("points cannot be negative")
	}
	return nil
}

// TaskFilter narrows ListTasks. Zero value lists every top-level task.
type TaskFilter struct {
	WorkspaceID *uint
	ProjectID   *uint
	NoProject   bool // only tasks without a project
	WithSubtask bool // include subtasks
	StatusID    *uint
}

// CreateTask validates req and then writes the task, its tags, its list
// membership and its approval in one transaction.
func CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task := models.Task{
		WorkspaceID:      req.WorkspaceID,
		ProjectID:        req.ProjectID,
		ParentTaskID:     req.ParentTaskID,
		StatusID:         req.StatusID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		OwnerID:          req.OwnerID,
		RequestorID:      req.RequestorID,
		Priority:         req.Priority,
		DueDate:          req.DueDate,
		StartDate:        req.StartDate,
		TimeEstimate:     req.TimeEstimate,
		Points:           req.Points,
		RequiresApproval: req.RequiresApproval,
	}

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTaskRefs(tx, &task); err != nil {
			return err
		}

		tags, err := findOrCreateTags(tx, req.Tags)
		if err != nil {
			return err
		}
		task.Tags = tags

		if err := tx.Create(&task).Error; err != nil {
			if isForeignKeyViolation(err) {
				return invalid("task references a user that does not exist")
			}
			return err
		}

		if req.ListID != nil {
			if err := addMembership(tx, &task, *req.ListID); err != nil {
				return err
			}
		}

		if task.RequiresApproval {
			approval := models.TaskApproval{TaskID: task.ID, Status: models.ApprovalPending}
			if err := tx.Create(&approval).Error; err != nil {
				return err
			}
			task.Approval = &approval
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("workspace_id", task.WorkspaceID),
		zap.Bool("requires_approval", task.RequiresApproval),
	)
	return &task, nil
}

// checkTaskRefs verifies the workspace, status, project and parent of a new task
func checkTaskRefs(tx *gorm.DB, task *models.Task) error {
	if err := tx.Select("id").First(&models.Workspace{}, task.WorkspaceID).Error; err != nil {
		return notFound(err, "workspace", task.WorkspaceID)
	}
	if err := tx.Select("id").First(&models.TaskStatus{}, task.StatusID).Error; err != nil {
		return notFound(err, "status", task.StatusID)
	}

	if task.ProjectID != nil {
		var project models.Project
		if err := tx.First(&project, *task.ProjectID).Error; err != nil {
			return notFound(err, "project", *task.ProjectID)
		}
		if project.WorkspaceID != task.WorkspaceID {
			return invalid("project #%d belongs to another workspace", project.ID)
		}
	}

	if task.ParentTaskID != nil {
		var parent models.Task
		if err := tx.First(&parent, *task.ParentTaskID).Error; err != nil {
			return notFound(err, "parent task", *task.ParentTaskID)
		}
		if !parent.IsTopLevel() {
			return invalid("task #%d is already a subtask", parent.ID)
		}
		if parent.WorkspaceID != task.WorkspaceID || !sameProject(parent.ProjectID, task.ProjectID) {
			return invalid("subtask must share the workspace and project of task #%d", parent.ID)
		}
	}
	return nil
}

func sameProject(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// findOrCreateTags finds existing tags or creates new ones
func findOrCreateTags(tx *gorm.DB, tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool)

	for _, name := range tagNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag := models.Tag{Name: name}
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// ListTasks returns tasks newest first with status, owner, project,
// list memberships, approval and tags loaded
func ListTasks(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	q := withTaskRows(DB.WithContext(ctx)).Order("tasks.created_at DESC, tasks.id DESC")
	if !f.WithSubtask {
		q = q.Scopes(topLevel)
	}
	if f.WorkspaceID != nil {
		q = q.Where("workspace_id = ?", *f.WorkspaceID)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.NoProject {
		q = q.Where("project_id IS NULL")
	}
	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ApprovalTasks returns top-level and sub tasks that carry an approval
// record, newest first, optionally for one workspace
func ApprovalTasks(ctx context.Context, workspaceID *uint) ([]models.Task, error) {
	q := withTaskRows(DB.WithContext(ctx)).
		Preload("Workspace").
		Where("tasks.id IN (?)", DB.Model(&models.TaskApproval{}).Select("task_id")).
		Order("tasks.created_at DESC, tasks.id DESC")
	if workspaceID != nil {
		q = q.Where("workspace_id = ?", *workspaceID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a task with everything the detail view shows
func GetTask(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := withTaskRows(DB.WithContext(ctx)).
		Preload("Workspace").
		Preload("ParentTask").
		Preload("Requestor").
		Preload("Approval.DecidedBy").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Subtasks.Status").
		Preload("Subtasks.Owner").
		First(&task, id).Error
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return &task, nil
}

// GetWorkspaceTask retrieves a task only if it belongs to the workspace
func GetWorkspaceTask(ctx context.Context, workspaceID, id uint) (*models.Task, error) {
	task, err := GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.WorkspaceID != workspaceID {
		return nil, notFound(gorm.ErrRecordNotFound, "task", id)
	}
	return task, nil
}

// SubtaskCounts returns parent task ID -> number of subtasks
func SubtaskCounts(ctx context.Context, parentIDs []uint) (map[uint]int64, error) {
	if len(parentIDs) == 0 {
		return map[uint]int64{}, nil
	}
	return countBy(ctx, &models.Task{}, "parent_task_id", func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_task_id IN ?", parentIDs)
	})
}

// UpdateTaskStatus moves a task to another status
func UpdateTaskStatus(ctx context.Context, id, statusID uint) (*models.Task, error) {
	var task models.Task
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return notFound(err, "task", id)
		}
		if err := tx.Select("id").First(&models.TaskStatus{}, statusID).Error; err != nil {
			return notFound(err, "status", statusID)
		}
		task.StatusID = statusID
		return tx.Model(&task).Update("status_id", statusID).Error
	})
	if err != nil {
		return nil, err
	}

	log.Debug("task status changed", zap.Uint("task_id", id), zap.Uint("status_id", statusID))
	return &task, nil
}

// DeleteTask removes a task; subtasks, memberships, approval, comments and
// dependency edges go with it through the foreign keys
func DeleteTask(ctx context.Context, id uint) error {
	res := DB.WithContext(ctx).Select(clause.Associations).Delete(&models.Task{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "task", id)
	}
	return nil
}

// TaskIDs returns the IDs of tasks, in order
func TaskIDs(tasks []models.Task) []uint {
	ids := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func withTaskRows(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Status").
		Preload("Owner").
		Preload("Project").
		Preload("Memberships.List").
		Preload("Approval").
		Preload("Tags")
}
