package models

import (
	"time"
)

// Priority is the urgency of a task
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Task is a unit of work. Every task belongs to exactly one workspace and
// optionally to a project and a parent task.
type Task struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkspaceID  uint  `gorm:"not null;index" json:"workspace_id"`
	ProjectID    *uint `gorm:"index" json:"project_id"`
	ParentTaskID *uint `gorm:"index" json:"parent_task_id"`
	StatusID     uint  `gorm:"not null;index" json:"status_id"`

	Name             string     `gorm:"not null" json:"name"`
	Description      string     `json:"description"`
	OwnerID          *uint      `json:"owner_id"`
	RequestorID      *uint      `json:"requestor_id"`
	Priority         Priority   `gorm:"type:varchar(16);not null;default:NORMAL" json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	StartDate        *time.Time `json:"start_date"`
	TimeEstimate     *float64   `json:"time_estimate"` // hours
	Points           *int       `json:"points"`
	RequiresApproval bool       `gorm:"not null;default:false" json:"requires_approval"`

	// Relationships
	Workspace   *Workspace    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"workspace,omitempty"`
	Project     *Project      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project,omitempty"`
	ParentTask  *Task         `gorm:"foreignKey:ParentTaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent_task,omitempty"`
	Status      *TaskStatus   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"status,omitempty"`
	Owner       *User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;" json:"owner,omitempty"`
	Requestor   *User         `gorm:"foreignKey:RequestorID;constraint:OnDelete:SET NULL;" json:"requestor,omitempty"`
	Subtasks    []Task        `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
	Memberships []ListTask    `gorm:"foreignKey:TaskID" json:"memberships,omitempty"`
	Approval    *TaskApproval `gorm:"foreignKey:TaskID" json:"approval,omitempty"`
	Tags        []Tag         `gorm:"many2many:task_tags;" json:"tags"`
}

// IsTopLevel reports whether the task has no parent
func (t Task) IsTopLevel() bool {
	return t.ParentTaskID == nil
}

// TagNames returns the tag names in stored order
func (t Task) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// OwnerName returns a display name for the owner, or "" when unassigned
func (t Task) OwnerName() string {
	if t.Owner == nil {
		return ""
	}
	return t.Owner.DisplayName()
}

// Tag represents a task tag
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_tags;" json:"-"`
}

// TaskTag is the join table for the many-to-many relationship
type TaskTag struct {
	TaskID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

// TaskDependency is a directed edge: TaskID is blocked by DependsOnID.
type TaskDependency struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	TaskID      uint      `gorm:"not null;uniqueIndex:uq_task_dependency,priority:1" json:"task_id"`
	DependsOnID uint      `gorm:"not null;uniqueIndex:uq_task_dependency,priority:2;index" json:"depends_on_id"`

	Task      *Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE;" json:"task,omitempty"`
	DependsOn *Task `gorm:"foreignKey:DependsOnID;constraint:OnDelete:CASCADE;" json:"depends_on,omitempty"`
}

// TaskFile links an uploaded file to a task
type TaskFile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	TaskID    uint      `gorm:"not null;uniqueIndex:uq_task_file,priority:1" json:"task_id"`
	FileID    uint      `gorm:"not null;uniqueIndex:uq_task_file,priority:2" json:"file_id"`

	Task *Task `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	File *File `gorm:"constraint:OnDelete:CASCADE;" json:"file,omitempty"`
}
