package models

import (
	"time"
)

// WorkspaceType separates client workspaces from internal ones
type WorkspaceType string

const (
	WorkspaceClient  WorkspaceType = "CLIENT"
	WorkspaceCompany WorkspaceType = "COMPANY"
)

// Workspace is the top-level aggregate for projects, tasks, folders and files
type Workspace struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string        `gorm:"not null" json:"name"`
	Slug          string        `gorm:"uniqueIndex;not null" json:"slug"`
	Type          WorkspaceType `gorm:"type:varchar(16);not null;default:CLIENT" json:"type"`
	PrimaryUserID *uint         `json:"primary_user_id"`
	Address       string        `json:"address"`

	// Relationships
	PrimaryUser  *User                   `gorm:"foreignKey:PrimaryUserID;constraint:OnDelete:SET NULL;" json:"primary_user,omitempty"`
	Projects     []Project               `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`
	CustomFields []CustomFieldDefinition `gorm:"foreignKey:WorkspaceID" json:"custom_fields,omitempty"`
}

// IsClient reports whether the workspace is visible through the client portal
func (w Workspace) IsClient() bool {
	return w.Type == WorkspaceClient
}

// ProjectStatus is the lifecycle stage of a project
type ProjectStatus string

const (
	ProjectIntake   ProjectStatus = "INTAKE"
	ProjectPending  ProjectStatus = "PENDING"
	ProjectActive   ProjectStatus = "ACTIVE"
	ProjectOnHold   ProjectStatus = "ON_HOLD"
	ProjectComplete ProjectStatus = "COMPLETE"
)

// Project is nested under a workspace and owns lists, tasks and folders
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkspaceID uint          `gorm:"not null;index" json:"workspace_id"`
	Name        string        `gorm:"not null" json:"name"`
	Status      ProjectStatus `gorm:"type:varchar(16);not null;default:INTAKE;index" json:"status"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Description string        `json:"description"`

	// Relationships
	Workspace         *Workspace         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"workspace,omitempty"`
	Lists             []List             `gorm:"foreignKey:ProjectID" json:"lists,omitempty"`
	CustomFieldValues []CustomFieldValue `gorm:"foreignKey:ProjectID" json:"custom_field_values,omitempty"`
}

// List is a named grouping of tasks inside a project. It does not own tasks;
// membership is recorded through ListTask.
type List struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	Name      string `gorm:"not null" json:"name"`

	Project *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project,omitempty"`
}

// ListTask records that a task belongs to a list
type ListTask struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ListID    uint      `gorm:"not null;uniqueIndex:uq_list_task,priority:1" json:"list_id"`
	TaskID    uint      `gorm:"not null;uniqueIndex:uq_list_task,priority:2;index" json:"task_id"`

	List *List `gorm:"constraint:OnDelete:CASCADE;" json:"list,omitempty"`
	Task *Task `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
