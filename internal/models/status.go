package models

import (
	"time"
)

// StatusState controls whether a status is shown as a kanban column
type StatusState string

const (
	StatusActive   StatusState = "ACTIVE"
	StatusArchived StatusState = "ARCHIVED"
)

// TaskStatus is a global, ordered task state
type TaskStatus struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string      `gorm:"not null" json:"name"`
	Color     string      `gorm:"not null;default:#E4E4E7" json:"color"`
	Order     int         `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsDefault bool        `gorm:"not null;default:false" json:"is_default"`
	State     StatusState `gorm:"type:varchar(16);not null;default:ACTIVE" json:"state"`
}

// IsActive reports whether tasks on this status appear on boards
func (s TaskStatus) IsActive() bool {
	return s.State == StatusActive
}

// ApprovalStatus is the decision state of a task approval
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// TaskApproval exists for every task created with RequiresApproval.
// Status, DecidedByID and DecidedAt change together.
type TaskApproval struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID      uint           `gorm:"not null;uniqueIndex" json:"task_id"`
	Status      ApprovalStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	DecidedByID *uint          `json:"decided_by_id"`
	DecidedAt   *time.Time     `json:"decided_at"`
	Note        string         `json:"note"`

	Task      *Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DecidedBy *User `gorm:"foreignKey:DecidedByID;constraint:OnDelete:SET NULL;" json:"decided_by,omitempty"`
}
