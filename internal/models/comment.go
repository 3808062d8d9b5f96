package models

import (
	"time"
)

// TaskComment is a comment on a task. Replies point at a top-level comment
// through ParentCommentID; replies are not threaded further.
type TaskComment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID          uint   `gorm:"not null;index" json:"task_id"`
	AuthorID        *uint  `json:"author_id"`
	Body            string `gorm:"not null" json:"body"`
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id"`

	Task          *Task             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Author        *User             `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL;" json:"author,omitempty"`
	ParentComment *TaskComment      `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE;" json:"-"`
	Replies       []TaskComment     `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
	Files         []TaskCommentFile `gorm:"foreignKey:CommentID" json:"files,omitempty"`
}

// TaskCommentFile is attachment metadata for a comment
type TaskCommentFile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CommentID  uint   `gorm:"not null;index" json:"comment_id"`
	Filename   string `gorm:"not null" json:"filename"`
	StorageKey string `gorm:"not null" json:"storage_key"`
	Size       int64  `gorm:"not null;default:0" json:"size"`
	MimeType   string `gorm:"not null;default:application/octet-stream" json:"mime_type"`

	Comment *TaskComment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;" json:"-"`
}
