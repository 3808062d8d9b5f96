package db

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CommentFile is attachment metadata sent with a comment
type CommentFile struct {
	Filename   string
	StorageKey string
	Size       int64
	MimeType   string
}

// AddCommentRequest holds the data needed to comment on a task
type AddCommentRequest struct {
	TaskID          uint
	AuthorID        *uint
	Body            string
	ParentCommentID *uint
	Files           []CommentFile
}

// AddComment stores a comment and its attachments. A reply must answer a
// top-level comment on the same task.
func AddComment(ctx context.Context, req AddCommentRequest) (*models.TaskComment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, invalid("comment body is required")
	}

	comment := models.TaskComment{
		TaskID:          req.TaskID,
		AuthorID:        req.AuthorID,
		Body:            body,
		ParentCommentID: req.ParentCommentID,
	}
	for _, f := range req.Files {
		if strings.TrimSpace(f.Filename) == "" || f.StorageKey == "" {
			return nil, invalid("attachments need a filename and storage key")
		}
		mime := f.MimeType
		if mime == "" {
			mime = "application/octet-stream"
		}
		comment.Files = append(comment.Files, models.TaskCommentFile{
			Filename:   f.Filename,
			StorageKey: f.StorageKey,
			Size:       f.Size,
			MimeType:   mime,
		})
	}

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Task{}, req.TaskID).Error; err != nil {
			return notFound(err, "task", req.TaskID)
		}
		if req.ParentCommentID != nil {
			var parent models.TaskComment
			if err := tx.First(&parent, *req.ParentCommentID).Error; err != nil {
				return notFound(err, "comment", *req.ParentCommentID)
			}
			if parent.TaskID != req.TaskID {
				return invalid("comment #%d is on another task", parent.ID)
			}
			if parent.ParentCommentID != nil {
				return invalid("comment #%d is already a reply", parent.ID)
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// TaskComments returns the top-level comments of a task with their replies,
// oldest first at both levels
func TaskComments(ctx context.Context, taskID uint) ([]models.TaskComment, error) {
	oldest := func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }

	var comments []models.TaskComment
	err := DB.WithContext(ctx).
		Preload("Author").
		Preload("Files", oldest).
		Preload("Replies", oldest).
		Preload("Replies.Author").
		Preload("Replies.Files", oldest).
		Where("task_id = ? AND parent_comment_id IS NULL", taskID).
		Scopes(oldest).
		Find(&comments).Error
	return comments, err
}
