package db

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CreateFolderRequest holds the data needed to create a folder
type CreateFolderRequest struct {
	WorkspaceID uint
	ProjectID   *uint
	ParentID    *uint
	Name        string
}

// CreateFileRequest holds the metadata of an uploaded object
type CreateFileRequest struct {
	WorkspaceID uint
	ProjectID   *uint
	FolderID    *uint
	UploaderID  *uint
	Filename    string
	StorageKey  string // generated when empty
	Size        int64
	MimeType    string
}

// CreateFolder creates a folder. A parent must sit in the same scope.
func CreateFolder(ctx context.Context, req CreateFolderRequest) (*models.Folder, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("folder name is required")
	}

	folder := models.Folder{
		WorkspaceID: req.WorkspaceID,
		ProjectID:   req.ProjectID,
		ParentID:    req.ParentID,
		Name:        name,
	}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkScope(tx, req.WorkspaceID, req.ProjectID); err != nil {
			return err
		}
		if req.ParentID != nil {
			if _, err := scopedFolder(tx, *req.ParentID, req.WorkspaceID, req.ProjectID); err != nil {
				return err
			}
		}
		return tx.Create(&folder).Error
	})
	if err != nil {
		return nil, err
	}

	log.Debug("folder created", zap.Uint("folder_id", folder.ID))
	return &folder, nil
}

// MoveFolder re-parents a folder inside its scope. Moving a folder under
// itself or one of its descendants is rejected.
func MoveFolder(ctx context.Context, id uint, parentID *uint) (*models.Folder, error) {
	var folder models.Folder
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&folder, id).Error; err != nil {
			return notFound(err, "folder", id)
		}

		if parentID != nil {
			if _, err := scopedFolder(tx, *parentID, folder.WorkspaceID, folder.ProjectID); err != nil {
				return err
			}
			// Walk up from the new parent; meeting the folder means a cycle.
			seen := map[uint]bool{}
			for cur := parentID; cur != nil; {
				if *cur == id {
					return invalid("folder #%d cannot move under itself or a descendant", id)
				}
				if seen[*cur] {
					break
				}
				seen[*cur] = true

				var ancestor models.Folder
				if err := tx.Select("id", "parent_id").First(&ancestor, *cur).Error; err != nil {
					return notFound(err, "folder", *cur)
				}
				cur = ancestor.ParentID
			}
		}

		folder.ParentID = parentID
		return tx.Model(&folder).Update("parent_id", parentID).Error
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListFolders returns the folders of one scope. A nil project means the
// workspace-level folders.
func ListFolders(ctx context.Context, workspaceID uint, projectID *uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := DB.WithContext(ctx).
		Scopes(inScope(workspaceID, projectID)).
		Order("name ASC, id ASC").
		Find(&folders).Error
	return folders, err
}

// CreateFile records metadata for an object already in storage
func CreateFile(ctx context.Context, req CreateFileRequest) (*models.File, error) {
	name := strings.TrimSpace(req.Filename)
	if name == "" {
		return nil, invalid("filename is required")
	}
	if req.Size < 0 {
		return nil, invalid("size cannot be negative")
	}
	key := req.StorageKey
	if key == "" {
		key = uuid.NewString()
	}
	mime := req.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}

	file := models.File{
		Filename:    name,
		StorageKey:  key,
		Size:        req.Size,
		MimeType:    mime,
		UploaderID:  req.UploaderID,
		WorkspaceID: req.WorkspaceID,
		ProjectID:   req.ProjectID,
		FolderID:    req.FolderID,
	}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkScope(tx, req.WorkspaceID, req.ProjectID); err != nil {
			return err
		}
		if req.FolderID != nil {
			if _, err := scopedFolder(tx, *req.FolderID, req.WorkspaceID, req.ProjectID); err != nil {
				return err
			}
		}
		if err := tx.Create(&file).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("storage key %q is already used", key)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFiles returns the files of one scope, folder or not
func ListFiles(ctx context.Context, workspaceID uint, projectID *uint) ([]models.File, error) {
	var files []models.File
	err := DB.WithContext(ctx).
		Scopes(inScope(workspaceID, projectID)).
		Order("filename ASC, id ASC").
		Find(&files).Error
	return files, err
}

// AttachFile links a file to a task of the same workspace
func AttachFile(ctx context.Context, taskID, fileID uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err, "task", taskID)
		}
		var file models.File
		if err := tx.First(&file, fileID).Error; err != nil {
			return notFound(err, "file", fileID)
		}
		if file.WorkspaceID != task.WorkspaceID {
			return invalid("file #%d belongs to another workspace", fileID)
		}
		if err := tx.Create(&models.TaskFile{TaskID: taskID, FileID: fileID}).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("file #%d is already attached to task #%d", fileID, taskID)
			}
			return err
		}
		return nil
	})
}

// TaskFiles returns the files attached to a task
func TaskFiles(ctx context.Context, taskID uint) ([]models.File, error) {
	var files []models.File
	err := DB.WithContext(ctx).
		Where("id IN (?)", DB.Model(&models.TaskFile{}).Select("file_id").Where("task_id = ?", taskID)).
		Order("filename ASC, id ASC").
		Find(&files).Error
	return files, err
}

func inScope(workspaceID uint, projectID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("workspace_id = ?", workspaceID)
		if projectID == nil {
			return db.Where("project_id IS NULL")
		}
		return db.Where("project_id = ?", *projectID)
	}
}

func checkScope(tx *gorm.DB, workspaceID uint, projectID *uint) error {
	if err := tx.Select("id").First(&models.Workspace{}, workspaceID).Error; err != nil {
		return notFound(err, "workspace", workspaceID)
	}
	if projectID != nil {
		var project models.Project
		if err := tx.First(&project, *projectID).Error; err != nil {
			return notFound(err, "project", *projectID)
		}
		if project.WorkspaceID != workspaceID {
			return invalid("project #%d belongs to another workspace", project.ID)
		}
	}
	return nil
}

func scopedFolder(tx *gorm.DB, id, workspaceID uint, projectID *uint) (*models.Folder, error) {
	var folder models.Folder
	if err := tx.First(&folder, id).Error; err != nil {
		return nil, notFound(err, "folder", id)
	}
	if folder.WorkspaceID != workspaceID || !sameProject(folder.ProjectID, projectID) {
		return nil, invalid("folder #%d is in another scope", id)
	}
	return &folder, nil
}
