package models

import (
	"time"
)

// Folder groups files inside a workspace or project. ParentID nil means the
// folder sits at the root of its scope.
type Folder struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkspaceID uint   `gorm:"not null;index" json:"workspace_id"`
	ProjectID   *uint  `gorm:"index" json:"project_id"`
	ParentID    *uint  `gorm:"index" json:"parent_id"`
	Name        string `gorm:"not null" json:"name"`

	Workspace *Workspace `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Project   *Project   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Parent    *Folder    `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// File is metadata for an object stored elsewhere under StorageKey
type File struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Filename    string `gorm:"not null" json:"filename"`
	StorageKey  string `gorm:"not null;uniqueIndex" json:"storage_key"`
	Size        int64  `gorm:"not null;default:0" json:"size"`
	MimeType    string `gorm:"not null;default:application/octet-stream" json:"mime_type"`
	UploaderID  *uint  `json:"uploader_id"`
	WorkspaceID uint   `gorm:"not null;index" json:"workspace_id"`
	ProjectID   *uint  `gorm:"index" json:"project_id"`
	FolderID    *uint  `gorm:"index" json:"folder_id"`

	Uploader  *User      `gorm:"foreignKey:UploaderID;constraint:OnDelete:SET NULL;" json:"uploader,omitempty"`
	Workspace *Workspace `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Project   *Project   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Folder    *Folder    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
