package models

import (
	"encoding/json"
	"time"
)

// FieldType is the input type of a workspace custom field
type FieldType string

const (
	FieldText   FieldType = "TEXT"
	FieldSelect FieldType = "SELECT"
	FieldNumber FieldType = "NUMBER"
	FieldDate   FieldType = "DATE"
)

// CustomFieldDefinition is a workspace-defined project attribute
type CustomFieldDefinition struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        FieldType `gorm:"type:varchar(16);not null;default:TEXT" json:"type"`
	OptionsJSON string    `gorm:"column:options;not null;default:'[]'" json:"-"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`

	Workspace *Workspace `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName keeps the table name aligned with the workspace ownership
func (CustomFieldDefinition) TableName() string {
	return "workspace_custom_fields"
}

// Options decodes the ordered option list
func (d CustomFieldDefinition) Options() []string {
	if d.OptionsJSON == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(d.OptionsJSON), &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes the ordered option list
func (d *CustomFieldDefinition) SetOptions(opts []string) {
	if opts == nil {
		opts = []string{}
	}
	b, _ := json.Marshal(opts)
	d.OptionsJSON = string(b)
}

// HasOption reports whether value is one of the SELECT options
func (d CustomFieldDefinition) HasOption(value string) bool {
	for _, o := range d.Options() {
		if o == value {
			return true
		}
	}
	return false
}

// CustomFieldValue holds one project's value for one field.
// At most one row exists per (project, field).
type CustomFieldValue struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID     uint   `gorm:"not null;uniqueIndex:uq_project_custom_field,priority:1" json:"project_id"`
	CustomFieldID uint   `gorm:"not null;uniqueIndex:uq_project_custom_field,priority:2;index" json:"custom_field_id"`
	Value         string `gorm:"not null" json:"value"`

	Project     *Project               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CustomField *CustomFieldDefinition `gorm:"foreignKey:CustomFieldID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"custom_field,omitempty"`
}

// TableName keeps the table name aligned with the project ownership
func (CustomFieldValue) TableName() string {
	return "project_custom_field_values"
}
