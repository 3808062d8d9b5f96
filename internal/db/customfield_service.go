package db

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CreateCustomFieldRequest holds the data needed to define a workspace field
type CreateCustomFieldRequest struct {
	WorkspaceID uint
	Name        string
	Type        models.FieldType
	Options     []string
	Order       int
}

// CreateCustomField defines a project field for a workspace
func CreateCustomField(ctx context.Context, req CreateCustomFieldRequest) (*models.CustomFieldDefinition, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("field name is required")
	}
	fieldType := req.Type
	if fieldType == "" {
		fieldType = models.FieldText
	}
	switch fieldType {
	case models.FieldText, models.FieldNumber, models.FieldDate:
		if len(req.Options) > 0 {
			return nil, invalid("only SELECT fields take options")
		}
	case models.FieldSelect:
		if len(req.Options) == 0 {
			return nil, invalid("SELECT field %q needs options", name)
		}
	default:
		return nil, invalid("unknown field type %q", fieldType)
	}

	def := models.CustomFieldDefinition{
		WorkspaceID: req.WorkspaceID,
		Name:        name,
		Type:        fieldType,
		Order:       req.Order,
	}
	def.SetOptions(req.Options)

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Workspace{}, req.WorkspaceID).Error; err != nil {
			return notFound(err, "workspace", req.WorkspaceID)
		}
		return tx.Create(&def).Error
	})
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// CustomFields returns a workspace's definitions by display order
func CustomFields(ctx context.Context, workspaceID uint) ([]models.CustomFieldDefinition, error) {
	var defs []models.CustomFieldDefinition
	err := DB.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("sort_order ASC, id ASC").
		Find(&defs).Error
	return defs, err
}

// ProjectFieldValues returns the values set on the given projects
func ProjectFieldValues(ctx context.Context, projectIDs ...uint) ([]models.CustomFieldValue, error) {
	var values []models.CustomFieldValue
	if len(projectIDs) == 0 {
		return values, nil
	}
	err := DB.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("id ASC").
		Find(&values).Error
	return values, err
}

// SetCustomFieldValue stores a project's value for a field. It fails with
// ErrConstraint when the project already has a value for the field; use
// UpdateCustomFieldValue to change it.
func SetCustomFieldValue(ctx context.Context, projectID, fieldID uint, value string) (*models.CustomFieldValue, error) {
	v := models.CustomFieldValue{ProjectID: projectID, CustomFieldID: fieldID, Value: value}
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkFieldValue(tx, projectID, fieldID, value); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.CustomFieldValue{}).
			Where("project_id = ? AND custom_field_id = ?", projectID, fieldID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflict("project #%d already has a value for field #%d", projectID, fieldID)
		}

		if err := tx.Create(&v).Error; err != nil {
			if isUniqueViolation(err) {
				return conflict("project #%d already has a value for field #%d", projectID, fieldID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateCustomFieldValue overwrites an existing value
func UpdateCustomFieldValue(ctx context.Context, projectID, fieldID uint, value string) (*models.CustomFieldValue, error) {
	var v models.CustomFieldValue
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkFieldValue(tx, projectID, fieldID, value); err != nil {
			return err
		}
		if err := tx.Where("project_id = ? AND custom_field_id = ?", projectID, fieldID).First(&v).Error; err != nil {
			return notFound(err, "value for field", fieldID)
		}
		v.Value = value
		return tx.Model(&v).Update("value", value).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func checkFieldValue(tx *gorm.DB, projectID, fieldID uint, value string) error {
	var project models.Project
	if err := tx.First(&project, projectID).Error; err != nil {
		return notFound(err, "project", projectID)
	}
	var def models.CustomFieldDefinition
	if err := tx.First(&def, fieldID).Error; err != nil {
		return notFound(err, "custom field", fieldID)
	}
	if def.WorkspaceID != project.WorkspaceID {
		return invalid("field #%d belongs to another workspace", fieldID)
	}

	switch def.Type {
	case models.FieldSelect:
		if !def.HasOption(value) {
			return invalid("%q is not an option of %s", value, def.Name)
		}
	case models.FieldNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return invalid("%s expects a number", def.Name)
		}
	case models.FieldDate:
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err != nil {
			return invalid("%s expects a date as yyyy-mm-dd", def.Name)
		}
	}
	return nil
}
