// Package fields merges a workspace's custom field definitions with the
// values one project has set.
package fields

import (
	"sort"

	"github.com/balkashynov/luna/internal/models"
)

// FieldValue is a definition paired with the project's value for it
type FieldValue struct {
	FieldID uint             `json:"field_id"`
	Name    string           `json:"name"`
	Type    models.FieldType `json:"type"`
	Value   string           `json:"value"`
}

// Project returns one entry per definition the project has a value for,
// in definition order. Fields without a value are left out, as are values
// whose definition is not in defs.
func Project(defs []models.CustomFieldDefinition, values []models.CustomFieldValue) []FieldValue {
	byField := make(map[uint]string, len(values))
	for _, v := range values {
		byField[v.CustomFieldID] = v.Value
	}

	ordered := make([]models.CustomFieldDefinition, len(defs))
	copy(ordered, defs)
	SortDefinitions(ordered)

	out := []FieldValue{}
	for _, d := range ordered {
		v, ok := byField[d.ID]
		if !ok {
			continue
		}
		out = append(out, FieldValue{FieldID: d.ID, Name: d.Name, Type: d.Type, Value: v})
	}
	return out
}

// SortDefinitions orders definitions by display order, then ID
func SortDefinitions(defs []models.CustomFieldDefinition) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Order != defs[j].Order {
			return defs[i].Order < defs[j].Order
		}
		return defs[i].ID < defs[j].ID
	})
}
