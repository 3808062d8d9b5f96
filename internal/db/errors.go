package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the entity does not exist or is outside the caller's scope
	ErrNotFound = errors.New("not found")
	// ErrValidation means the request was rejected before anything was written
	ErrValidation = errors.New("validation failed")
	// ErrConstraint means a uniqueness or reference rule would be broken
	ErrConstraint = errors.New("constraint violation")
)

// notFound maps gorm.ErrRecordNotFound to ErrNotFound, e.g. "task #3 not found"
func notFound(err error, what string, id any) error {
	ref := what
	switch v := id.(type) {
	case string:
		if v != "" {
			ref = fmt.Sprintf("%s %q", what, v)
		}
	default:
		ref = fmt.Sprintf("%s #%v", what, v)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", ref, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", ref, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConstraint)
}

// isUniqueViolation recognizes duplicate keys with or without TranslateError
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
