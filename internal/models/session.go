package models

import (
	"time"
)

// Role is what a signed-in user may see
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User is an identity resolved through the magic-link sign-in
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Name        string `json:"name"`
	Role        Role   `gorm:"type:varchar(16);not null;default:CLIENT" json:"role"`
	WorkspaceID *uint  `gorm:"index" json:"workspace_id"` // client users only
}

// DisplayName prefers the name and falls back to the email
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// IsAdmin reports whether the user may use the admin surface
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MagicToken is a one-time sign-in link token
type MagicToken struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	Email      string     `gorm:"not null;index" json:"email"`
	Token      string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	RedeemedAt *time.Time `json:"redeemed_at"`
}

// Session represents a signed-in browser or API client
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// Relationships
	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
}
