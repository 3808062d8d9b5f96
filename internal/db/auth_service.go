package db

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/luna/internal/models"
)

// CreateUserRequest holds the data needed to create a user
type CreateUserRequest struct {
	Email       string
	Name        string
	Role        models.Role
	WorkspaceID *uint
}

// CreateUser creates a user with a unique email
func CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleAdmin && role != models.RoleClient {
		return nil, invalid("unknown role %q", role)
	}

	user := models.User{Email: email, Name: strings.TrimSpace(req.Name), Role: role, WorkspaceID: req.WorkspaceID}
	if err := DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("user %s already exists", email)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

// AssignUserWorkspace ties a client user to the workspace they may see
func AssignUserWorkspace(ctx context.Context, userID, workspaceID uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Workspace{}, workspaceID).Error; err != nil {
			return notFound(err, "workspace", workspaceID)
		}
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("workspace_id", workspaceID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(gorm.ErrRecordNotFound, "user", userID)
		}
		return nil
	})
}

// CreateMagicToken issues a one-time sign-in token for email
func CreateMagicToken(ctx context.Context, email string, ttl time.Duration) (*models.MagicToken, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	token := models.MagicToken{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: now().Add(ttl),
	}
	if err := DB.WithContext(ctx).Create(&token).Error; err != nil {
		return nil, err
	}

	log.Debug("magic token issued", zap.String("email", email))
	return &token, nil
}

// RedeemMagicToken spends a sign-in token and opens a session, creating a
// CLIENT user for unknown emails.
func RedeemMagicToken(ctx context.Context, token string, sessionTTL time.Duration) (*models.Session, error) {
	var session models.Session
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mt models.MagicToken
		if err := tx.Where("token = ?", token).First(&mt).Error; err != nil {
			return notFound(err, "sign-in link", "")
		}

		t := now()
		if mt.RedeemedAt != nil {
			return invalid("sign-in link was already used")
		}
		if t.After(mt.ExpiresAt) {
			return invalid("sign-in link expired")
		}

		res := tx.Model(&models.MagicToken{}).
			Where("id = ? AND redeemed_at IS NULL", mt.ID).
			Update("redeemed_at", t)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalid("sign-in link was already used")
		}

		user := models.User{Email: mt.Email, Role: models.RoleClient}
		if err := tx.Where(models.User{Email: mt.Email}).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		session = models.Session{
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: t.Add(sessionTTL),
			User:      user,
		}
		return tx.Omit("User").Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info("session opened", zap.Uint("user_id", session.UserID))
	return &session, nil
}

// SessionUser returns the user behind a live session token
func SessionUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, notFound(gorm.ErrRecordNotFound, "session", "")
	}
	var session models.Session
	err := DB.WithContext(ctx).
		Preload("User").
		Where("token = ? AND expires_at > ?", token, now()).
		First(&session).Error
	if err != nil {
		return nil, notFound(err, "session", "")
	}
	return &session.User, nil
}

// DeleteSession signs a session out. Unknown tokens are not an error.
func DeleteSession(ctx context.Context, token string) error {
	return DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("invalid email %q", email)
	}
	return email, nil
}
