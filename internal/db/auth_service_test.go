package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func freezeClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	clock := at
	now = func() time.Time { return clock }
	t.Cleanup(func() { now = time.Now })
	return &clock
}

func TestMagicLinkSignIn(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	freezeClock(t, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

	mt, err := CreateMagicToken(ctx, " Ava@Crescent.Local ", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "ava@crescent.local", mt.Email)

	session, err := RedeemMagicToken(ctx, mt.Token, 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	user, err := SessionUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "ava@crescent.local", user.Email)
	assert.Equal(t, models.RoleClient, user.Role)

	_, err = RedeemMagicToken(ctx, mt.Token, 24*time.Hour)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, DeleteSession(ctx, session.Token))
	_, err = SessionUser(ctx, session.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMagicLinkExpiry(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	clock := freezeClock(t, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

	mt, err := CreateMagicToken(ctx, "late@studio.test", 15*time.Minute)
	require.NoError(t, err)

	*clock = clock.Add(16 * time.Minute)
	_, err = RedeemMagicToken(ctx, mt.Token, time.Hour)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = RedeemMagicToken(ctx, "no-such-token", time.Hour)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpires(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	clock := freezeClock(t, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))

	admin, err := CreateUser(ctx, CreateUserRequest{Email: "admin@studio.test", Role: models.RoleAdmin})
	require.NoError(t, err)
	mt, err := CreateMagicToken(ctx, admin.Email, time.Minute)
	require.NoError(t, err)
	session, err := RedeemMagicToken(ctx, mt.Token, time.Hour)
	require.NoError(t, err)

	user, err := SessionUser(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	*clock = clock.Add(2 * time.Hour)
	_, err = SessionUser(ctx, session.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserValidation(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	_, err := CreateUser(ctx, CreateUserRequest{Email: "not an email"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateUser(ctx, CreateUserRequest{Email: "sam@studio.test", Role: "OWNER"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateUser(ctx, CreateUserRequest{Email: "sam@studio.test"})
	require.NoError(t, err)
	_, err = CreateUser(ctx, CreateUserRequest{Email: "SAM@studio.test"})
	assert.ErrorIs(t, err, ErrConstraint)

	u, err := GetUserByEmail(ctx, "Sam@Studio.test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, u.Role)
}
