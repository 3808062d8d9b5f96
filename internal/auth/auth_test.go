package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/logging"
)

func TestSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", SessionToken(r))

	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", SessionToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, SessionToken(r))
}

func TestSessionCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}

func TestMagicLink(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/auth/verify?token=a%2Bb", MagicLink("http://localhost:8080/", "a+b"))
}

func TestSessionResolver(t *testing.T) {
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "luna.db")))
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	mt, err := db.CreateMagicToken(ctx, "ava@crescent.local", time.Minute)
	require.NoError(t, err)
	session, err := db.RedeemMagicToken(ctx, mt.Token, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+session.Token)
	user, err := SessionResolver{}.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "ava@crescent.local", user.Email)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	_, err = SessionResolver{}.Resolve(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogMailer(t *testing.T) {
	logger, logs := logging.NewTest()

	require.NoError(t, LogMailer{Logger: logger}.SendMagicLink(context.Background(), "a@b.test", "http://x/auth/verify?token=1"))

	entries := logs.FilterMessage("magic link issued").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@b.test", entries[0].ContextMap()["email"])
}
