// Package auth resolves HTTP requests to signed-in users and delivers
// magic sign-in links. Credential checks happen elsewhere; a session token
// issued by db.RedeemMagicToken is all this package trusts.
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
)

// SessionCookie carries the session token in browsers
const SessionCookie = "luna_session"

// ErrUnauthenticated means the request carries no live session
var ErrUnauthenticated = errors.New("not signed in")

// Resolver maps a request to the user behind it
type Resolver interface {
	Resolve(r *http.Request) (*models.User, error)
}

// SessionResolver looks sessions up in the database
type SessionResolver struct{}

// Resolve returns the session user, or ErrUnauthenticated
func (SessionResolver) Resolve(r *http.Request) (*models.User, error) {
	token := SessionToken(r)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := db.SessionUser(r.Context(), token)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	return user, err
}

// SessionToken reads the session cookie, falling back to a bearer token
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// SetSessionCookie stores token in the browser for ttl
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// MagicLink builds the verification URL sent by email
func MagicLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/verify?" + url.Values{"token": {token}}.Encode()
}

// Mailer delivers sign-in links
type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// LogMailer writes links to the log instead of sending mail. It is what
// `luna serve` uses when no mail provider is wired.
type LogMailer struct {
	Logger *zap.Logger
}

// SendMagicLink logs the link at info level
func (m LogMailer) SendMagicLink(_ context.Context, email, link string) error {
	m.Logger.Info("magic link issued", zap.String("email", email), zap.String("link", link))
	return nil
}
