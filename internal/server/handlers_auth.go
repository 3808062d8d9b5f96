package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/balkashynov/luna/internal/auth"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
)

// MagicLinkRequest is the request body for POST /auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// SessionResponse is returned once a sign-in link is redeemed.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

func (s *Server) handleMagicLink(c echo.Context) error {
	var req MagicLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email required")
	}

	ctx := c.Request().Context()
	token, err := db.CreateMagicToken(ctx, req.Email, s.config.Auth.TokenTTL)
	if err != nil {
		return s.httpError(c, err)
	}

	link := auth.MagicLink(s.config.Server.BaseURL, token.Token)
	if err := s.mailer.SendMagicLink(ctx, token.Email, link); err != nil {
		s.logger.Warn("failed to send magic link", zap.String("email", token.Email), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "could not send sign-in link")
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "sent"})
}

func (s *Server) handleVerify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token required")
	}

	session, err := db.RedeemMagicToken(c.Request().Context(), token, s.config.Auth.SessionTTL)
	if err != nil {
		return s.httpError(c, err)
	}

	auth.SetSessionCookie(c.Response(), session.Token, s.config.Auth.SessionTTL)
	return c.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	if token := auth.SessionToken(c.Request()); token != "" {
		if err := db.DeleteSession(c.Request().Context(), token); err != nil {
			return s.httpError(c, err)
		}
	}
	auth.ClearSessionCookie(c.Response())
	return c.NoContent(http.StatusNoContent)
}
