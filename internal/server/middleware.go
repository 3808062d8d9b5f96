package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/balkashynov/luna/internal/auth"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
)

const userKey = "user"

// requireAdmin lets only signed-in ADMIN users through
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.resolver.Resolve(c.Request())
		if errors.Is(err, auth.ErrUnauthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
		}
		if err != nil {
			return s.httpError(c, err)
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		c.Set(userKey, user)
		return next(c)
	}
}

// clientAccess keeps client users assigned to a workspace inside it.
// Anonymous visitors, unassigned clients and admins pass; the portal is
// reachable by slug.
func (s *Server) clientAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.resolver.Resolve(c.Request())
		if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
			return s.httpError(c, err)
		}
		if user == nil || user.IsAdmin() || user.WorkspaceID == nil {
			return next(c)
		}

		ws, err := db.GetClientWorkspace(c.Request().Context(), c.Param("slug"))
		if err != nil {
			return s.httpError(c, err)
		}
		if *user.WorkspaceID != ws.ID {
			return echo.NewHTTPError(http.StatusNotFound, "workspace not found")
		}
		c.Set(userKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
