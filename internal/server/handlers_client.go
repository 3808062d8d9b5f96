package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/balkashynov/luna/internal/views"
)

func (s *Server) handleClientOverview(c echo.Context) error {
	o, err := views.BuildClientOverview(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (s *Server) handleClientProject(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	p, err := views.BuildClientProject(c.Request().Context(), c.Param("slug"), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleClientTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	t, err := views.BuildClientTask(c.Request().Context(), c.Param("slug"), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
