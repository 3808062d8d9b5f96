package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/db"
)

// httpError maps service errors onto status codes. Anything unclassified
// is logged and hidden behind a 500.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrValidation),
		errors.Is(err, approval.ErrInvalidDecision):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrConstraint),
		errors.Is(err, approval.ErrAlreadyDecided):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	s.logger.Error("request failed",
		zap.Error(err),
		zap.String("uri", c.Request().RequestURI),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// optionalID reads a numeric query parameter; empty means nil
func optionalID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	v := uint(id)
	return &v, nil
}
