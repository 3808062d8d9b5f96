package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
	"github.com/balkashynov/luna/internal/views"
)

// StatusStateRequest is the request body for PATCH /api/statuses/:id.
type StatusStateRequest struct {
	State string `json:"state"` // active or archived
}

// DecisionRequest is the request body for POST /api/tasks/:id/approval.
type DecisionRequest struct {
	Decision string `json:"decision"` // approve or reject
	Note     string `json:"note"`
}

func (s *Server) handleDashboard(c echo.Context) error {
	d, err := views.BuildDashboard(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) handleListWorkspaces(c echo.Context) error {
	workspaces, err := db.ListWorkspaces(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, workspaces)
}

func (s *Server) handleGetWorkspace(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := views.BuildWorkspaceDetail(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkspace(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := db.DeleteWorkspace(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListProjects(c echo.Context) error {
	workspaceID, err := optionalID(c, "workspace_id")
	if err != nil {
		return err
	}
	projects, err := db.ListProjects(c.Request().Context(), workspaceID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleGetProject(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := views.BuildProjectDetail(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) handleListTasks(c echo.Context) error {
	var (
		filter db.TaskFilter
		err    error
	)
	if filter.WorkspaceID, err = optionalID(c, "workspace_id"); err != nil {
		return err
	}
	if filter.ProjectID, err = optionalID(c, "project_id"); err != nil {
		return err
	}
	if filter.StatusID, err = optionalID(c, "status_id"); err != nil {
		return err
	}

	rows, err := views.BuildTaskIndex(c.Request().Context(), filter)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req db.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := db.CreateTask(c.Request().Context(), req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := views.BuildTaskDetail(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (s *Server) handleDecideApproval(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req DecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	decision, err := approval.ParseDecision(req.Decision)
	if err != nil {
		return s.httpError(c, err)
	}

	a, err := db.DecideApproval(c.Request().Context(), id, decision, currentUser(c).ID, req.Note)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handlePendingApprovals(c echo.Context) error {
	workspaceID, err := optionalID(c, "workspace_id")
	if err != nil {
		return err
	}
	tasks, err := db.PendingApprovals(c.Request().Context(), workspaceID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleListLists(c echo.Context) error {
	projectID, err := optionalID(c, "project_id")
	if err != nil {
		return err
	}
	lists, err := db.ListLists(c.Request().Context(), projectID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

func (s *Server) handleListStatuses(c echo.Context) error {
	statuses, err := db.ListStatuses(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, statuses)
}

func (s *Server) handleSetStatusState(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req StatusStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	state := models.StatusState(strings.ToUpper(strings.TrimSpace(req.State)))
	status, err := db.SetStatusState(c.Request().Context(), id, state)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := db.DeleteTask(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
