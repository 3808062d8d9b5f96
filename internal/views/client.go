package views

import (
	"context"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/fields"
	"github.com/balkashynov/luna/internal/hierarchy"
	"github.com/balkashynov/luna/internal/models"
)

// ClientOverview is the landing page of the client portal
type ClientOverview struct {
	Workspace        *models.Workspace   `json:"workspace"`
	Projects         []db.ProjectSummary `json:"projects"`
	ProjectCount     int                 `json:"project_count"`
	ActiveProjects   int                 `json:"active_projects"`
	PendingApprovals []models.Task       `json:"pending_approvals"`
}

// BuildClientOverview resolves slug to a CLIENT workspace and loads its
// projects and the tasks waiting on the client, with or without a project.
func BuildClientOverview(ctx context.Context, slug string) (*ClientOverview, error) {
	ws, err := db.GetClientWorkspace(ctx, slug)
	if err != nil {
		return nil, err
	}
	projects, err := db.ListProjects(ctx, &ws.ID)
	if err != nil {
		return nil, err
	}
	pending, err := db.PendingApprovals(ctx, &ws.ID)
	if err != nil {
		return nil, err
	}

	o := &ClientOverview{
		Workspace:        ws,
		Projects:         projects,
		ProjectCount:     len(projects),
		PendingApprovals: pending,
	}
	for _, p := range projects {
		if p.Status == models.ProjectActive {
			o.ActiveProjects++
		}
	}
	return o, nil
}

// ClientTaskRow is a task row with the approval label the client sees
type ClientTaskRow struct {
	hierarchy.TaskRow
	ApprovalStatus approval.Status `json:"approval_status"`
}

// ClientListGroup is a list and its rows in the client portal
type ClientListGroup struct {
	List models.List     `json:"list"`
	Rows []ClientTaskRow `json:"rows"`
}

// ClientProject is one project as the client sees it
type ClientProject struct {
	Workspace *models.Workspace   `json:"workspace"`
	Project   *models.Project     `json:"project"`
	Fields    []fields.FieldValue `json:"fields"`
	Direct    []ClientTaskRow     `json:"direct"`
	Groups    []ClientListGroup   `json:"groups"`
}

// BuildClientProject loads a project of the client workspace. A project of
// any other workspace is reported as not found.
func BuildClientProject(ctx context.Context, slug string, projectID uint) (*ClientProject, error) {
	ws, err := db.GetClientWorkspace(ctx, slug)
	if err != nil {
		return nil, err
	}
	project, err := db.GetWorkspaceProject(ctx, ws.ID, projectID)
	if err != nil {
		return nil, err
	}
	detail, err := buildProjectDetail(ctx, project)
	if err != nil {
		return nil, err
	}

	cp := &ClientProject{
		Workspace: ws,
		Project:   project,
		Fields:    detail.Fields,
		Direct:    clientRows(detail.Partition.Direct),
		Groups:    make([]ClientListGroup, 0, len(detail.Partition.Groups)),
	}
	for _, g := range detail.Partition.Groups {
		cp.Groups = append(cp.Groups, ClientListGroup{List: g.List, Rows: clientRows(g.Rows)})
	}
	return cp, nil
}

func clientRows(rows []hierarchy.TaskRow) []ClientTaskRow {
	out := make([]ClientTaskRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ClientTaskRow{TaskRow: r, ApprovalStatus: approval.ClientStatus(r.Task)})
	}
	return out
}

// ClientTask is a task page in the client portal
type ClientTask struct {
	Workspace *models.Workspace `json:"workspace"`
	*TaskDetail
}

// BuildClientTask loads a task of the client workspace, or not found when
// the task belongs elsewhere.
func BuildClientTask(ctx context.Context, slug string, taskID uint) (*ClientTask, error) {
	ws, err := db.GetClientWorkspace(ctx, slug)
	if err != nil {
		return nil, err
	}
	task, err := db.GetWorkspaceTask(ctx, ws.ID, taskID)
	if err != nil {
		return nil, err
	}
	detail, err := buildTaskDetail(ctx, task)
	if err != nil {
		return nil, err
	}
	return &ClientTask{Workspace: ws, TaskDetail: detail}, nil
}
