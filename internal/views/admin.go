package views

import (
	"context"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/fields"
	"github.com/balkashynov/luna/internal/hierarchy"
	"github.com/balkashynov/luna/internal/kanban"
	"github.com/balkashynov/luna/internal/models"
)

// Dashboard is the admin landing page
type Dashboard struct {
	Stats            db.Stats              `json:"stats"`
	Workspaces       []db.WorkspaceSummary `json:"workspaces"`
	PendingApprovals []models.Task         `json:"pending_approvals"`
}

// BuildDashboard loads the global counts, workspaces and approval queue
func BuildDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := db.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	workspaces, err := db.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := db.PendingApprovals(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, Workspaces: workspaces, PendingApprovals: pending}, nil
}

// WorkspaceDetail is the admin workspace page
type WorkspaceDetail struct {
	Workspace      *models.Workspace    `json:"workspace"`
	Stats          db.Stats             `json:"stats"`
	Projects       []ProjectSection     `json:"projects"`
	WorkspaceTasks []hierarchy.TaskRow  `json:"workspace_tasks"` // tasks without a project
	Files          hierarchy.FolderTree `json:"files"`           // workspace-level folders only
	Board          kanban.Board         `json:"board"`
}

// BuildWorkspaceDetail assembles a workspace with its projects by name,
// its project-less tasks, its folder tree and a board grouped by project.
func BuildWorkspaceDetail(ctx context.Context, id uint) (*WorkspaceDetail, error) {
	ws, err := db.GetWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, err := db.ListProjects(ctx, &id)
	if err != nil {
		return nil, err
	}
	s, err := loadScope(ctx, id, nil, projectIDs(projects))
	if err != nil {
		return nil, err
	}
	stats, err := db.WorkspaceStats(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &WorkspaceDetail{
		Workspace: ws,
		Stats:     stats,
		Projects:  make([]ProjectSection, 0, len(projects)),
		Board:     s.board(hierarchy.ProjectLabel),
	}
	for _, p := range projects {
		detail.Projects = append(detail.Projects, s.section(p.Project, ws.CustomFields))
	}

	var loose []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == nil {
			loose = append(loose, t)
		}
	}
	detail.WorkspaceTasks = hierarchy.Rows(loose, s.counts)

	// ListFolders/ListFiles already scoped to project_id IS NULL
	detail.Files = hierarchy.BuildFolderTree(s.folders, s.files)
	return detail, nil
}

// ProjectDetail is the admin project page
type ProjectDetail struct {
	ProjectSection
	Files hierarchy.FolderTree `json:"files"`
	Board kanban.Board         `json:"board"`
}

// BuildProjectDetail assembles one project: fields, direct and list-grouped
// tasks, its folder tree and a board grouped by list.
func BuildProjectDetail(ctx context.Context, id uint) (*ProjectDetail, error) {
	project, err := db.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildProjectDetail(ctx, project)
}

func buildProjectDetail(ctx context.Context, project *models.Project) (*ProjectDetail, error) {
	defs, err := db.CustomFields(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	s, err := loadScope(ctx, project.WorkspaceID, &project.ID, []uint{project.ID})
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		ProjectSection: s.section(*project, defs),
		Files:          hierarchy.BuildFolderTree(s.folders, s.files),
		Board: s.board(func(t models.Task) string {
			return hierarchy.ListLabel(t, hierarchy.DirectLabel)
		}),
	}, nil
}

// Crumb is one step of the path from a workspace down to a task
type Crumb struct {
	Kind  string `json:"kind"` // workspace, project or task
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// TaskDetail is the admin task page
type TaskDetail struct {
	Task           *models.Task         `json:"task"`
	Breadcrumbs    []Crumb              `json:"breadcrumbs"`
	Lists          []string             `json:"lists"`
	ApprovalStatus approval.Status      `json:"approval_status"`
	Comments       []models.TaskComment `json:"comments"`
	Files          []models.File        `json:"files"`
	BlockedBy      []models.Task        `json:"blocked_by"`
	Blocking       []models.Task        `json:"blocking"`
}

// BuildTaskDetail loads a task with its subtasks oldest first, comments,
// attachments and dependencies.
func BuildTaskDetail(ctx context.Context, id uint) (*TaskDetail, error) {
	task, err := db.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildTaskDetail(ctx, task)
}

func buildTaskDetail(ctx context.Context, task *models.Task) (*TaskDetail, error) {
	hierarchy.SortSubtasks(task.Subtasks)

	comments, err := db.TaskComments(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	files, err := db.TaskFiles(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	blockedBy, err := db.BlockedBy(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	blocking, err := db.Blocking(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	return &TaskDetail{
		Task:           task,
		Breadcrumbs:    Breadcrumbs(*task),
		Lists:          hierarchy.ListNames(*task),
		ApprovalStatus: approval.ClientStatus(*task),
		Comments:       comments,
		Files:          files,
		BlockedBy:      blockedBy,
		Blocking:       blocking,
	}, nil
}

// Breadcrumbs returns workspace, project and parent task crumbs for the
// relations that are loaded on t.
func Breadcrumbs(t models.Task) []Crumb {
	crumbs := []Crumb{}
	if t.Workspace != nil {
		crumbs = append(crumbs, Crumb{Kind: "workspace", ID: t.Workspace.ID, Label: t.Workspace.Name})
	}
	if t.Project != nil {
		crumbs = append(crumbs, Crumb{Kind: "project", ID: t.Project.ID, Label: t.Project.Name})
	}
	if t.ParentTask != nil {
		crumbs = append(crumbs, Crumb{Kind: "task", ID: t.ParentTask.ID, Label: t.ParentTask.Name})
	}
	return crumbs
}

// TaskIndexRow is a task in the admin task index
type TaskIndexRow struct {
	models.Task
	Lists        []string `json:"lists"`
	SubtaskCount int64    `json:"subtask_count"`
}

// BuildTaskIndex lists top-level tasks newest first with their list names
// and subtask counts
func BuildTaskIndex(ctx context.Context, filter db.TaskFilter) ([]TaskIndexRow, error) {
	filter.WithSubtask = false
	tasks, err := db.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts, err := db.SubtaskCounts(ctx, db.TaskIDs(tasks))
	if err != nil {
		return nil, err
	}

	rows := make([]TaskIndexRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskIndexRow{Task: t, Lists: hierarchy.ListNames(t), SubtaskCount: counts[t.ID]})
	}
	return rows, nil
}

// FieldsFor projects the custom fields of one project
func FieldsFor(ctx context.Context, project models.Project) ([]fields.FieldValue, error) {
	defs, err := db.CustomFields(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	values, err := db.ProjectFieldValues(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return fields.Project(defs, values), nil
}
