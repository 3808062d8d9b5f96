package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

// setupTestDB points the package at a fresh database file for one test
func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "luna.db")))
	t.Cleanup(func() { _ = Close() })
}

type fixture struct {
	admin    *models.User
	client   *models.Workspace
	company  *models.Workspace
	todo     *models.TaskStatus
	archived *models.TaskStatus
	project  *models.Project
	other    *models.Project
	design   *models.List
	build    *models.List
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	setupTestDB(t)
	ctx := context.Background()
	f := &fixture{}
	var err error

	f.admin, err = CreateUser(ctx, CreateUserRequest{Email: "admin@studio.test", Name: "Admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	f.client, err = CreateWorkspace(ctx, CreateWorkspaceRequest{Name: "Acme", Type: models.WorkspaceClient})
	require.NoError(t, err)
	f.company, err = CreateWorkspace(ctx, CreateWorkspaceRequest{Name: "Studio", Type: models.WorkspaceCompany})
	require.NoError(t, err)

	f.todo, err = CreateStatus(ctx, CreateStatusRequest{Name: "To do", Order: 1, IsDefault: true})
	require.NoError(t, err)
	f.archived, err = CreateStatus(ctx, CreateStatusRequest{Name: "Archived Old Status", Order: 9, State: models.StatusArchived})
	require.NoError(t, err)

	f.project, err = CreateProject(ctx, CreateProjectRequest{WorkspaceID: f.client.ID, Name: "Loft", Status: models.ProjectActive})
	require.NoError(t, err)
	f.other, err = CreateProject(ctx, CreateProjectRequest{WorkspaceID: f.client.ID, Name: "Showroom"})
	require.NoError(t, err)

	f.design, err = CreateList(ctx, f.project.ID, "Design")
	require.NoError(t, err)
	f.build, err = CreateList(ctx, f.project.ID, "Build")
	require.NoError(t, err)

	return f
}

func (f *fixture) task(t *testing.T, name string, mutate ...func(*CreateTaskRequest)) *models.Task {
	t.Helper()
	req := CreateTaskRequest{
		Name:        name,
		WorkspaceID: f.client.ID,
		ProjectID:   &f.project.ID,
		StatusID:    f.todo.ID,
	}
	for _, m := range mutate {
		m(&req)
	}
	task, err := CreateTask(context.Background(), req)
	require.NoError(t, err)
	return task
}

func countRows(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := DB.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
