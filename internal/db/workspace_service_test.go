package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func TestCreateWorkspaceSlugs(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	ws, err := CreateWorkspace(ctx, CreateWorkspaceRequest{Name: "Crescent Interiors"})
	require.NoError(t, err)
	assert.Equal(t, "crescent-interiors", ws.Slug)
	assert.Equal(t, models.WorkspaceClient, ws.Type)

	_, err = CreateWorkspace(ctx, CreateWorkspaceRequest{Name: "Crescent  Interiors!"})
	assert.ErrorIs(t, err, ErrConstraint)

	_, err = CreateWorkspace(ctx, CreateWorkspaceRequest{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateWorkspace(ctx, CreateWorkspaceRequest{Name: "Odd", Type: "PARTNER"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListWorkspacesCounts(t *testing.T) {
	f := newFixture(t)
	parent := f.task(t, "One")
	f.task(t, "Two", func(r *CreateTaskRequest) { r.ParentTaskID = &parent.ID })

	summaries, err := ListWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Acme", summaries[0].Name)
	assert.Equal(t, int64(2), summaries[0].ProjectCount)
	assert.Equal(t, int64(2), summaries[0].TaskCount)
	assert.Equal(t, "Studio", summaries[1].Name)
	assert.Zero(t, summaries[1].ProjectCount)
}

func TestGetClientWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ws, err := GetClientWorkspace(ctx, f.client.Slug)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, ws.ID)

	_, err = GetClientWorkspace(ctx, f.company.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetClientWorkspace(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"nobody"`)
}

func TestDeleteWorkspaceRemovesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	blocker := f.task(t, "Blocker", func(r *CreateTaskRequest) { r.RequiresApproval = true })
	task := f.task(t, "Blocked", func(r *CreateTaskRequest) {
		r.ListID = &f.design.ID
		r.Tags = []string{"kitchen"}
	})
	f.task(t, "Child", func(r *CreateTaskRequest) { r.ParentTaskID = &task.ID })
	_, err := AddDependency(ctx, task.ID, blocker.ID)
	require.NoError(t, err)
	c, err := AddComment(ctx, AddCommentRequest{TaskID: task.ID, Body: "hello", Files: []CommentFile{{Filename: "a.png", StorageKey: "acme/a.png"}}})
	require.NoError(t, err)
	_, err = AddComment(ctx, AddCommentRequest{TaskID: task.ID, Body: "reply", ParentCommentID: &c.ID})
	require.NoError(t, err)
	folder, err := CreateFolder(ctx, CreateFolderRequest{WorkspaceID: f.client.ID, ProjectID: &f.project.ID, Name: "Assets"})
	require.NoError(t, err)
	file, err := CreateFile(ctx, CreateFileRequest{WorkspaceID: f.client.ID, ProjectID: &f.project.ID, FolderID: &folder.ID, Filename: "plan.pdf"})
	require.NoError(t, err)
	require.NoError(t, AttachFile(ctx, task.ID, file.ID))
	field, err := CreateCustomField(ctx, CreateCustomFieldRequest{WorkspaceID: f.client.ID, Name: "Budget", Type: models.FieldNumber})
	require.NoError(t, err)
	_, err = SetCustomFieldValue(ctx, f.project.ID, field.ID, "1000")
	require.NoError(t, err)
	client, err := CreateUser(ctx, CreateUserRequest{Email: "ava@acme.test"})
	require.NoError(t, err)
	require.NoError(t, AssignUserWorkspace(ctx, client.ID, f.client.ID))

	require.NoError(t, DeleteWorkspace(ctx, f.client.ID))

	for _, m := range []any{
		&models.Task{}, &models.TaskApproval{}, &models.TaskDependency{}, &models.TaskComment{},
		&models.TaskCommentFile{}, &models.ListTask{}, &models.TaskTag{}, &models.TaskFile{},
		&models.List{}, &models.Project{}, &models.Folder{}, &models.File{},
		&models.CustomFieldDefinition{}, &models.CustomFieldValue{},
	} {
		assert.Zero(t, countRows(t, m, ""), "%T", m)
	}
	assert.Equal(t, int64(1), countRows(t, &models.Workspace{}, ""))

	user, err := GetUserByEmail(ctx, client.Email)
	require.NoError(t, err)
	assert.Nil(t, user.WorkspaceID)

	assert.ErrorIs(t, DeleteWorkspace(ctx, f.client.ID), ErrNotFound)
}
