package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDependency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.task(t, "Approve pendant")
	b := f.task(t, "Install lighting")
	c := f.task(t, "Photograph room")

	_, err := AddDependency(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = AddDependency(ctx, c.ID, b.ID)
	require.NoError(t, err)

	_, err = AddDependency(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = AddDependency(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = AddDependency(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrConstraint)

	blockedBy, err := BlockedBy(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID}, TaskIDs(blockedBy))

	blocking, err := Blocking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, TaskIDs(blocking))

	require.NoError(t, RemoveDependency(ctx, c.ID, b.ID))
	assert.ErrorIs(t, RemoveDependency(ctx, c.ID, b.ID), ErrNotFound)
}

func TestAddDependencyAcrossWorkspaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.task(t, "Client task")
	b, err := CreateTask(ctx, CreateTaskRequest{Name: "Studio task", WorkspaceID: f.company.ID, StatusID: f.todo.ID})
	require.NoError(t, err)

	_, err = AddDependency(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrValidation)
}
