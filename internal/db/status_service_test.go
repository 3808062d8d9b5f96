package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func TestSetStatusState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.task(t, "Order tiles")

	status, err := SetStatusState(ctx, f.todo.ID, models.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, status.State)
	assert.False(t, status.IsActive())

	// archiving keeps the tasks where they are
	got, err := GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, f.todo.ID, got.StatusID)

	status, err = SetStatusState(ctx, f.todo.ID, models.StatusActive)
	require.NoError(t, err)
	assert.True(t, status.IsActive())

	statuses, err := Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, models.StatusActive, statuses[0].State)
	assert.Equal(t, models.StatusArchived, statuses[1].State)
}

func TestSetStatusStateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := SetStatusState(ctx, f.todo.ID, "HIDDEN")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = SetStatusState(ctx, 9999, models.StatusArchived)
	assert.ErrorIs(t, err, ErrNotFound)
}
