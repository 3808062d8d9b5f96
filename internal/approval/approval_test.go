package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func withApproval(id uint, status models.ApprovalStatus) models.Task {
	return models.Task{
		ID:               id,
		RequiresApproval: true,
		Approval:         &models.TaskApproval{TaskID: id, Status: status},
	}
}

func TestPendingQueueOnlyPending(t *testing.T) {
	t1 := withApproval(1, models.ApprovalPending)
	t2 := models.Task{ID: 2}

	queue := PendingQueue([]models.Task{t1, t2})

	require.Len(t, queue, 1)
	assert.Equal(t, uint(1), queue[0].ID)
}

func TestPendingQueueDropsDecided(t *testing.T) {
	tasks := []models.Task{
		withApproval(1, models.ApprovalPending),
		withApproval(2, models.ApprovalApproved),
		withApproval(3, models.ApprovalRejected),
		withApproval(4, models.ApprovalPending),
	}

	queue := PendingQueue(tasks)
	assert.Len(t, queue, 2)

	require.NoError(t, Decide(tasks[0].Approval, models.ApprovalApproved, 7, "", time.Now()))
	queue = PendingQueue(tasks)
	require.Len(t, queue, 1)
	assert.Equal(t, uint(4), queue[0].ID)
}

func TestPendingQueueEmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, PendingQueue(nil))
}

func TestClientStatus(t *testing.T) {
	assert.Equal(t, StatusNone, ClientStatus(models.Task{}))
	assert.Equal(t, StatusAwaiting, ClientStatus(withApproval(1, models.ApprovalPending)))
	assert.Equal(t, StatusApproved, ClientStatus(withApproval(1, models.ApprovalApproved)))
	assert.Equal(t, StatusChangesRequested, ClientStatus(withApproval(1, models.ApprovalRejected)))
}

func TestDecideSetsFieldsTogether(t *testing.T) {
	a := &models.TaskApproval{TaskID: 5, Status: models.ApprovalPending}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Decide(a, models.ApprovalRejected, 3, "warmer tones", now))

	assert.Equal(t, models.ApprovalRejected, a.Status)
	require.NotNil(t, a.DecidedByID)
	assert.Equal(t, uint(3), *a.DecidedByID)
	require.NotNil(t, a.DecidedAt)
	assert.True(t, now.Equal(*a.DecidedAt))
	assert.Equal(t, "warmer tones", a.Note)
}

func TestDecideIsTerminal(t *testing.T) {
	a := &models.TaskApproval{TaskID: 5, Status: models.ApprovalPending}
	require.NoError(t, Decide(a, models.ApprovalApproved, 1, "", time.Now()))
	decidedAt := *a.DecidedAt

	err := Decide(a, models.ApprovalRejected, 2, "", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	assert.Equal(t, models.ApprovalApproved, a.Status)
	assert.Equal(t, uint(1), *a.DecidedByID)
	assert.True(t, decidedAt.Equal(*a.DecidedAt))
}

func TestDecideRejectsPendingAsDecision(t *testing.T) {
	a := &models.TaskApproval{TaskID: 5, Status: models.ApprovalPending}

	err := Decide(a, models.ApprovalPending, 1, "", time.Now())

	assert.ErrorIs(t, err, ErrInvalidDecision)
	assert.Nil(t, a.DecidedByID)
	assert.Nil(t, a.DecidedAt)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" Approve ")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, d)

	d, err = ParseDecision("REJECTED")
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, d)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
