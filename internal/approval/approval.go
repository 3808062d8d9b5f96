// Package approval decides which tasks are waiting on a client decision and
// applies decisions to approval records.
package approval

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/luna/internal/models"
)

var (
	// ErrAlreadyDecided is returned when an approval has left PENDING
	ErrAlreadyDecided = errors.New("approval already decided")
	// ErrInvalidDecision is returned for anything other than APPROVED or REJECTED
	ErrInvalidDecision = errors.New("invalid approval decision")
)

// Status is the client-facing label of a task's approval state
type Status string

const (
	StatusNone             Status = ""
	StatusAwaiting         Status = "Awaiting approval"
	StatusApproved         Status = "Approved"
	StatusChangesRequested Status = "Changes requested"
)

// IsPending reports whether the task has an approval still waiting on a decision
func IsPending(t models.Task) bool {
	return t.Approval != nil && t.Approval.Status == models.ApprovalPending
}

// PendingQueue keeps the tasks that are pending approval, in input order.
// Callers pass every task of the workspace, with or without a project.
func PendingQueue(tasks []models.Task) []models.Task {
	queue := []models.Task{}
	for _, t := range tasks {
		if IsPending(t) {
			queue = append(queue, t)
		}
	}
	return queue
}

// ClientStatus maps a task's approval to the label the client portal shows
func ClientStatus(t models.Task) Status {
	if t.Approval == nil {
		return StatusNone
	}
	switch t.Approval.Status {
	case models.ApprovalPending:
		return StatusAwaiting
	case models.ApprovalApproved:
		return StatusApproved
	case models.ApprovalRejected:
		return StatusChangesRequested
	}
	return StatusNone
}

// ParseDecision accepts "approve"/"approved" and "reject"/"rejected" in any case
func ParseDecision(s string) (models.ApprovalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved":
		return models.ApprovalApproved, nil
	case "reject", "rejected":
		return models.ApprovalRejected, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidDecision)
}

// Decide moves a pending approval to APPROVED or REJECTED. The status,
// decider and decision time are set together; on error a is left unchanged.
func Decide(a *models.TaskApproval, decision models.ApprovalStatus, deciderID uint, note string, now time.Time) error {
	if decision != models.ApprovalApproved && decision != models.ApprovalRejected {
		return fmt.Errorf("%q: %w", decision, ErrInvalidDecision)
	}
	if a.Status != models.ApprovalPending {
		return fmt.Errorf("task #%d is %s: %w", a.TaskID, a.Status, ErrAlreadyDecided)
	}

	decided := now
	a.Status = decision
	a.DecidedByID = &deciderID
	a.DecidedAt = &decided
	a.Note = note
	return nil
}
