package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/luna/internal/models"
)

func TestFormatLabel(t *testing.T) {
	assert.Equal(t, "On Hold", FormatLabel("ON_HOLD"))
	assert.Equal(t, "Intake", FormatLabel("INTAKE"))
	assert.Equal(t, "", FormatLabel(""))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "2.0 MB", FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0 GB", FormatBytes(3*1024*1024*1024))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 4, 2025", FormatDate(&d))
	assert.Equal(t, Placeholder, FormatDate(nil))
}

func TestFormatHours(t *testing.T) {
	h := 1.5
	assert.Equal(t, "1.5h", FormatHours(&h))
	h = 4
	assert.Equal(t, "4h", FormatHours(&h))
	assert.Equal(t, Placeholder, FormatHours(nil))
}

func TestBadgesFallBackToLabel(t *testing.T) {
	assert.Equal(t, "On Hold", ProjectStatusBadge(models.ProjectOnHold).Label)
	assert.Equal(t, "Urgent", PriorityBadge(models.PriorityUrgent).Label)
	assert.Equal(t, "Client", WorkspaceTypeBadge(models.WorkspaceClient).Label)

	unknown := ApprovalBadge(models.ApprovalStatus("ESCALATED"))
	assert.Equal(t, "Escalated", unknown.Label)
	assert.Equal(t, neutral.Background, unknown.Background)
}
