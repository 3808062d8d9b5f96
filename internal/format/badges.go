package format

import (
	"github.com/balkashynov/luna/internal/models"
)

// Badge is how an enum value is drawn: a label plus foreground and
// background colors.
type Badge struct {
	Label      string `json:"label"`
	Foreground string `json:"fg"`
	Background string `json:"bg"`
}

var neutral = Badge{Foreground: "#52525B", Background: "#F4F4F5"}

var projectStatusBadges = map[models.ProjectStatus]Badge{
	models.ProjectIntake:   {Label: "Intake", Foreground: "#1D4ED8", Background: "#EFF6FF"},
	models.ProjectPending:  {Label: "Pending", Foreground: "#B45309", Background: "#FFFBEB"},
	models.ProjectActive:   {Label: "Active", Foreground: "#047857", Background: "#ECFDF5"},
	models.ProjectOnHold:   {Label: "On Hold", Foreground: "#B91C1C", Background: "#FEF2F2"},
	models.ProjectComplete: {Label: "Complete", Foreground: "#52525B", Background: "#F4F4F5"},
}

var workspaceTypeBadges = map[models.WorkspaceType]Badge{
	models.WorkspaceClient:  {Label: "Client", Foreground: "#6D28D9", Background: "#F5F3FF"},
	models.WorkspaceCompany: {Label: "Company", Foreground: "#0369A1", Background: "#F0F9FF"},
}

var priorityBadges = map[models.Priority]Badge{
	models.PriorityUrgent: {Label: "Urgent", Foreground: "#DC2626", Background: "#FEF2F2"},
	models.PriorityHigh:   {Label: "High", Foreground: "#F97316", Background: "#FFF7ED"},
	models.PriorityNormal: {Label: "Normal", Foreground: "#71717A", Background: "#F4F4F5"},
	models.PriorityLow:    {Label: "Low", Foreground: "#A1A1AA", Background: "#FAFAFA"},
}

var approvalBadges = map[models.ApprovalStatus]Badge{
	models.ApprovalPending:  {Label: "Pending", Foreground: "#D97706", Background: "#FFFBEB"},
	models.ApprovalApproved: {Label: "Approved", Foreground: "#059669", Background: "#ECFDF5"},
	models.ApprovalRejected: {Label: "Rejected", Foreground: "#DC2626", Background: "#FEF2F2"},
}

func lookup[K ~string](table map[K]Badge, key K) Badge {
	if b, ok := table[key]; ok {
		return b
	}
	b := neutral
	b.Label = FormatLabel(string(key))
	return b
}

// ProjectStatusBadge returns the badge for a project status
func ProjectStatusBadge(s models.ProjectStatus) Badge { return lookup(projectStatusBadges, s) }

// WorkspaceTypeBadge returns the badge for a workspace type
func WorkspaceTypeBadge(t models.WorkspaceType) Badge { return lookup(workspaceTypeBadges, t) }

// PriorityBadge returns the badge for a task priority
func PriorityBadge(p models.Priority) Badge { return lookup(priorityBadges, p) }

// ApprovalBadge returns the badge for an approval status
func ApprovalBadge(s models.ApprovalStatus) Badge { return lookup(approvalBadges, s) }

// StatusBadge draws a task status in its own color
func StatusBadge(s models.TaskStatus) Badge {
	return Badge{Label: s.Name, Foreground: "#18181B", Background: s.Color}
}
