package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-interiors-co", Slugify("Acme Interiors & Co."))
	assert.Equal(t, "loft", Slugify("  --Loft--  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestNormalizeSlug(t *testing.T) {
	s, err := NormalizeSlug(" Acme-Studio ")
	require.NoError(t, err)
	assert.Equal(t, "acme-studio", s)

	_, err = NormalizeSlug("acme studio")
	assert.Error(t, err)
}

func TestParseDueDateFormats(t *testing.T) {
	now := time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)

	d, err := parseDueDateAt("2025-07-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDueDateAt("15/08/2025", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDueDateAt("3days", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDueDateAt("2 weeks", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 24, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDueDateAt("", now)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseDueDateRejectsBadInput(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"31/02/2025", "2025-13-01", "0 days", "soon"} {
		_, err := parseDueDateAt(in, now)
		assert.Error(t, err, in)
	}
}

func TestFormatDueDate(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	past := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "overdue (Jun 1, 2025)", formatDueDateAt(&past, now))
	assert.Equal(t, "due tomorrow (Jun 11, 2025)", formatDueDateAt(&tomorrow, now))
	assert.Equal(t, "", formatDueDateAt(nil, now))
}

func TestParseTitle(t *testing.T) {
	p := ParseTitle("Order fabric samples #fabric,Rug @Loft-Renovation list:materials +high")

	assert.Equal(t, "Order fabric samples", p.Title)
	assert.Equal(t, []string{"fabric", "rug"}, p.Tags)
	assert.Equal(t, "loft-renovation", p.Project)
	assert.Equal(t, "materials", p.List)
	assert.Equal(t, models.PriorityHigh, p.Priority)
	assert.Empty(t, p.Errors)
}

func TestParseTitleCollectsErrors(t *testing.T) {
	p := ParseTitle("Call supplier +someday due:whenever")

	assert.Equal(t, "Call supplier", p.Title)
	assert.Len(t, p.Errors, 2)
	assert.Empty(t, p.Priority)
	assert.Nil(t, p.DueDate)
}

func TestParsePriority(t *testing.T) {
	cases := map[string]models.Priority{
		"":       models.PriorityNormal,
		"URGENT": models.PriorityUrgent,
		"h":      models.PriorityHigh,
		"1":      models.PriorityLow,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePriority("critical")
	assert.Error(t, err)
}
