package kanban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
)

func statuses() []models.TaskStatus {
	return []models.TaskStatus{
		{ID: 3, Name: "Done", Order: 3, State: models.StatusActive},
		{ID: 1, Name: "To Do", Order: 1, State: models.StatusActive},
		{ID: 9, Name: "Archived Old Status", Order: 0, State: models.StatusArchived},
		{ID: 2, Name: "In Progress", Order: 2, State: models.StatusActive},
	}
}

func card(id, status uint, label string) Card {
	return Card{TaskID: id, StatusID: status, GroupLabel: label, Priority: models.PriorityNormal}
}

func TestBuildColumnsFollowOrder(t *testing.T) {
	board := Build(statuses(), nil)

	var names []string
	for _, c := range board.Columns {
		names = append(names, c.Status.Name)
		assert.Empty(t, c.Groups)
		assert.Zero(t, c.Count)
	}
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, names)
}

func TestBuildArchivedStatusHidesCards(t *testing.T) {
	cards := []Card{
		card(1, 9, "Direct"),
		card(2, 9, "Direct"),
		card(3, 1, "Direct"),
	}

	board := Build(statuses(), cards)

	for _, c := range board.Columns {
		assert.NotEqual(t, uint(9), c.Status.ID)
		for _, g := range c.Groups {
			for _, cd := range g.Cards {
				assert.NotContains(t, []uint{1, 2}, cd.TaskID)
			}
		}
	}
	assert.Equal(t, 2, board.Hidden)
	assert.Equal(t, 1, board.Len())
}

func TestBuildEveryActiveCardInExactlyOneCell(t *testing.T) {
	cards := []Card{
		card(1, 1, "Renders"),
		card(2, 2, "Concepts, Renders"),
		card(3, 1, "Direct"),
		card(4, 3, "Renders"),
		card(5, 1, "Renders"),
		card(6, 42, "Direct"),
	}

	board := Build(statuses(), cards)

	seen := map[uint]int{}
	for _, col := range board.Columns {
		total := 0
		for _, g := range col.Groups {
			for _, cd := range g.Cards {
				seen[cd.TaskID]++
				assert.Equal(t, col.Status.ID, cd.StatusID)
				assert.Equal(t, g.Label, cd.GroupLabel)
			}
			total += len(g.Cards)
		}
		assert.Equal(t, col.Count, total)
	}
	assert.Equal(t, map[uint]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, seen)
	assert.Equal(t, 1, board.Hidden)
}

func TestBuildGroupsSortedCardsInInputOrder(t *testing.T) {
	cards := []Card{
		card(1, 1, "Renders"),
		card(2, 1, "Direct"),
		card(3, 1, "Renders"),
		card(4, 1, "Concepts"),
	}

	board := Build(statuses(), cards)

	todo := board.Columns[0]
	require.Len(t, todo.Groups, 3)
	assert.Equal(t, "Concepts", todo.Groups[0].Label)
	assert.Equal(t, "Direct", todo.Groups[1].Label)
	assert.Equal(t, "Renders", todo.Groups[2].Label)
	require.Len(t, todo.Groups[2].Cards, 2)
	assert.Equal(t, uint(1), todo.Groups[2].Cards[0].TaskID)
	assert.Equal(t, uint(3), todo.Groups[2].Cards[1].TaskID)
	assert.Equal(t, 4, todo.Count)
}

func TestCardFromTask(t *testing.T) {
	tk := models.Task{
		ID:       7,
		Name:     "Sample board",
		StatusID: 2,
		Priority: models.PriorityUrgent,
		Owner:    &models.User{Email: "mara@studio.test"},
	}

	c := CardFromTask(tk, "Materials")

	assert.Equal(t, uint(7), c.TaskID)
	assert.Equal(t, "mara@studio.test", c.OwnerName)
	assert.Equal(t, "Materials", c.GroupLabel)
	assert.Equal(t, models.PriorityUrgent, c.Priority)
}
