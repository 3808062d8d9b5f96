package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/kanban"
	"github.com/balkashynov/luna/internal/models"
)

var (
	todo  = models.TaskStatus{ID: 1, Name: "To Do", Color: "#E4E4E7", Order: 1, State: models.StatusActive}
	doing = models.TaskStatus{ID: 2, Name: "In Progress", Color: "#BFDBFE", Order: 2, State: models.StatusActive}
	done  = models.TaskStatus{ID: 3, Name: "Done", Color: "#BBF7D0", Order: 3, State: models.StatusActive}
)

// memorySource keeps cards in memory and rebuilds the board on Load
type memorySource struct {
	cards   []kanban.Card
	moves   [][2]uint
	moveErr error
}

func (s *memorySource) Load() (kanban.Board, error) {
	return kanban.Build([]models.TaskStatus{todo, doing, done}, s.cards), nil
}

func (s *memorySource) Move(taskID, statusID uint) error {
	if s.moveErr != nil {
		return s.moveErr
	}
	s.moves = append(s.moves, [2]uint{taskID, statusID})
	for i := range s.cards {
		if s.cards[i].TaskID == taskID {
			s.cards[i].StatusID = statusID
		}
	}
	return nil
}

func newSource() *memorySource {
	return &memorySource{cards: []kanban.Card{
		{TaskID: 10, Name: "Finalize mood board", StatusID: 1, GroupLabel: "Design"},
		{TaskID: 11, Name: "Source pendant lights", StatusID: 1, GroupLabel: "Procurement"},
		{TaskID: 12, Name: "Site survey", StatusID: 2, GroupLabel: "Design"},
	}}
}

func newBoard(t *testing.T, src *memorySource) BoardModel {
	t.Helper()
	b, err := src.Load()
	require.NoError(t, err)
	return NewBoardModel("Brooklyn", src, b)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msg through Update and runs returned commands until the
// model settles
func press(t *testing.T, m BoardModel, msg tea.Msg) BoardModel {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(BoardModel)
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return m
}

func TestBoardNavigation(t *testing.T) {
	m := newBoard(t, newSource())

	c, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Finalize mood board", c.Name)

	m = press(t, m, runes("j"))
	c, _ = m.Selected()
	assert.Equal(t, "Source pendant lights", c.Name)

	m = press(t, m, runes("j"))
	c, _ = m.Selected()
	assert.Equal(t, "Source pendant lights", c.Name, "cursor stops at the last card")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	c, _ = m.Selected()
	assert.Equal(t, "Site survey", c.Name, "row is clamped to the shorter column")

	m = press(t, m, runes("l"))
	_, ok = m.Selected()
	assert.False(t, ok, "done column is empty")

	m = press(t, m, runes("l"))
	assert.Equal(t, 2, m.col, "cannot move past the last column")
}

func TestBoardMoveCardFollowsCard(t *testing.T) {
	src := newSource()
	m := newBoard(t, src)
	m = press(t, m, runes("j"))

	m = press(t, m, runes("L"))

	require.Equal(t, [][2]uint{{11, 2}}, src.moves)
	assert.Equal(t, 2, m.board.Columns[1].Count)
	assert.Equal(t, 1, m.col)
	c, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, uint(11), c.TaskID)
	assert.Contains(t, m.message, "In Progress")
}

func TestBoardMoveAtEdgeDoesNothing(t *testing.T) {
	src := newSource()
	m := newBoard(t, src)

	m = press(t, m, runes("H"))

	assert.Empty(t, src.moves)
	assert.Equal(t, 0, m.col)
}

func TestBoardMoveErrorIsShown(t *testing.T) {
	src := newSource()
	src.moveErr = errors.New("status not found")
	m := newBoard(t, src)

	m = press(t, m, runes("L"))

	require.Error(t, m.err)
	assert.Equal(t, 2, m.board.Columns[0].Count)
}

func TestBoardViewAndQuit(t *testing.T) {
	m := newBoard(t, newSource())
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(BoardModel)
	view := m.View()
	assert.Contains(t, view, "Brooklyn")
	assert.Contains(t, view, "Procurement")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
