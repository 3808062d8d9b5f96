package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/luna/internal/models"
	"github.com/balkashynov/luna/internal/views"
)

func indexRows(n int) []views.TaskIndexRow {
	rows := make([]views.TaskIndexRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, views.TaskIndexRow{
			Task: models.Task{ID: uint(i), Name: fmt.Sprintf("Task %02d", i), Priority: models.PriorityNormal},
		})
	}
	return rows
}

func update(t *testing.T, m ListModel, msgs ...tea.Msg) ListModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ListModel)
	}
	return m
}

func TestListPaging(t *testing.T) {
	m := NewListModel(indexRows(25))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20}) // 10 per page

	m = update(t, m, runes("l"))
	assert.Equal(t, 1, m.currentPage)
	assert.Equal(t, 10, m.selectedTask)

	m = update(t, m, runes("l"), runes("l"))
	assert.Equal(t, 2, m.currentPage, "stops at the last page")

	m = update(t, m, runes("k"))
	assert.Equal(t, 19, m.selectedTask)
	assert.Equal(t, 1, m.currentPage, "moving up crosses back a page")
}

func TestListSearch(t *testing.T) {
	m := NewListModel(indexRows(12))
	m = update(t, m, runes("/"), runes("1"), runes("1"))

	require.Len(t, m.Visible(), 1)
	assert.Equal(t, "Task 11", m.Visible()[0].Name)
	assert.Equal(t, FocusSearch, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.Visible(), 4, "Task 01, 10, 11 and 12")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Visible(), 12)
	assert.Equal(t, FocusTable, m.focus)
}

func TestListViewShowsSelection(t *testing.T) {
	rows := indexRows(2)
	rows[1].Lists = []string{"Design Planning"}
	rows[1].SubtaskCount = 3
	m := NewListModel(rows)
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 30}, runes("j"))

	view := m.View()
	assert.Contains(t, view, "Design Planning")
	assert.Contains(t, view, "Task 02 (3)")
}
