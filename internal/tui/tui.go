// Package tui holds the interactive terminal views: the kanban board and
// the task browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/luna/internal/views"
)

// RunBoard opens the kanban board until the user quits
func RunBoard(title string, source BoardSource) error {
	board, err := source.Load()
	if err != nil {
		return err
	}
	p := tea.NewProgram(NewBoardModel(title, source, board), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// RunTaskList opens the task browser over rows
func RunTaskList(rows []views.TaskIndexRow) error {
	p := tea.NewProgram(NewListModel(rows), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
