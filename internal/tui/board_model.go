package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/kanban"
)

// BoardSource loads a board and moves cards between statuses
type BoardSource interface {
	Load() (kanban.Board, error)
	Move(taskID, statusID uint) error
}

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.MoveRight, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight},
		{k.Refresh, k.Help, k.Quit},
	}
}

var boardKeys = boardKeyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "move card left")),
	MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "move card right")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type boardLoadedMsg struct {
	board kanban.Board
	err   error
}

type cardMovedMsg struct {
	card   kanban.Card
	status string
	err    error
}

// BoardModel is an interactive kanban board. Moving a card changes the
// task's status and reloads the board.
type BoardModel struct {
	width  int
	height int

	title  string
	source BoardSource
	board  kanban.Board

	col    int
	row    int
	follow uint // task to keep selected across reloads

	keys    boardKeyMap
	help    help.Model
	message string
	err     error
}

// NewBoardModel creates a board model starting from an already loaded board
func NewBoardModel(title string, source BoardSource, board kanban.Board) BoardModel {
	return BoardModel{
		title:  title,
		source: source,
		board:  board,
		keys:   boardKeys,
		help:   help.New(),
	}
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Selected returns the card under the cursor
func (m BoardModel) Selected() (kanban.Card, bool) {
	cards := m.cards(m.col)
	if m.row < 0 || m.row >= len(cards) {
		return kanban.Card{}, false
	}
	return cards[m.row], true
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.board = msg.board
		m.locate()
		return m, nil

	case cardMovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, m.reload()
		}
		m.err = nil
		m.message = fmt.Sprintf("Moved %q to %s", msg.card.Name, msg.status)
		return m, m.reload()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.MoveLeft):
			return m.moveCard(-1)
		case key.Matches(msg, m.keys.MoveRight):
			return m.moveCard(1)
		case key.Matches(msg, m.keys.Left):
			m.focusColumn(m.col - 1)
		case key.Matches(msg, m.keys.Right):
			m.focusColumn(m.col + 1)
		case key.Matches(msg, m.keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, m.keys.Down):
			if m.row < len(m.cards(m.col))-1 {
				m.row++
			}
		case key.Matches(msg, m.keys.Refresh):
			m.follow = 0
			if c, ok := m.Selected(); ok {
				m.follow = c.TaskID
			}
			return m, m.reload()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *BoardModel) focusColumn(col int) {
	if col < 0 || col >= len(m.board.Columns) {
		return
	}
	m.col = col
	if n := len(m.cards(col)); m.row >= n {
		m.row = max(n-1, 0)
	}
}

// moveCard sends the selected card to the neighbouring column's status
func (m BoardModel) moveCard(delta int) (tea.Model, tea.Cmd) {
	card, ok := m.Selected()
	target := m.col + delta
	if !ok || target < 0 || target >= len(m.board.Columns) {
		return m, nil
	}

	status := m.board.Columns[target].Status
	m.follow = card.TaskID
	source := m.source
	return m, func() tea.Msg {
		return cardMovedMsg{card: card, status: status.Name, err: source.Move(card.TaskID, status.ID)}
	}
}

func (m BoardModel) reload() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		b, err := source.Load()
		return boardLoadedMsg{board: b, err: err}
	}
}

// locate puts the cursor back on the followed card, or clamps it
func (m *BoardModel) locate() {
	if m.follow != 0 {
		for ci := range m.board.Columns {
			for ri, c := range m.cards(ci) {
				if c.TaskID == m.follow {
					m.col, m.row = ci, ri
					return
				}
			}
		}
	}
	if m.col >= len(m.board.Columns) {
		m.col = max(len(m.board.Columns)-1, 0)
	}
	if n := len(m.cards(m.col)); m.row >= n {
		m.row = max(n-1, 0)
	}
}

// cards flattens a column's groups in display order
func (m BoardModel) cards(col int) []kanban.Card {
	if col < 0 || col >= len(m.board.Columns) {
		return nil
	}
	var out []kanban.Card
	for _, g := range m.board.Columns[col].Groups {
		out = append(out, g.Cards...)
	}
	return out
}

// View renders the TUI
func (m BoardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	header := titleStyle.Render(m.title)

	if len(m.board.Columns) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render("No active statuses")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", empty, "", m.help.View(m.keys))
	}

	colWidth := max(m.width/len(m.board.Columns)-1, 18)
	columns := make([]string, 0, len(m.board.Columns))
	for i := range m.board.Columns {
		columns = append(columns, m.renderColumn(i, colWidth))
	}

	footer := m.renderFooter()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		footer,
		m.help.View(m.keys),
	)
}

func (m BoardModel) renderColumn(i, width int) string {
	col := m.board.Columns[i]
	var b strings.Builder

	name := fmt.Sprintf("%s (%d)", col.Status.Name, col.Count)
	b.WriteString(Badge(format.Badge{Label: truncate(name, width-4), Foreground: "#18181B", Background: col.Status.Color}))
	b.WriteString("\n")

	groupStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	selected, hasSelection := m.Selected()
	for _, g := range col.Groups {
		b.WriteString("\n")
		b.WriteString(groupStyle.Render(truncate(g.Label, width-2)))
		b.WriteString("\n")
		for _, c := range g.Cards {
			b.WriteString(m.renderCard(c, width-2, hasSelection && i == m.col && c.TaskID == selected.TaskID))
			b.WriteString("\n")
		}
	}

	border := ColorBorder
	if i == m.col {
		border = ColorAccentBright
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(width).
		Render(b.String())
}

func (m BoardModel) renderCard(c kanban.Card, width int, selected bool) string {
	lines := []string{truncate(c.Name, width-2)}

	var meta []string
	if c.Priority != "" {
		meta = append(meta, lipgloss.NewStyle().
			Foreground(lipgloss.Color(format.PriorityBadge(c.Priority).Foreground)).
			Render(format.PriorityBadge(c.Priority).Label))
	}
	if c.DueDate != nil {
		meta = append(meta, format.FormatDate(c.DueDate))
	}
	if c.OwnerName != "" {
		meta = append(meta, c.OwnerName)
	}
	if len(meta) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).
			Render(strings.Join(meta, " · ")))
	}

	style := lipgloss.NewStyle().Padding(0, 1).Width(width)
	if selected {
		style = style.Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m BoardModel) renderFooter() string {
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: " + m.err.Error())
	case m.message != "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.message)
	case m.board.Hidden > 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).
			Render(fmt.Sprintf("%d archived not shown", m.board.Hidden))
	}
	return ""
}
