package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/views"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
)

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Search key.Binding
	Quit   key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Search, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var listKeys = listKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
	Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ListModel browses the task index with a detail panel for the selection
type ListModel struct {
	width  int
	height int

	all          []views.TaskIndexRow
	rows         []views.TaskIndexRow // after search
	selectedTask int

	focus       Focus
	searchQuery string

	currentPage  int
	tasksPerPage int

	keys listKeyMap
	help help.Model
}

// NewListModel creates a new list TUI model
func NewListModel(rows []views.TaskIndexRow) ListModel {
	return ListModel{
		all:          rows,
		rows:         rows,
		focus:        FocusTable,
		tasksPerPage: 10,
		keys:         listKeys,
		help:         help.New(),
	}
}

// Init initializes the model
func (m ListModel) Init() tea.Cmd {
	return nil
}

// Visible returns the rows matching the current search
func (m ListModel) Visible() []views.TaskIndexRow {
	return m.rows
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// header, column headers, pagination, help and borders
		m.tasksPerPage = max(m.height-10, 3)
		m.currentPage = m.selectedTask / m.tasksPerPage
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg), nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m = m.moveSelection(-1)
		case key.Matches(msg, m.keys.Down):
			m = m.moveSelection(1)
		case key.Matches(msg, m.keys.Prev):
			m = m.gotoPage(m.currentPage - 1)
		case key.Matches(msg, m.keys.Next):
			m = m.gotoPage(m.currentPage + 1)
		case key.Matches(msg, m.keys.Search):
			m.focus = FocusSearch
		}
	}
	return m, nil
}

// handleSearchKeys edits the query; the filter applies as you type
func (m ListModel) handleSearchKeys(msg tea.KeyMsg) ListModel {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = FocusTable
		m.searchQuery = ""
	case tea.KeyEnter:
		m.focus = FocusTable
		return m
	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchQuery += string(msg.Runes)
	default:
		return m
	}
	return m.applySearch()
}

func (m ListModel) applySearch() ListModel {
	q := strings.ToLower(strings.TrimSpace(m.searchQuery))
	if q == "" {
		m.rows = m.all
	} else {
		m.rows = nil
		for _, r := range m.all {
			if strings.Contains(strings.ToLower(r.Name), q) {
				m.rows = append(m.rows, r)
			}
		}
	}
	m.selectedTask = 0
	m.currentPage = 0
	return m
}

func (m ListModel) moveSelection(delta int) ListModel {
	next := m.selectedTask + delta
	if next < 0 || next >= len(m.rows) {
		return m
	}
	m.selectedTask = next
	m.currentPage = next / m.tasksPerPage
	return m
}

func (m ListModel) pages() int {
	return max((len(m.rows)+m.tasksPerPage-1)/m.tasksPerPage, 1)
}

func (m ListModel) gotoPage(page int) ListModel {
	if page < 0 || page >= m.pages() {
		return m
	}
	m.currentPage = page
	first := page * m.tasksPerPage
	last := min(first+m.tasksPerPage, len(m.rows)) - 1
	if m.selectedTask < first {
		m.selectedTask = first
	}
	if m.selectedTask > last {
		m.selectedTask = max(last, 0)
	}
	return m
}

// View renders the TUI
func (m ListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTaskTable(leftWidth),
		" ",
		m.renderTaskDetails(rightWidth),
	)

	bar := m.help.View(m.keys)
	if m.focus == FocusSearch {
		bar = m.renderSearchBar()
	}
	return lipgloss.JoinVertical(lipgloss.Left, "", content, "", bar)
}

func (m ListModel) renderTaskTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("No tasks found"))
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Width(width).
			Render(b.String())
	}

	idWidth, statusWidth, dueWidth := 5, 14, 12
	nameWidth := max(width-4-idWidth-statusWidth-dueWidth-6, 20)

	b.WriteString(headerStyle.Padding(0, 1).Render(fmt.Sprintf("%-*s %-*s %-*s %-*s",
		idWidth, "ID", nameWidth, "NAME", statusWidth, "STATUS", dueWidth, "DUE")))
	b.WriteString("\n\n")

	start := m.currentPage * m.tasksPerPage
	end := min(start+m.tasksPerPage, len(m.rows))
	for i := start; i < end; i++ {
		r := m.rows[i]
		status := format.Placeholder
		if r.Status != nil {
			status = r.Status.Name
		}
		name := r.Name
		if r.SubtaskCount > 0 {
			name = fmt.Sprintf("%s (%d)", name, r.SubtaskCount)
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			idWidth, fmt.Sprintf("#%d", r.ID),
			nameWidth, truncate(name, nameWidth-1),
			statusWidth, truncate(status, statusWidth-1),
			dueWidth, format.FormatDate(r.DueDate))

		if i == m.selectedTask {
			b.WriteString(lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1).
				Render(row))
		} else {
			b.WriteString(" " + row)
		}
		b.WriteString("\n")
	}

	if m.pages() > 1 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1).
			Render(fmt.Sprintf("Page %d/%d (%d tasks)", m.currentPage+1, m.pages(), len(m.rows))))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

func (m ListModel) renderTaskDetails(width int) string {
	var b strings.Builder
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	if m.selectedTask >= len(m.rows) {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width).
			Render("luna"))
		return border.Render(b.String())
	}

	r := m.rows[m.selectedTask]
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	field := func(name, value string) {
		b.WriteString(label.Render(name + ": "))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Width(width).Render(r.Name))
	b.WriteString("\n\n")

	if r.Status != nil {
		field("Status", Badge(format.StatusBadge(*r.Status)))
	}
	field("Priority", Badge(format.PriorityBadge(r.Priority)))
	if r.Project != nil {
		field("Project", r.Project.Name)
	}
	if len(r.Lists) > 0 {
		field("Lists", strings.Join(r.Lists, ", "))
	}
	field("Owner", format.OrPlaceholder(r.OwnerName()))
	field("Due", format.FormatDate(r.DueDate))
	field("Estimate", format.FormatHours(r.TimeEstimate))
	if tags := r.TagNames(); len(tags) > 0 {
		field("Tags", lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(strings.Join(tags, ", ")))
	}
	if r.SubtaskCount > 0 {
		field("Subtasks", fmt.Sprintf("%d", r.SubtaskCount))
	}
	if r.RequiresApproval {
		field("Approval", string(approval.ClientStatus(r.Task)))
	}

	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Width(width - 2).
			Render(r.Description))
	}
	return border.Render(b.String())
}

func (m ListModel) renderSearchBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2).
		Render("Search: " + m.searchQuery + "█")
}
