// Package kanban lays tasks out as a status by group grid.
package kanban

import (
	"sort"
	"time"

	"github.com/balkashynov/luna/internal/models"
)

// Card is a task as it appears on the board
type Card struct {
	TaskID     uint            `json:"task_id"`
	Name       string          `json:"name"`
	StatusID   uint            `json:"status_id"`
	OwnerName  string          `json:"owner_name,omitempty"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Priority   models.Priority `json:"priority"`
	GroupLabel string          `json:"group_label"`
}

// Group is one labelled stack of cards inside a column
type Group struct {
	Label string `json:"label"`
	Cards []Card `json:"cards"`
}

// Column holds the cards of one active status
type Column struct {
	Status models.TaskStatus `json:"status"`
	Groups []Group           `json:"groups"`
	Count  int               `json:"count"`
}

// Board is the grid. Hidden counts cards whose status has no column.
type Board struct {
	Columns []Column `json:"columns"`
	Hidden  int      `json:"hidden"`
}

// CardFromTask builds a card. Owner and status are read from the task's
// loaded relations when present.
func CardFromTask(t models.Task, label string) Card {
	return Card{
		TaskID:     t.ID,
		Name:       t.Name,
		StatusID:   t.StatusID,
		OwnerName:  t.OwnerName(),
		DueDate:    t.DueDate,
		Priority:   t.Priority,
		GroupLabel: label,
	}
}

// Build lays cards out over the active statuses. Archived statuses get no
// column, so their cards are left off the board and counted in Hidden.
func Build(statuses []models.TaskStatus, cards []Card) Board {
	active := make([]models.TaskStatus, 0, len(statuses))
	for _, s := range statuses {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Order != active[j].Order {
			return active[i].Order < active[j].Order
		}
		return active[i].ID < active[j].ID
	})

	index := make(map[uint]int, len(active))
	board := Board{Columns: make([]Column, len(active))}
	for i, s := range active {
		index[s.ID] = i
		board.Columns[i] = Column{Status: s, Groups: []Group{}}
	}

	byColumn := make([][]Card, len(active))
	for _, c := range cards {
		i, ok := index[c.StatusID]
		if !ok {
			board.Hidden++
			continue
		}
		byColumn[i] = append(byColumn[i], c)
	}

	for i, colCards := range byColumn {
		board.Columns[i].Count = len(colCards)
		board.Columns[i].Groups = group(colCards)
	}
	return board
}

// Len returns the number of cards placed on the board
func (b Board) Len() int {
	n := 0
	for _, c := range b.Columns {
		n += c.Count
	}
	return n
}

func group(cards []Card) []Group {
	pos := make(map[string]int)
	groups := []Group{}
	for _, c := range cards {
		i, ok := pos[c.GroupLabel]
		if !ok {
			i = len(groups)
			pos[c.GroupLabel] = i
			groups = append(groups, Group{Label: c.GroupLabel})
		}
		groups[i].Cards = append(groups[i].Cards, c)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Label < groups[j].Label
	})
	return groups
}
