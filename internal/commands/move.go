package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another status",
	Long:  "Move a task to another status, given by ID or name (case insensitive).",
	Args:  cobra.ExactArgs(2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}
		status, err := resolveStatus(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		task, err := db.UpdateTaskStatus(cmd.Context(), taskID, status.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Moved task #%d %s to %s\n", task.ID, task.Name, status.Name)
		return nil
	}),
}

func resolveStatus(ctx context.Context, arg string) (*models.TaskStatus, error) {
	statuses, err := db.Statuses(ctx)
	if err != nil {
		return nil, err
	}
	id, idErr := strconv.ParseUint(arg, 10, 64)
	for i, s := range statuses {
		if (idErr == nil && uint64(s.ID) == id) || strings.EqualFold(s.Name, strings.TrimSpace(arg)) {
			return &statuses[i], nil
		}
	}
	return nil, fmt.Errorf("unknown status '%s'", arg)
}
