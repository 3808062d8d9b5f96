package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
)

var rmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task with its subtasks, comments and approval",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		task, err := db.GetTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := db.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted task #%d %s\n", task.ID, task.Name)
		return nil
	}),
}
