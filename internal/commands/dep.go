package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Record which tasks block which",
}

var depAddCmd = &cobra.Command{
	Use:   "add [task-id] [blocked-by-id]",
	Short: "Mark a task as waiting on another",
	Long: `Mark a task as waiting on another task of the same workspace. Edges that
would close a cycle are refused.`,
	Args: cobra.ExactArgs(2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		taskID, dependsOnID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		if _, err := db.AddDependency(cmd.Context(), taskID, dependsOnID); err != nil {
			return err
		}
		fmt.Printf("Task #%d now waits on #%d\n", taskID, dependsOnID)
		return nil
	}),
}

var depRemoveCmd = &cobra.Command{
	Use:   "rm [task-id] [blocked-by-id]",
	Short: "Drop a dependency",
	Args:  cobra.ExactArgs(2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		taskID, dependsOnID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		if err := db.RemoveDependency(cmd.Context(), taskID, dependsOnID); err != nil {
			return err
		}
		fmt.Printf("Task #%d no longer waits on #%d\n", taskID, dependsOnID)
		return nil
	}),
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
}
