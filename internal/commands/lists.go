package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show project lists and manage which tasks they hold",
	Long: `Show lists with their project. A task can sit in several lists of its own
project; 'lists add' and 'lists rm' change its memberships.`,
	Args: cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		var projectID *uint
		if id, _ := cmd.Flags().GetUint("project"); id != 0 {
			projectID = &id
		}
		lists, err := db.ListLists(cmd.Context(), projectID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(lists)
		}
		if len(lists) == 0 {
			fmt.Println("No lists found.")
			return nil
		}

		fmt.Printf("%-4s %-24s %-32s %s\n", "ID", "NAME", "PROJECT", "TASKS")
		fmt.Println(strings.Repeat("-", 70))
		for _, l := range lists {
			project := format.Placeholder
			if l.Project != nil {
				project = l.Project.Name
			}
			fmt.Printf("%-4d %-24s %-32s %d\n", l.ID, clip(l.Name, 24), clip(project, 32), l.TaskCount)
		}
		return nil
	}),
}

var listsAddCmd = &cobra.Command{
	Use:   "add [task-id] [list-id]",
	Short: "Put a task into a list of its project",
	Args:  cobra.ExactArgs(2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		taskID, listID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		if err := db.AddTaskToList(cmd.Context(), taskID, listID); err != nil {
			return err
		}
		fmt.Printf("Added task #%d to list #%d\n", taskID, listID)
		return nil
	}),
}

var listsRemoveCmd = &cobra.Command{
	Use:   "rm [task-id] [list-id]",
	Short: "Take a task out of a list",
	Args:  cobra.ExactArgs(2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		taskID, listID, err := parseIDPair(args)
		if err != nil {
			return err
		}
		if err := db.RemoveTaskFromList(cmd.Context(), taskID, listID); err != nil {
			return err
		}
		fmt.Printf("Removed task #%d from list #%d\n", taskID, listID)
		return nil
	}),
}

func init() {
	listsCmd.Flags().Uint("project", 0, "only lists of this project")
	listsCmd.AddCommand(listsAddCmd)
	listsCmd.AddCommand(listsRemoveCmd)
}
