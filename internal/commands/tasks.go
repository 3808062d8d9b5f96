package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/tui"
	"github.com/balkashynov/luna/internal/views"
)

var tasksCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"tasks", "list"},
	Short:   "List top-level tasks",
	Long:    "List top-level tasks newest first, with optional workspace, project and status filters",
	Args:    cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		var filter db.TaskFilter
		if id, _ := cmd.Flags().GetUint("workspace"); id != 0 {
			filter.WorkspaceID = &id
		}
		if id, _ := cmd.Flags().GetUint("project"); id != 0 {
			filter.ProjectID = &id
		}
		if id, _ := cmd.Flags().GetUint("status"); id != 0 {
			filter.StatusID = &id
		}

		rows, err := views.BuildTaskIndex(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rows)
		}
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			return tui.RunTaskList(rows)
		}

		if len(rows) == 0 {
			fmt.Println("No tasks found. Use 'luna add \"task name\" --workspace <slug>' to create one.")
			return nil
		}

		fmt.Printf("%-5s %-40s %-14s %-8s %-22s %s\n", "ID", "NAME", "STATUS", "PRIORITY", "PROJECT", "LISTS")
		fmt.Println(strings.Repeat("-", 110))
		for _, r := range rows {
			status, project := format.Placeholder, format.Placeholder
			if r.Status != nil {
				status = r.Status.Name
			}
			if r.Project != nil {
				project = r.Project.Name
			}
			name := r.Name
			if r.SubtaskCount > 0 {
				name = fmt.Sprintf("%s (%d)", name, r.SubtaskCount)
			}
			fmt.Printf("%-5d %-40s %-14s %-8s %-22s %s\n",
				r.ID,
				clip(name, 40),
				clip(status, 14),
				format.PriorityBadge(r.Priority).Label,
				clip(project, 22),
				format.OrPlaceholder(strings.Join(r.Lists, ", ")))
		}
		return nil
	}),
}

func init() {
	tasksCmd.Flags().BoolP("interactive", "i", false, "browse tasks in the terminal UI")
	tasksCmd.Flags().Uint("workspace", 0, "filter by workspace ID")
	tasksCmd.Flags().Uint("project", 0, "filter by project ID")
	tasksCmd.Flags().Uint("status", 0, "filter by status ID")
}
