package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/views"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List workspaces",
	Args:  cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		workspaces, err := db.ListWorkspaces(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(workspaces)
		}
		if len(workspaces) == 0 {
			fmt.Println("No workspaces found. Use 'luna seed' to load demo data.")
			return nil
		}

		fmt.Printf("%-4s %-28s %-24s %-8s %-8s %s\n", "ID", "NAME", "SLUG", "TYPE", "PROJECTS", "TASKS")
		fmt.Println(strings.Repeat("-", 84))
		for _, w := range workspaces {
			fmt.Printf("%-4d %-28s %-24s %-8s %-8d %d\n",
				w.ID,
				clip(w.Name, 28),
				clip(w.Slug, 24),
				format.WorkspaceTypeBadge(w.Type).Label,
				w.ProjectCount,
				w.TaskCount)
		}
		return nil
	}),
}

var workspaceCmd = &cobra.Command{
	Use:   "workspace [workspace-id]",
	Short: "Show a workspace with its projects, tasks and files",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := views.BuildWorkspaceDetail(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(d)
		}

		ws := d.Workspace
		fmt.Printf("%s (%s, %s)\n", ws.Name, ws.Slug, format.WorkspaceTypeBadge(ws.Type).Label)
		if ws.Address != "" {
			fmt.Printf("  %s\n", ws.Address)
		}
		fmt.Printf("  %d active projects, %d open tasks, %d pending approvals\n",
			d.Stats.ActiveProjects, d.Stats.OpenTasks, d.Stats.PendingApprovals)

		for _, p := range d.Projects {
			fmt.Printf("\n%s [%s] #%d\n", p.Project.Name, format.ProjectStatusBadge(p.Project.Status).Label, p.Project.ID)
			for _, f := range p.Fields {
				fmt.Printf("  %s: %s\n", f.Name, f.Value)
			}
			printPartition(p.Partition)
		}

		if len(d.WorkspaceTasks) > 0 {
			fmt.Println("\nWorkspace tasks")
			printRows("  ", d.WorkspaceTasks)
		}

		fmt.Println("\nFiles")
		printTree(d.Files)
		return nil
	}),
}
