package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/views"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"dashboard"},
	Short:   "Show dashboard counts and the approval queue",
	Args:    cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if id, _ := cmd.Flags().GetUint("workspace"); id != 0 {
			stats, err := db.WorkspaceStats(ctx, id)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(stats)
			}
			printStats(stats)
			return nil
		}

		d, err := views.BuildDashboard(ctx)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(d)
		}

		printStats(d.Stats)
		if len(d.PendingApprovals) > 0 {
			fmt.Println("\nAwaiting approval:")
			for _, t := range d.PendingApprovals {
				ws := ""
				if t.Workspace != nil {
					ws = t.Workspace.Name
				}
				fmt.Printf("  #%-4d %-44s %s\n", t.ID, clip(t.Name, 44), format.OrPlaceholder(ws))
			}
		}
		return nil
	}),
}

func printStats(s db.Stats) {
	fmt.Printf("Workspaces:        %d\n", s.Workspaces)
	fmt.Printf("Active projects:   %d\n", s.ActiveProjects)
	fmt.Printf("Open tasks:        %d\n", s.OpenTasks)
	fmt.Printf("Pending approvals: %d\n", s.PendingApprovals)
}

func init() {
	statsCmd.Flags().Uint("workspace", 0, "limit counts to one workspace")
}
