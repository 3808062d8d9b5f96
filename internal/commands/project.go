package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/models"
	"github.com/balkashynov/luna/internal/views"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		var workspaceID *uint
		if id, _ := cmd.Flags().GetUint("workspace"); id != 0 {
			workspaceID = &id
		}
		projects, err := db.ListProjects(cmd.Context(), workspaceID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(projects)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("%-4s %-32s %-10s %-6s %s\n", "ID", "NAME", "STATUS", "TASKS", "DATES")
		fmt.Println(strings.Repeat("-", 84))
		for _, p := range projects {
			fmt.Printf("%-4d %-32s %-10s %-6d %s - %s\n",
				p.ID,
				clip(p.Name, 32),
				format.ProjectStatusBadge(p.Status).Label,
				p.TaskCount,
				format.FormatDate(p.StartDate),
				format.FormatDate(p.EndDate))
		}
		return nil
	}),
}

var projectCmd = &cobra.Command{
	Use:   "project [project-id]",
	Short: "Show a project with its fields, lists and files",
	Long: `Show a project. Top-level tasks that belong to no list are shown under
"Direct"; a task in several lists appears under each of them.

Use --status to move the project to another stage: intake, pending, active,
on_hold or complete.`,
	Args: cobra.ExactArgs(1),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			p, err := db.UpdateProjectStatus(ctx, id, models.ProjectStatus(strings.ToUpper(status)))
			if err != nil {
				return err
			}
			fmt.Printf("Project #%d %s is now %s\n", p.ID, p.Name, format.ProjectStatusBadge(p.Status).Label)
			return nil
		}

		d, err := views.BuildProjectDetail(ctx, id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(d)
		}

		p := d.Project
		fmt.Printf("%s [%s]\n", p.Name, format.ProjectStatusBadge(p.Status).Label)
		fmt.Printf("  %s - %s, %d tasks\n", format.FormatDate(p.StartDate), format.FormatDate(p.EndDate), d.TaskCount)
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		if len(d.Fields) > 0 {
			fmt.Println()
			for _, f := range d.Fields {
				fmt.Printf("  %s: %s\n", f.Name, f.Value)
			}
		}

		fmt.Println("\nTasks")
		printPartition(d.Partition)

		fmt.Println("\nFiles")
		printTree(d.Files)
		return nil
	}),
}

func init() {
	projectsCmd.Flags().Uint("workspace", 0, "only projects of this workspace")
	projectCmd.Flags().String("status", "", "set the project status")
}
