package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/views"
)

var taskCmd = &cobra.Command{
	Use:   "task [task-id]",
	Short: "Show a task with its subtasks, comments and dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := views.BuildTaskDetail(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(d)
		}

		crumbs := make([]string, 0, len(d.Breadcrumbs))
		for _, c := range d.Breadcrumbs {
			crumbs = append(crumbs, c.Label)
		}
		fmt.Println(strings.Join(crumbs, " / "))

		t := d.Task
		fmt.Printf("\n#%d %s\n", t.ID, t.Name)
		if t.Status != nil {
			fmt.Printf("  Status:   %s\n", t.Status.Name)
		}
		fmt.Printf("  Priority: %s\n", format.PriorityBadge(t.Priority).Label)
		fmt.Printf("  Owner:    %s\n", format.OrPlaceholder(t.OwnerName()))
		fmt.Printf("  Due:      %s\n", format.FormatDate(t.DueDate))
		fmt.Printf("  Estimate: %s\n", format.FormatHours(t.TimeEstimate))
		if len(d.Lists) > 0 {
			fmt.Printf("  Lists:    %s\n", strings.Join(d.Lists, ", "))
		}
		if tags := t.TagNames(); len(tags) > 0 {
			fmt.Printf("  Tags:     %s\n", strings.Join(tags, ", "))
		}
		if t.RequiresApproval {
			fmt.Printf("  Approval: %s\n", d.ApprovalStatus)
		}
		if t.Description != "" {
			fmt.Printf("\n  %s\n", t.Description)
		}

		if len(t.Subtasks) > 0 {
			fmt.Println("\nSubtasks")
			for _, s := range t.Subtasks {
				status := format.Placeholder
				if s.Status != nil {
					status = s.Status.Name
				}
				fmt.Printf("  #%-4d %-44s %s\n", s.ID, clip(s.Name, 44), status)
			}
		}
		for _, dep := range d.BlockedBy {
			fmt.Printf("  Blocked by #%d %s\n", dep.ID, dep.Name)
		}
		for _, dep := range d.Blocking {
			fmt.Printf("  Blocking #%d %s\n", dep.ID, dep.Name)
		}

		if len(d.Files) > 0 {
			fmt.Println("\nFiles")
			for _, f := range d.Files {
				fmt.Printf("  %s (%s)\n", f.Filename, format.FormatBytes(f.Size))
			}
		}

		if len(d.Comments) > 0 {
			fmt.Println("\nComments")
			for _, c := range d.Comments {
				author := "unknown"
				if c.Author != nil {
					author = c.Author.DisplayName()
				}
				fmt.Printf("  %s, %s: %s\n", author, format.FormatDate(&c.CreatedAt), c.Body)
				for _, r := range c.Replies {
					replier := "unknown"
					if r.Author != nil {
						replier = r.Author.DisplayName()
					}
					fmt.Printf("    %s: %s\n", replier, r.Body)
				}
			}
		}
		return nil
	}),
}
