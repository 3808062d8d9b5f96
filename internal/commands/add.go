package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task name]",
	Short: "Add a new task",
	Long: `Add a task to a workspace, parsing metadata out of the name.

Smart parsing syntax:
  #tag1,tag2   - Tags (comma-separated or individual)
  @project     - Project, by slug or unique slug prefix
  list:name    - List inside the project, by slug or prefix
  +priority    - Priority (urgent/high/normal/low or 4-1)
  due:3days    - Due date (dd/mm/yyyy, X days, X hours, X weeks)

Example:
  luna add "Order fabric samples #fabric @brooklyn list:procurement +high due:3days" -w crescent-interiors`,
	Args: cobra.MinimumNArgs(1),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("could not parse task: %s", strings.Join(parsed.Errors, ", "))
		}

		slug, _ := cmd.Flags().GetString("workspace")
		req, err := buildTaskRequest(cmd.Context(), slug, parsed)
		if err != nil {
			return err
		}
		if parent, _ := cmd.Flags().GetUint("parent"); parent != 0 {
			req.ParentTaskID = &parent
		}
		req.RequiresApproval, _ = cmd.Flags().GetBool("approval")
		req.Description, _ = cmd.Flags().GetString("description")

		task, err := db.CreateTask(cmd.Context(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(task)
		}

		fmt.Printf("Created task #%d: %s\n", task.ID, task.Name)
		if task.ProjectID != nil {
			fmt.Printf("  Project: #%d\n", *task.ProjectID)
		}
		if tags := task.TagNames(); len(tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(tags, ", "))
		}
		fmt.Printf("  Priority: %s\n", format.PriorityBadge(task.Priority).Label)
		if task.DueDate != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate))
		}
		if task.RequiresApproval {
			fmt.Println("  Waiting for approval")
		}
		return nil
	}),
}

// buildTaskRequest resolves the parsed project and list slugs inside the
// workspace and fills in the default status
func buildTaskRequest(ctx context.Context, workspaceSlug string, parsed parser.ParsedTask) (db.CreateTaskRequest, error) {
	var req db.CreateTaskRequest
	if strings.TrimSpace(workspaceSlug) == "" {
		return req, fmt.Errorf("a workspace is required: use --workspace <slug>")
	}

	ws, err := db.GetWorkspaceBySlug(ctx, workspaceSlug)
	if err != nil {
		return req, err
	}
	status, err := db.DefaultStatus(ctx)
	if err != nil {
		return req, err
	}

	req = db.CreateTaskRequest{
		Name:        parsed.Title,
		WorkspaceID: ws.ID,
		StatusID:    status.ID,
		Priority:    parsed.Priority,
		DueDate:     parsed.DueDate,
		Tags:        parsed.Tags,
	}

	if parsed.Project == "" {
		if parsed.List != "" {
			return req, fmt.Errorf("list:%s needs a project (@project)", parsed.List)
		}
		return req, nil
	}

	projects, err := db.ListProjects(ctx, &ws.ID)
	if err != nil {
		return req, err
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	i, err := matchSlug("project", parsed.Project, names)
	if err != nil {
		return req, err
	}
	projectID := projects[i].ID
	req.ProjectID = &projectID

	if parsed.List == "" {
		return req, nil
	}
	lists, err := db.ProjectLists(ctx, projectID)
	if err != nil {
		return req, err
	}
	names = make([]string, len(lists))
	for i, l := range lists {
		names[i] = l.Name
	}
	i, err = matchSlug("list", parsed.List, names)
	if err != nil {
		return req, err
	}
	req.ListID = &lists[i].ID
	return req, nil
}

// matchSlug finds the name whose slug equals want, or failing that the one
// name whose slug starts with it
func matchSlug(kind, want string, names []string) (int, error) {
	var prefixed []int
	for i, n := range names {
		slug := parser.Slugify(n)
		if slug == want {
			return i, nil
		}
		if strings.HasPrefix(slug, want) {
			prefixed = append(prefixed, i)
		}
	}
	switch len(prefixed) {
	case 0:
		return 0, fmt.Errorf("no %s matches '%s'", kind, want)
	case 1:
		return prefixed[0], nil
	}
	matches := make([]string, len(prefixed))
	for i, idx := range prefixed {
		matches[i] = names[idx]
	}
	return 0, fmt.Errorf("'%s' matches several %ss: %s", want, kind, strings.Join(matches, ", "))
}

func init() {
	addCmd.Flags().StringP("workspace", "w", "", "workspace slug")
	addCmd.Flags().Uint("parent", 0, "parent task ID, making this a subtask")
	addCmd.Flags().Bool("approval", false, "require client approval")
	addCmd.Flags().StringP("description", "d", "", "task description")
}
