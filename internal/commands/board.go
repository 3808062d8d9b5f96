package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/kanban"
	"github.com/balkashynov/luna/internal/tui"
	"github.com/balkashynov/luna/internal/views"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the kanban board of a project or workspace",
	Long: `Open an interactive kanban board. Project boards group cards by list and
workspace boards group them by project. Moving a card changes the task's status.`,
	Args: cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")
		workspaceID, _ := cmd.Flags().GetUint("workspace")
		if (projectID == 0) == (workspaceID == 0) {
			return fmt.Errorf("give exactly one of --project or --workspace")
		}

		src := &boardSource{ctx: cmd.Context(), projectID: projectID, workspaceID: workspaceID}
		if jsonOutput {
			b, err := src.Load()
			if err != nil {
				return err
			}
			return printJSON(b)
		}

		title, err := src.title()
		if err != nil {
			return err
		}
		return tui.RunBoard(title, src)
	}),
}

// boardSource reads boards through the admin views and moves cards by
// updating the task status
type boardSource struct {
	ctx         context.Context
	projectID   uint
	workspaceID uint
}

func (s *boardSource) Load() (kanban.Board, error) {
	if s.projectID != 0 {
		d, err := views.BuildProjectDetail(s.ctx, s.projectID)
		if err != nil {
			return kanban.Board{}, err
		}
		return d.Board, nil
	}
	d, err := views.BuildWorkspaceDetail(s.ctx, s.workspaceID)
	if err != nil {
		return kanban.Board{}, err
	}
	return d.Board, nil
}

func (s *boardSource) Move(taskID, statusID uint) error {
	_, err := db.UpdateTaskStatus(s.ctx, taskID, statusID)
	return err
}

func (s *boardSource) title() (string, error) {
	if s.projectID != 0 {
		p, err := db.GetProject(s.ctx, s.projectID)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	}
	ws, err := db.GetWorkspace(s.ctx, s.workspaceID)
	if err != nil {
		return "", err
	}
	return ws.Name, nil
}
