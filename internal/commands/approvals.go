package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/approval"
	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
)

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "List tasks waiting for client approval",
	Args:  cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		var workspaceID *uint
		if id, _ := cmd.Flags().GetUint("workspace"); id != 0 {
			workspaceID = &id
		}
		tasks, err := db.PendingApprovals(cmd.Context(), workspaceID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(tasks)
		}
		if len(tasks) == 0 {
			fmt.Println("Nothing is waiting for approval.")
			return nil
		}

		for _, t := range tasks {
			ws := format.Placeholder
			if t.Workspace != nil {
				ws = t.Workspace.Name
			}
			fmt.Printf("#%-4d %-44s %-22s %s\n", t.ID, clip(t.Name, 44), clip(ws, 22), format.FormatDate(&t.CreatedAt))
		}
		return nil
	}),
}

var approveCmd = &cobra.Command{
	Use:   "approve [task-id]",
	Short: "Approve a task",
	Args:  cobra.ExactArgs(1),
	RunE:  withDB(decide("approve")),
}

var rejectCmd = &cobra.Command{
	Use:   "reject [task-id]",
	Short: "Reject a task",
	Args:  cobra.ExactArgs(1),
	RunE:  withDB(decide("reject")),
}

// decide records a decision by the user given with --by. A task can be
// decided only once.
func decide(decision string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}
		status, err := approval.ParseDecision(decision)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("by")
		user, err := db.GetUserByEmail(cmd.Context(), email)
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")

		a, err := db.DecideApproval(cmd.Context(), taskID, status, user.ID, note)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(a)
		}
		fmt.Printf("Task #%d %s by %s\n", taskID, format.FormatLabel(string(a.Status)), user.DisplayName())
		return nil
	}
}

func init() {
	approvalsCmd.Flags().Uint("workspace", 0, "only this workspace")
	for _, c := range []*cobra.Command{approveCmd, rejectCmd} {
		c.Flags().String("by", "", "email of the deciding user")
		c.Flags().String("note", "", "note stored with the decision")
		_ = c.MarkFlagRequired("by")
	}
}
