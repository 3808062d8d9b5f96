package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/format"
	"github.com/balkashynov/luna/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List task statuses and archive or reactivate them",
	Long: `List task statuses. Archived statuses keep their tasks but get no board
column; the boards report how many cards they hide.`,
	Args: cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		statuses, err := db.ListStatuses(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(statuses)
		}

		fmt.Printf("%-4s %-20s %-9s %-8s %s\n", "ID", "NAME", "STATE", "DEFAULT", "TASKS")
		fmt.Println(strings.Repeat("-", 52))
		for _, s := range statuses {
			def := ""
			if s.IsDefault {
				def = "yes"
			}
			fmt.Printf("%-4d %-20s %-9s %-8s %d\n", s.ID, clip(s.Name, 20), format.FormatLabel(string(s.State)), def, s.TaskCount)
		}
		return nil
	}),
}

var statusArchiveCmd = &cobra.Command{
	Use:   "archive [status]",
	Short: "Archive a status, hiding its column from every board",
	Args:  cobra.ExactArgs(1),
	RunE:  withDB(setState(models.StatusArchived)),
}

var statusActivateCmd = &cobra.Command{
	Use:   "activate [status]",
	Short: "Bring an archived status back onto the boards",
	Args:  cobra.ExactArgs(1),
	RunE:  withDB(setState(models.StatusActive)),
}

func setState(state models.StatusState) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		status, err := resolveStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		updated, err := db.SetStatusState(cmd.Context(), status.ID, state)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(updated)
		}
		fmt.Printf("Status #%d %s is now %s\n", updated.ID, updated.Name, format.FormatLabel(string(updated.State)))
		return nil
	}
}

func init() {
	statusCmd.AddCommand(statusArchiveCmd)
	statusCmd.AddCommand(statusActivateCmd)
}
