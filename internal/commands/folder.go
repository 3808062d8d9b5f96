package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Organize the folders shown by 'luna tree'",
}

var folderMoveCmd = &cobra.Command{
	Use:   "mv [folder-id] [parent-id]",
	Short: "Move a folder under another folder, or to the top of its tree",
	Long: `Move a folder under another folder of the same workspace or project. Without
a parent the folder moves to the top level. A folder cannot move under itself
or one of its own subfolders.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var parentID *uint
		if len(args) == 2 {
			p, err := parseID(args[1])
			if err != nil {
				return err
			}
			parentID = &p
		}

		folder, err := db.MoveFolder(cmd.Context(), id, parentID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(folder)
		}
		if parentID == nil {
			fmt.Printf("Moved folder #%d %s to the top level\n", folder.ID, folder.Name)
		} else {
			fmt.Printf("Moved folder #%d %s under #%d\n", folder.ID, folder.Name, *parentID)
		}
		return nil
	}),
}

func init() {
	folderCmd.AddCommand(folderMoveCmd)
}
