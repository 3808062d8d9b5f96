package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/hierarchy"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the folder tree of a workspace or project",
	Long: `Show folders and files. Without --project only workspace-level folders are
shown; project folders live in their own tree.`,
	Args: cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		workspaceID, _ := cmd.Flags().GetUint("workspace")
		if workspaceID == 0 {
			return fmt.Errorf("--workspace is required")
		}
		var projectID *uint
		if id, _ := cmd.Flags().GetUint("project"); id != 0 {
			if _, err := db.GetWorkspaceProject(cmd.Context(), workspaceID, id); err != nil {
				return err
			}
			projectID = &id
		}

		folders, err := db.ListFolders(cmd.Context(), workspaceID, projectID)
		if err != nil {
			return err
		}
		files, err := db.ListFiles(cmd.Context(), workspaceID, projectID)
		if err != nil {
			return err
		}

		tree := hierarchy.BuildFolderTree(folders, files)
		if jsonOutput {
			return printJSON(tree)
		}
		fmt.Printf("%d folders\n", tree.Count())
		printTree(tree)
		return nil
	}),
}

func init() {
	treeCmd.Flags().Uint("workspace", 0, "workspace ID")
	treeCmd.Flags().Uint("project", 0, "project ID inside the workspace")
}
