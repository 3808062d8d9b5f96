package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo data set",
	Long: `Seed the database with demo workspaces, projects, lists, tasks and files.
Seeding an already seeded database fails unless --reset is given.`,
	Args: cobra.NoArgs,
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetBool("reset")
		res, err := db.Seed(cmd.Context(), reset)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(res)
		}

		fmt.Printf("Seeded %d workspaces, %d projects, %d lists, %d tasks and %d comments\n",
			res.Workspaces, res.Projects, res.Lists, res.Tasks, res.Comments)
		fmt.Printf("  Admin sign-in: %s\n", res.AdminEmail)
		fmt.Printf("  Client portal: /client/%s\n", res.ClientSlug)
		return nil
	}),
}

func init() {
	seedCmd.Flags().Bool("reset", false, "delete all data before seeding")
}
