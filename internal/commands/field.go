package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/luna/internal/db"
	"github.com/balkashynov/luna/internal/models"
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Fill in a project's custom fields",
}

var fieldSetCmd = &cobra.Command{
	Use:   "set [project-id] [field-id] [value]",
	Short: "Set a custom field value on a project",
	Long: `Set the value of one of the workspace's custom fields for a project.
Select fields only accept one of their options.`,
	Args: cobra.ExactArgs(3),
	RunE: withDB(func(cmd *cobra.Command, args []string) error {
		projectID, fieldID, err := parseIDPair(args[:2])
		if err != nil {
			return err
		}
		value, err := setFieldValue(cmd.Context(), projectID, fieldID, args[2])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(value)
		}
		fmt.Printf("Project #%d field #%d = %s\n", projectID, fieldID, value.Value)
		return nil
	}),
}

// setFieldValue creates the value, or overwrites it when one is stored
func setFieldValue(ctx context.Context, projectID, fieldID uint, value string) (*models.CustomFieldValue, error) {
	v, err := db.SetCustomFieldValue(ctx, projectID, fieldID, value)
	if errors.Is(err, db.ErrConstraint) {
		return db.UpdateCustomFieldValue(ctx, projectID, fieldID, value)
	}
	return v, err
}

func init() {
	fieldCmd.AddCommand(fieldSetCmd)
}
