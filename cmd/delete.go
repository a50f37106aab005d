package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an item from the library",
	Long: `Delete an item from the library.

The item disappears locally only after the backend confirms the delete.

USAGE:
    mediatray delete <item-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := eng.Reload(cmd.Context()); err != nil {
			return err
		}

		id := args[0]
		if err := eng.DeleteItem(cmd.Context(), id); err != nil {
			return err
		}
		colors.Success(fmt.Sprintf("Deleted %s", id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
