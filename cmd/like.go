package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
)

// likeCmd represents the like command
var likeCmd = &cobra.Command{
	Use:   "like <item-id>",
	Short: "Toggle your like on an item",
	Long: `Toggle your like on an item.

The liked flag and the like counter flip locally right away and are
persisted in the background; a failed persistence never reverts them.

USAGE:
    mediatray like <item-id>`,
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
		liked, ok := eng.ToggleLike(id)
		if !ok {
			return fmt.Errorf("unknown item: %s", id)
		}

		it, _ := eng.Store().Get(id)
		if liked {
			colors.Success(fmt.Sprintf("Liked %q (%d likes)", it.Title, it.LikesCount))
		} else {
			colors.Success(fmt.Sprintf("Unliked %q (%d likes)", it.Title, it.LikesCount))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(likeCmd)
}
