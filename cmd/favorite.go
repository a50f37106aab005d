package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
)

// favoriteCmd represents the favorite command
var favoriteCmd = &cobra.Command{
	Use:   "favorite <item-id>",
	Short: "Toggle an item in the local favorite set",
	Long: `Toggle an item in the local favorite set.

Favorites live on this device only and keep their own lifecycle: an id
stays favorited even while the item is absent from the catalog.

USAGE:
    mediatray favorite <item-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		favs := openFavorites()
		if favs == nil {
			return fmt.Errorf("favorites are not available (state_dir is not configured)")
		}
		defer favs.Close()

		id := args[0]
		favorited, err := favs.Toggle(id)
		if err != nil {
			return err
		}
		if favorited {
			colors.Success(fmt.Sprintf("Favorited %s", id))
		} else {
			colors.Success(fmt.Sprintf("Unfavorited %s", id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}
