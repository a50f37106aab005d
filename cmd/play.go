package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <item-id>",
	Short: "Play an item, bumping its view counter",
	Long: `Play an item, bumping its view counter.

The counter is bumped locally right away and persisted in the background;
a failed persistence never takes the bump back.

USAGE:
    mediatray play <item-id>`,
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
		if !eng.Play(id) {
			return fmt.Errorf("unknown item: %s", id)
		}

		it, _ := eng.Store().Get(id)
		colors.Success(fmt.Sprintf("Playing %q (%d views)", it.Title, it.Views))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
