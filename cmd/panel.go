package cmd

import (
	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/tui"
)

// panelCmd represents the panel command
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive library panel",
	Long: `Open the interactive library panel.

Shows the current page of the library with live updates from the change
feed, search, category cycling, and the notifications overlay.

USAGE:
    mediatray panel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := eng.Start(cmd.Context()); err != nil {
			return err
		}
		return tui.Run(eng)
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
}
