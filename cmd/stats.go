package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library dashboard statistics",
	Long: `Show library dashboard statistics.

USAGE:
    mediatray stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := eng.Reload(cmd.Context()); err != nil {
			return err
		}

		s := eng.DashboardStats()
		fmt.Printf("Items:       %d\n", s.ItemCount)
		fmt.Printf("Total views: %d\n", s.TotalViews)
		fmt.Printf("Favorites:   %d\n", s.Favorites)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
