package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/domain"
)

var (
	addTitle       string
	addDescription string
	addCategory    string
	addMediaID     string
	addThumbnail   string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item to the library",
	Long: `Add a new item to the library.

The item is created remotely first; it appears locally only after the
backend confirms the insert.

USAGE:
    mediatray add --title <title> [OPTIONS]

OPTIONS:
    --title <text>        Item title (required)
    --description <text>  Item description
    --category <name>     Category (e.g. Sermons, Hymns, Kids)
    --media <id>          Media reference id
    --thumbnail <url>     Thumbnail URL
    -h, --help            Show this help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addTitle == "" {
			return fmt.Errorf("--title is required")
		}

		item := domain.CatalogItem{
			MediaID:     addMediaID,
			Title:       addTitle,
			Description: addDescription,
			Thumbnail:   addThumbnail,
		}
		if addCategory != "" {
			category, err := domain.ParseCategory(addCategory)
			if err != nil {
				return err
			}
			item.Category = category
		}

		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		stored, err := eng.AddItem(cmd.Context(), item)
		if err != nil {
			return err
		}
		colors.Success(fmt.Sprintf("Added %q as %s", stored.Title, stored.ID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addTitle, "title", "", "Item title (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Item description")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (e.g. Sermons, Hymns, Kids)")
	addCmd.Flags().StringVar(&addMediaID, "media", "", "Media reference id")
	addCmd.Flags().StringVar(&addThumbnail, "thumbnail", "", "Thumbnail URL")
}
