package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/domain"
	"github.com/refka/mediatray/internal/engine"
	"github.com/refka/mediatray/internal/format"
	"github.com/refka/mediatray/internal/search"
)

const listCommandLong = `List catalog items with filters and formats.

USAGE:
    mediatray list [OPTIONS]

OPTIONS:
    --section <name>     Section: library (default), studies, events, favorites
    --category <name>    Filter by category (e.g. Sermons, Hymns, Kids)
    --search <pattern>   Search title and description (substring match)
    --regex              Use regex search with --search
    --sort <field>       Sort field: recency (default), popularity
    --order <dir>        Sort order: desc (default), asc
    --page <n>           Page to show (default: 1)
    --all                Show the full filtered result without pagination
    --format=<format>    Output format: simple (default), table, compact, json
    -h, --help           Show this help`

var (
	listSection  string
	listCategory string
	listSearch   string
	listRegex    bool
	listSort     string
	listOrder    string
	listPage     int
	listAll      bool
	listFormat   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items with filters and formats",
	Long:  listCommandLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := applyViewFlags(eng); err != nil {
			return err
		}

		if err := eng.Reload(cmd.Context()); err != nil {
			return err
		}

		items := applySearch(eng.Filtered())

		var footer string
		if !listAll {
			page := domain.Paginate(items, listPage, eng.PageSize())
			if page.TotalPages > 1 {
				footer = fmt.Sprintf("Page %d of %d", page.Number, page.TotalPages)
			}
			items = page.Items
		}

		if len(items) == 0 {
			fmt.Println("No items found")
			return nil
		}
		if err := format.GetFormatter(listFormat).FormatItems(items, os.Stdout); err != nil {
			return err
		}
		if footer != "" {
			fmt.Println(footer)
		}
		return nil
	},
}

// applyViewFlags pushes the list flags into the engine's view parameters.
func applyViewFlags(eng *engine.Engine) error {
	if listSection != "" {
		section, err := domain.ParseSection(listSection)
		if err != nil {
			return err
		}
		eng.SetSection(section)
	}
	if listCategory != "" {
		category, err := domain.ParseCategory(listCategory)
		if err != nil {
			return err
		}
		eng.SetCategory(category)
	}

	opts := domain.DefaultSortOptions()
	if listSort != "" {
		field, err := domain.ParseSortField(listSort)
		if err != nil {
			return err
		}
		opts.Field = field
	}
	if listOrder != "" {
		order, err := domain.ParseSortOrder(listOrder)
		if err != nil {
			return err
		}
		opts.Order = order
	}
	eng.SetSort(opts)
	return nil
}

// applySearch narrows items by the search flags using a search provider.
func applySearch(items []domain.CatalogItem) []domain.CatalogItem {
	if listSearch == "" {
		return items
	}
	var provider search.Provider
	if listRegex {
		provider = search.NewRegexProvider()
	} else {
		provider = search.NewSubstringProvider()
	}

	matched := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if provider.Match(it, listSearch) {
			matched = append(matched, it)
		}
	}
	return matched
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSection, "section", "", "Section: library (default), studies, events, favorites")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (e.g. Sermons, Hymns, Kids)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search title and description (substring match)")
	listCmd.Flags().BoolVar(&listRegex, "regex", false, "Use regex search with --search")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort field: recency (default), popularity")
	listCmd.Flags().StringVar(&listOrder, "order", "", "Sort order: desc (default), asc")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to show (default: 1)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Show the full filtered result without pagination")
	listCmd.Flags().StringVar(&listFormat, "format", "simple", "Output format: simple (default), table, compact, json")
}
