package domain

import (
	"strings"
)

// Filter holds filter criteria for catalog items.
type Filter struct {
	Category  Category
	Query     string
	Section   Section
	Favorites map[string]struct{}
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return (f.Category == "" || f.Category == CategoryAll) &&
		f.Query == "" &&
		(f.Section == "" || f.Section == SectionLibrary)
}

// MatchesFilter checks if the item matches the given filter criteria.
func (it *CatalogItem) MatchesFilter(f Filter) bool {
	// Category equality; "All" matches everything.
	if f.Category != "" && f.Category != CategoryAll && it.Category != f.Category {
		return false
	}

	// Case-insensitive substring against title OR description.
	if f.Query != "" {
		query := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(it.Title), query) &&
			!strings.Contains(strings.ToLower(it.Description), query) {
			return false
		}
	}

	return it.matchesSection(f)
}

func (it *CatalogItem) matchesSection(f Filter) bool {
	switch f.Section {
	case "", SectionLibrary:
		return true
	case SectionStudies:
		return it.Category == CategoryBibleStudy
	case SectionEvents:
		return it.Category == CategoryEvents
	case SectionFavorites:
		_, ok := f.Favorites[it.ID]
		return ok
	default:
		// Administrative sections host no catalog items.
		return f.Section.HoldsCatalog()
	}
}

// FilterItems filters a slice of catalog items based on the given filter.
// Returns a new slice containing only matching items, preserving order.
func FilterItems(items []CatalogItem, f Filter) []CatalogItem {
	if f.IsEmpty() {
		result := make([]CatalogItem, len(items))
		copy(result, items)
		return result
	}

	result := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		if it.MatchesFilter(f) {
			result = append(result, it)
		}
	}
	return result
}
