package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testItems() []CatalogItem {
	return []CatalogItem{
		{ID: "a", Title: "Sunday Sermon", Description: "weekly message", Category: CategorySermons},
		{ID: "b", Title: "Genesis Study", Description: "verse by verse", Category: CategoryBibleStudy},
		{ID: "c", Title: "Christmas Concert", Description: "annual event", Category: CategoryEvents},
		{ID: "d", Title: "Kids Hour", Description: "stories and songs", Category: CategoryKids},
	}
}

func TestMatchesFilterCategory(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantIDs  []string
	}{
		{name: "all is a wildcard", category: CategoryAll, wantIDs: []string{"a", "b", "c", "d"}},
		{name: "empty behaves like all", category: "", wantIDs: []string{"a", "b", "c", "d"}},
		{name: "single category", category: CategorySermons, wantIDs: []string{"a"}},
		{name: "no matches", category: CategoryHymns, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(testItems(), Filter{Category: tt.category})
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatchesFilterQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "title match case-insensitive", query: "SERMON", wantIDs: []string{"a"}},
		{name: "description match", query: "verse", wantIDs: []string{"b"}},
		{name: "title or description", query: "s", wantIDs: []string{"a", "b", "c", "d"}},
		{name: "no match", query: "podcast", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(testItems(), Filter{Query: tt.query})
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatchesFilterSection(t *testing.T) {
	favorites := map[string]struct{}{"c": {}, "zzz": {}}

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{name: "library shows everything", filter: Filter{Section: SectionLibrary}, wantIDs: []string{"a", "b", "c", "d"}},
		{name: "studies restricts to bible study", filter: Filter{Section: SectionStudies}, wantIDs: []string{"b"}},
		{name: "events restricts to events", filter: Filter{Section: SectionEvents}, wantIDs: []string{"c"}},
		{name: "favorites by membership", filter: Filter{Section: SectionFavorites, Favorites: favorites}, wantIDs: []string{"c"}},
		{name: "favorites with empty set", filter: Filter{Section: SectionFavorites}, wantIDs: []string{}},
		{name: "dashboard holds nothing", filter: Filter{Section: SectionDashboard}, wantIDs: []string{}},
		{name: "settings holds nothing", filter: Filter{Section: SectionSettings}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(testItems(), tt.filter)
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterItemsEmptyFilterIsIdentity(t *testing.T) {
	items := testItems()
	got := FilterItems(items, Filter{})

	assert.Equal(t, items, got)

	// Returned slice is a copy; mutating it leaves the input alone.
	got[0].Title = "changed"
	assert.Equal(t, "Sunday Sermon", items[0].Title)
}

func TestFilterItemsCombinedCriteriaNarrow(t *testing.T) {
	items := testItems()

	broad := FilterItems(items, Filter{Query: "s"})
	narrow := FilterItems(items, Filter{Query: "s", Category: CategoryKids})

	assert.LessOrEqual(t, len(narrow), len(broad))
	for _, it := range narrow {
		assert.Equal(t, CategoryKids, it.Category)
	}
}
