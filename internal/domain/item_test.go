package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "all", input: "All", want: CategoryAll},
		{name: "sermons", input: "Sermons", want: CategorySermons},
		{name: "bible study with space", input: "Bible Study", want: CategoryBibleStudy},
		{name: "unknown", input: "Podcasts", wantErr: true},
		{name: "wrong case", input: "sermons", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionHoldsCatalog(t *testing.T) {
	tests := []struct {
		section Section
		want    bool
	}{
		{SectionLibrary, true},
		{SectionStudies, true},
		{SectionEvents, true},
		{SectionFavorites, true},
		{SectionDashboard, false},
		{SectionSettings, false},
	}

	for _, tt := range tests {
		t.Run(tt.section.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.section.HoldsCatalog())
		})
	}
}

func TestCatalogItemValidate(t *testing.T) {
	valid := CatalogItem{
		ID:        "item-1",
		Title:     "Morning Service",
		Category:  CategorySermons,
		CreatedAt: "2026-01-02T10:00:00Z",
	}

	tests := []struct {
		name    string
		mutate  func(*CatalogItem)
		wantErr bool
	}{
		{name: "valid item", mutate: func(*CatalogItem) {}},
		{name: "missing id", mutate: func(it *CatalogItem) { it.ID = "" }, wantErr: true},
		{name: "missing title", mutate: func(it *CatalogItem) { it.Title = "" }, wantErr: true},
		{name: "bad category", mutate: func(it *CatalogItem) { it.Category = "Nope" }, wantErr: true},
		{name: "empty category ok", mutate: func(it *CatalogItem) { it.Category = "" }},
		{name: "negative views", mutate: func(it *CatalogItem) { it.Views = -1 }, wantErr: true},
		{name: "bad timestamp", mutate: func(it *CatalogItem) { it.CreatedAt = "yesterday" }, wantErr: true},
		{name: "empty timestamp ok", mutate: func(it *CatalogItem) { it.CreatedAt = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := valid
			tt.mutate(&it)
			err := it.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTotalViews(t *testing.T) {
	items := []CatalogItem{
		{ID: "a", Views: 10},
		{ID: "b", Views: 0},
		{ID: "c", Views: 32},
	}
	assert.Equal(t, 42, TotalViews(items))
	assert.Equal(t, 0, TotalViews(nil))
}

func TestItemPatchIsZero(t *testing.T) {
	views := 3
	assert.True(t, ItemPatch{}.IsZero())
	assert.False(t, ItemPatch{Views: &views}.IsZero())
}
