// Package domain contains the core entities of the media library: catalog
// items, remote change events, in-app notifications, and the pure filter,
// sort, and pagination logic that derives the visible view from them.
package domain

import (
	"fmt"
	"time"
)

// Category classifies a catalog item.
type Category string

const (
	CategoryAll        Category = "All"
	CategorySermons    Category = "Sermons"
	CategoryHymns      Category = "Hymns"
	CategoryLiturgies  Category = "Liturgies"
	CategoryBibleStudy Category = "Bible Study"
	CategoryKids       Category = "Kids"
	CategoryEvents     Category = "Events"
)

// Categories returns all selectable categories, "All" first.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategorySermons,
		CategoryHymns,
		CategoryLiturgies,
		CategoryBibleStudy,
		CategoryKids,
		CategoryEvents,
	}
}

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

// Section identifies which part of the application the view is serving.
type Section string

const (
	SectionLibrary   Section = "library"
	SectionStudies   Section = "studies"
	SectionEvents    Section = "events"
	SectionFavorites Section = "favorites"
	SectionDashboard Section = "dashboard"
	SectionSettings  Section = "settings"
)

// Sections returns all known sections.
func Sections() []Section {
	return []Section{
		SectionLibrary,
		SectionStudies,
		SectionEvents,
		SectionFavorites,
		SectionDashboard,
		SectionSettings,
	}
}

// IsValid checks if the section is valid.
func (s Section) IsValid() bool {
	for _, known := range Sections() {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the section.
func (s Section) String() string {
	return string(s)
}

// HoldsCatalog reports whether the section displays catalog items at all.
// Dashboard and settings are administrative and host none.
func (s Section) HoldsCatalog() bool {
	switch s {
	case SectionDashboard, SectionSettings:
		return false
	default:
		return true
	}
}

// ParseSection parses a string into a Section.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if !sec.IsValid() {
		return "", fmt.Errorf("invalid section: %s", s)
	}
	return sec, nil
}

// CatalogItem represents a single media entry in the library.
type CatalogItem struct {
	ID            string   `json:"id"`
	MediaID       string   `json:"media_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	Thumbnail     string   `json:"thumbnail"`
	Views         int      `json:"views"`
	LikesCount    int      `json:"likes_count"`
	CommentsCount int      `json:"comments_count"`
	Liked         bool     `json:"liked"`
	CreatedAt     string   `json:"created_at"`
}

// Validate validates the catalog item and returns an error if invalid.
func (it *CatalogItem) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item ID cannot be empty")
	}

	if it.Title == "" {
		return fmt.Errorf("item title cannot be empty")
	}

	if it.Category != "" && !it.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", it.Category)
	}

	if it.Views < 0 || it.LikesCount < 0 || it.CommentsCount < 0 {
		return fmt.Errorf("counters cannot be negative")
	}

	if it.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, it.CreatedAt); err != nil {
			return fmt.Errorf("invalid timestamp format: %w", err)
		}
	}

	return nil
}

// ItemPatch is a partial update of a catalog item. Nil fields are left
// untouched when the patch is applied.
type ItemPatch struct {
	Views         *int
	LikesCount    *int
	CommentsCount *int
	Liked         *bool
}

// IsZero reports whether the patch carries no fields.
func (p ItemPatch) IsZero() bool {
	return p.Views == nil && p.LikesCount == nil && p.CommentsCount == nil && p.Liked == nil
}

// TotalViews sums the view counts of the given items.
func TotalViews(items []CatalogItem) int {
	total := 0
	for _, it := range items {
		total += it.Views
	}
	return total
}
