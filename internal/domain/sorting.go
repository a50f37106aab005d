package domain

import (
	"fmt"
	"sort"
)

// SortField specifies which field to sort catalog items by.
type SortField string

const (
	// SortByRecency orders by creation timestamp.
	SortByRecency SortField = "recency"
	// SortByPopularity orders by view count.
	SortByPopularity SortField = "popularity"
)

// IsValid checks if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByRecency, SortByPopularity:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort field.
func (s SortField) String() string {
	return string(s)
}

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	return string(s)
}

// SortOptions holds sorting options for catalog items.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions returns the default sort options (recency descending).
func DefaultSortOptions() SortOptions {
	return SortOptions{Field: SortByRecency, Order: SortOrderDesc}
}

// normalizeSortOptions normalizes sort options by setting defaults.
func normalizeSortOptions(opts SortOptions) SortOptions {
	if !opts.Field.IsValid() {
		opts.Field = SortByRecency
	}
	if !opts.Order.IsValid() {
		opts.Order = SortOrderDesc
	}
	return opts
}

// SortItems sorts catalog items based on the given options. The sort is
// stable: two items that compare equal keep their input order, which the
// caller uses as the insertion-order tie-break. Returns a new sorted slice
// without modifying the original.
func SortItems(items []CatalogItem, opts SortOptions) []CatalogItem {
	if len(items) == 0 {
		return items
	}

	opts = normalizeSortOptions(opts)

	sorted := make([]CatalogItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		less := compareByField(sorted[i], sorted[j], opts.Field)
		if opts.Order == SortOrderDesc {
			return compareByField(sorted[j], sorted[i], opts.Field)
		}
		return less
	})

	return sorted
}

// compareByField reports whether i sorts strictly before j ascending.
func compareByField(i, j CatalogItem, field SortField) bool {
	switch field {
	case SortByPopularity:
		return i.Views < j.Views
	default:
		return i.CreatedAt < j.CreatedAt
	}
}

// ParseSortField parses a string into a SortField.
func ParseSortField(field string) (SortField, error) {
	f := SortField(field)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(order)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}
