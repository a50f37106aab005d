package domain

// DefaultPageSize is the fixed page size of the derived view.
const DefaultPageSize = 12

// Page is one page of the derived view plus the total page count of the
// filtered result it was cut from.
type Page struct {
	Items      []CatalogItem
	Number     int
	TotalPages int
}

// Paginate cuts a fixed-size page out of the given items. The requested page
// is clamped implicitly by the available data: below 1 it becomes 1, past the
// end it becomes the last page. An empty input yields an empty page 1 of 0.
func Paginate(items []CatalogItem, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	if len(items) == 0 {
		return Page{Items: []CatalogItem{}, Number: 1, TotalPages: 0}
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]CatalogItem, end-start)
	copy(out, items[start:end])

	return Page{Items: out, Number: page, TotalPages: totalPages}
}
