package engine

import (
	"github.com/refka/mediatray/internal/domain"
)

// Stats summarizes the session for the dashboard.
type Stats struct {
	ItemCount  int
	TotalViews int
	Favorites  int
	Unread     int
}

// SetSection switches the active section. Changing it resets the view to
// page one.
func (e *Engine) SetSection(s domain.Section) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.section == s {
		return
	}
	e.section = s
	e.page = 1
}

// SetCategory switches the active category filter.
func (e *Engine) SetCategory(c domain.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.category == c {
		return
	}
	e.category = c
	e.page = 1
}

// SetQuery switches the active search query.
func (e *Engine) SetQuery(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.query == q {
		return
	}
	e.query = q
	e.page = 1
}

// SetSort switches the active sort options.
func (e *Engine) SetSort(opts domain.SortOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sortOpts == opts {
		return
	}
	e.sortOpts = opts
	e.page = 1
}

// SetPage jumps to the requested page. Out-of-range values are clamped
// when the page is derived.
func (e *Engine) SetPage(page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if page < 1 {
		page = 1
	}
	e.page = page
}

// NextPage advances one page, clamped at the last page. The stored page is
// normalized to the derived page number first, so stepping after an
// out-of-range SetPage moves from the page actually shown.
func (e *Engine) NextPage() {
	page := e.CurrentPage()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = page.Number
	if page.Number < page.TotalPages {
		e.page = page.Number + 1
	}
}

// PrevPage steps back one page, clamped at the first page.
func (e *Engine) PrevPage() {
	page := e.CurrentPage()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = page.Number
	if page.Number > 1 {
		e.page = page.Number - 1
	}
}

// PageSize returns the configured page size.
func (e *Engine) PageSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pageSize
}

// Section returns the active section.
func (e *Engine) Section() domain.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.section
}

// Category returns the active category filter.
func (e *Engine) Category() domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.category
}

// Query returns the active search query.
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// Sort returns the active sort options.
func (e *Engine) Sort() domain.SortOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortOpts
}

// filter builds the filter for the current view parameters.
func (e *Engine) filter() domain.Filter {
	e.mu.Lock()
	f := domain.Filter{
		Category: e.category,
		Query:    e.query,
		Section:  e.section,
	}
	e.mu.Unlock()

	if f.Section == domain.SectionFavorites && e.favs != nil {
		f.Favorites = e.favs.All()
	}
	return f
}

// Filtered returns the full filtered and sorted result for the current
// view parameters, before pagination.
func (e *Engine) Filtered() []domain.CatalogItem {
	items := domain.FilterItems(e.store.Snapshot(), e.filter())
	return domain.SortItems(items, e.Sort())
}

// CurrentPage derives the visible page from the canonical store.
func (e *Engine) CurrentPage() domain.Page {
	items := e.Filtered()

	e.mu.Lock()
	page := e.page
	size := e.pageSize
	e.mu.Unlock()

	return domain.Paginate(items, page, size)
}

// OpenDetail opens the detail view for an item. Returns false when the
// item is not in the store.
func (e *Engine) OpenDetail(id string) bool {
	if _, ok := e.store.Get(id); !ok {
		return false
	}
	e.mu.Lock()
	e.detailID = id
	e.mu.Unlock()
	return true
}

// Detail returns the item currently shown in the detail view. The item is
// re-read from the store so counter changes are always visible.
func (e *Engine) Detail() (domain.CatalogItem, bool) {
	e.mu.Lock()
	id := e.detailID
	e.mu.Unlock()
	if id == "" {
		return domain.CatalogItem{}, false
	}
	return e.store.Get(id)
}

// CloseDetail dismisses the detail view.
func (e *Engine) CloseDetail() {
	e.mu.Lock()
	e.detailID = ""
	e.mu.Unlock()
}

// Notifications returns the in-app notification list, newest first.
func (e *Engine) Notifications() []domain.Notification {
	return e.bridge.Center().List()
}

// UnreadCount returns the number of unread notifications.
func (e *Engine) UnreadCount() int {
	return e.bridge.Center().UnreadCount()
}

// MarkRead flips one notification to read.
func (e *Engine) MarkRead(id string) bool {
	return e.bridge.Center().MarkRead(id)
}

// MarkAllRead flips every notification to read.
func (e *Engine) MarkAllRead() int {
	return e.bridge.Center().MarkAllRead()
}

// OpenNotification marks the notification read and opens the referenced
// item as if it were played. When the item has since been removed the
// click degrades to marking read only; returns whether the item opened.
func (e *Engine) OpenNotification(id string) bool {
	n, ok := e.bridge.Center().Get(id)
	if !ok {
		return false
	}
	e.bridge.Center().MarkRead(id)

	if n.ItemID == "" {
		return false
	}
	if !e.OpenDetail(n.ItemID) {
		e.logger.Debug("notification target gone", "item", n.ItemID)
		return false
	}
	e.Play(n.ItemID)
	return true
}

// DashboardStats summarizes the current session.
func (e *Engine) DashboardStats() Stats {
	items := e.store.Snapshot()
	s := Stats{
		ItemCount:  len(items),
		TotalViews: domain.TotalViews(items),
		Unread:     e.UnreadCount(),
	}
	if e.favs != nil {
		s.Favorites = e.favs.Len()
	}
	return s
}
