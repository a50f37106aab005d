// Package store holds the canonical in-memory set of catalog items.
//
// The store is written by the mutation applier and the remote event
// reconciler and read by the derived view pipeline. Its internal order is
// insertion order with freshly inserted items prepended; that order is an
// implementation detail used only as a sort tie-break, never shown directly.
package store

import (
	"sync"

	"github.com/refka/mediatray/internal/domain"
)

// RecordStore is the canonical in-memory catalog state for one session.
type RecordStore struct {
	mu    sync.RWMutex
	items []domain.CatalogItem
	index map[string]int
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		items: make([]domain.CatalogItem, 0),
		index: make(map[string]int),
	}
}

// Upsert inserts the item unless its id is already present. The call is
// idempotent: an existing id makes it a no-op that only confirms presence,
// so a remote echo can never clobber locally-owned fields. Returns true when
// the item was actually inserted.
func (s *RecordStore) Upsert(item domain.CatalogItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[item.ID]; exists {
		return false
	}

	s.items = append([]domain.CatalogItem{item}, s.items...)
	s.reindex()
	return true
}

// Patch applies only the fields present in the partial; absent fields are
// left untouched. Counters are clamped at a floor of 0. Returns false when
// the id is unknown.
func (s *RecordStore) Patch(id string, p domain.ItemPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[id]
	if !exists {
		return false
	}

	it := &s.items[i]
	if p.Views != nil {
		it.Views = clampNonNegative(*p.Views)
	}
	if p.LikesCount != nil {
		it.LikesCount = clampNonNegative(*p.LikesCount)
	}
	if p.CommentsCount != nil {
		it.CommentsCount = clampNonNegative(*p.CommentsCount)
	}
	if p.Liked != nil {
		it.Liked = *p.Liked
	}
	return true
}

// BumpViews adjusts the view counter by delta in one step under the lock,
// clamped at a floor of 0, so a concurrent patch of the same counter is
// never overwritten by a stale read. Returns the new value and whether the
// id exists.
func (s *RecordStore) BumpViews(id string, delta int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[id]
	if !exists {
		return 0, false
	}

	s.items[i].Views = clampNonNegative(s.items[i].Views + delta)
	return s.items[i].Views, true
}

// Remove deletes the record with the given id. Returns false when absent.
func (s *RecordStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.index[id]
	if !exists {
		return false
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
	return true
}

// Get returns a copy of the record with the given id.
func (s *RecordStore) Get(id string) (domain.CatalogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.index[id]
	if !exists {
		return domain.CatalogItem{}, false
	}
	return s.items[i], true
}

// Snapshot returns a copy of all records in store order.
func (s *RecordStore) Snapshot() []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CatalogItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the full content of the store, used by full reload. The
// given slice is taken as the new store order.
func (s *RecordStore) Replace(items []domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]domain.CatalogItem, len(items))
	copy(s.items, items)
	s.reindex()
}

func (s *RecordStore) reindex() {
	s.index = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
