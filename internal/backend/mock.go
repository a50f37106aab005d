package backend

import (
	"context"
	"sync"

	"github.com/refka/mediatray/internal/domain"
)

// MockClient is a configurable in-memory Client for tests. Unset function
// fields fall back to benign defaults.
type MockClient struct {
	CatalogFunc        func(ctx context.Context) ([]domain.CatalogItem, error)
	LikeCountsFunc     func(ctx context.Context) (map[string]int, error)
	LikedByUserFunc    func(ctx context.Context) (map[string]struct{}, error)
	CommentCountsFunc  func(ctx context.Context) (map[string]int, error)
	InsertItemFunc     func(ctx context.Context, item domain.CatalogItem) (domain.CatalogItem, error)
	DeleteItemFunc     func(ctx context.Context, id string) error
	SetLikedFunc       func(ctx context.Context, itemID string, liked bool) error
	IncrementViewsFunc func(ctx context.Context, id string) error
	SubscribeFunc      func(ctx context.Context) (Subscription, error)

	mu    sync.Mutex
	calls []string
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockClient) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *MockClient) Catalog(ctx context.Context) ([]domain.CatalogItem, error) {
	m.record("Catalog")
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) LikeCounts(ctx context.Context) (map[string]int, error) {
	m.record("LikeCounts")
	if m.LikeCountsFunc != nil {
		return m.LikeCountsFunc(ctx)
	}
	return map[string]int{}, nil
}

func (m *MockClient) LikedByUser(ctx context.Context) (map[string]struct{}, error) {
	m.record("LikedByUser")
	if m.LikedByUserFunc != nil {
		return m.LikedByUserFunc(ctx)
	}
	return map[string]struct{}{}, nil
}

func (m *MockClient) CommentCounts(ctx context.Context) (map[string]int, error) {
	m.record("CommentCounts")
	if m.CommentCountsFunc != nil {
		return m.CommentCountsFunc(ctx)
	}
	return map[string]int{}, nil
}

func (m *MockClient) InsertItem(ctx context.Context, item domain.CatalogItem) (domain.CatalogItem, error) {
	m.record("InsertItem")
	if m.InsertItemFunc != nil {
		return m.InsertItemFunc(ctx, item)
	}
	return item, nil
}

func (m *MockClient) DeleteItem(ctx context.Context, id string) error {
	m.record("DeleteItem")
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) SetLiked(ctx context.Context, itemID string, liked bool) error {
	m.record("SetLiked")
	if m.SetLikedFunc != nil {
		return m.SetLikedFunc(ctx, itemID, liked)
	}
	return nil
}

func (m *MockClient) IncrementViews(ctx context.Context, id string) error {
	m.record("IncrementViews")
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) Subscribe(ctx context.Context) (Subscription, error) {
	m.record("Subscribe")
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx)
	}
	return NewMockSubscription(), nil
}

// MockSubscription is an in-memory change feed for tests.
type MockSubscription struct {
	ch        chan domain.RemoteEvent
	closeOnce sync.Once
}

// NewMockSubscription creates a mock feed with a small buffer.
func NewMockSubscription() *MockSubscription {
	return &MockSubscription{ch: make(chan domain.RemoteEvent, 16)}
}

// Emit pushes one event into the feed.
func (s *MockSubscription) Emit(e domain.RemoteEvent) {
	s.ch <- e
}

// Events returns the channel of events.
func (s *MockSubscription) Events() <-chan domain.RemoteEvent {
	return s.ch
}

// Close ends the feed.
func (s *MockSubscription) Close() error {
	s.closeOnce.Do(func() { close(s.ch) })
	return nil
}
