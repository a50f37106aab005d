// Package engine coordinates the record store, the backend client, the
// favorite set, and the notification bridge into one session-scoped sync
// engine. It owns the view parameters and derives the visible page from the
// canonical store on every read.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/refka/mediatray/internal/backend"
	"github.com/refka/mediatray/internal/domain"
	"github.com/refka/mediatray/internal/favorites"
	"github.com/refka/mediatray/internal/logging"
	"github.com/refka/mediatray/internal/notify"
	"github.com/refka/mediatray/internal/store"
)

// persistTimeout bounds fire-and-forget backend writes.
const persistTimeout = 15 * time.Second

// Options configures a new Engine.
type Options struct {
	Store     *store.RecordStore
	Favorites *favorites.Store
	Backend   backend.Client
	Bridge    *notify.Bridge
	PageSize  int
	Logger    logging.Logger
}

// Engine is the session-scoped sync engine.
type Engine struct {
	mu      sync.Mutex
	store   *store.RecordStore
	favs    *favorites.Store
	backend backend.Client
	bridge  *notify.Bridge
	logger  logging.Logger

	pageSize int
	page     int
	section  domain.Section
	category domain.Category
	query    string
	sortOpts domain.SortOptions

	detailID string

	sub      backend.Subscription
	loopDone chan struct{}
	wg       sync.WaitGroup
}

// New creates an engine with the given options. Backend is required; the
// favorite set may be nil, in which case favorites are unavailable.
func New(opts Options) (*Engine, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("engine: backend client is required")
	}
	if opts.Store == nil {
		opts.Store = store.NewRecordStore()
	}
	if opts.Bridge == nil {
		opts.Bridge = notify.NewBridge(notify.NewCenter(), nil, false, opts.Logger)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Engine{
		store:    opts.Store,
		favs:     opts.Favorites,
		backend:  opts.Backend,
		bridge:   opts.Bridge,
		logger:   opts.Logger,
		pageSize: opts.PageSize,
		page:     1,
		section:  domain.SectionLibrary,
		category: domain.CategoryAll,
		sortOpts: domain.DefaultSortOptions(),
	}, nil
}

// Store returns the canonical record store.
func (e *Engine) Store() *store.RecordStore {
	return e.store
}

// Center returns the in-app notification list.
func (e *Engine) Center() *notify.Center {
	return e.bridge.Center()
}

// Start performs the initial load and begins consuming the change feed.
// The feed is consumed by a single goroutine; events are applied one at a
// time in arrival order.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.Reload(ctx); err != nil {
		return err
	}

	sub, err := e.backend.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("engine: subscribe: %w", err)
	}

	e.mu.Lock()
	e.sub = sub
	e.loopDone = make(chan struct{})
	e.mu.Unlock()

	go e.consume(sub)
	return nil
}

// Close stops the change feed and waits for in-flight backend writes.
func (e *Engine) Close() error {
	e.mu.Lock()
	sub := e.sub
	done := e.loopDone
	e.mu.Unlock()

	var err error
	if sub != nil {
		err = sub.Close()
	}
	if done != nil {
		<-done
	}
	e.wg.Wait()
	return err
}

// Reload replaces the full store content from the backend: catalog rows
// joined with the like, comment, and per-user like aggregates.
func (e *Engine) Reload(ctx context.Context) error {
	items, err := e.backend.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("engine: reload: %w", err)
	}
	likeCounts, err := e.backend.LikeCounts(ctx)
	if err != nil {
		return fmt.Errorf("engine: reload: %w", err)
	}
	commentCounts, err := e.backend.CommentCounts(ctx)
	if err != nil {
		return fmt.Errorf("engine: reload: %w", err)
	}
	liked, err := e.backend.LikedByUser(ctx)
	if err != nil {
		return fmt.Errorf("engine: reload: %w", err)
	}

	for i := range items {
		items[i].LikesCount = likeCounts[items[i].ID]
		items[i].CommentsCount = commentCounts[items[i].ID]
		_, items[i].Liked = liked[items[i].ID]
	}

	e.store.Replace(items)
	e.resetPage()
	e.logger.Info("catalog reloaded", "items", len(items))
	return nil
}

// persist runs a backend write detached from the caller. Failures are
// logged and never surfaced; the optimistic local state stands.
func (e *Engine) persist(op string, fn func(ctx context.Context) error) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			e.logger.Warn("backend write failed", "op", op, "error", err)
		}
	}()
}

// resetPage snaps the view back to the first page.
func (e *Engine) resetPage() {
	e.mu.Lock()
	e.page = 1
	e.mu.Unlock()
}
