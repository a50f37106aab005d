// Package backend talks to the remote media service: the REST surface used
// for reads and mutations, and the realtime change feed used by the
// reconciler.
package backend

import (
	"context"

	"github.com/refka/mediatray/internal/domain"
)

// Client is the remote collaborator of the sync engine. All calls are
// blocking and honor the given context.
type Client interface {
	// Catalog fetches all catalog rows, newest first.
	Catalog(ctx context.Context) ([]domain.CatalogItem, error)

	// LikeCounts fetches the per-item like count aggregate.
	LikeCounts(ctx context.Context) (map[string]int, error)

	// LikedByUser fetches the set of item ids liked by the configured user.
	LikedByUser(ctx context.Context) (map[string]struct{}, error)

	// CommentCounts fetches the per-item comment count aggregate.
	CommentCounts(ctx context.Context) (map[string]int, error)

	// InsertItem creates a catalog row and returns it as stored remotely.
	InsertItem(ctx context.Context, item domain.CatalogItem) (domain.CatalogItem, error)

	// DeleteItem removes a catalog row.
	DeleteItem(ctx context.Context, id string) error

	// SetLiked records or clears a like by the configured user.
	SetLiked(ctx context.Context, itemID string, liked bool) error

	// IncrementViews bumps the view counter of a row by one.
	IncrementViews(ctx context.Context, id string) error

	// Subscribe opens the realtime change feed.
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is an open change feed. Events() is closed when the feed
// ends, whether by Close or by a transport failure.
type Subscription interface {
	// Events returns the channel of decoded change events.
	Events() <-chan domain.RemoteEvent

	// Close terminates the feed.
	Close() error
}
