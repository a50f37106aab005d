package engine

import (
	"context"
	"fmt"

	"github.com/refka/mediatray/internal/domain"
)

// Play bumps the item's view counter locally and persists the bump in the
// background. The local increment stands even when persistence fails; a
// remote update event later settles the authoritative count. Returns false
// when the item is unknown.
func (e *Engine) Play(id string) bool {
	if _, ok := e.store.BumpViews(id, 1); !ok {
		return false
	}

	e.persist("increment_views", func(ctx context.Context) error {
		return e.backend.IncrementViews(ctx, id)
	})
	return true
}

// ToggleLike flips the item's liked state locally, adjusting the like
// counter with a floor of zero, and persists the change in the background.
// The flip is never rolled back. Returns the new liked state.
func (e *Engine) ToggleLike(id string) (liked bool, ok bool) {
	it, found := e.store.Get(id)
	if !found {
		return false, false
	}

	liked = !it.Liked
	likes := it.LikesCount
	if liked {
		likes++
	} else {
		likes--
	}
	if likes < 0 {
		likes = 0
	}
	e.store.Patch(id, domain.ItemPatch{Liked: &liked, LikesCount: &likes})

	e.persist("set_liked", func(ctx context.Context) error {
		return e.backend.SetLiked(ctx, id, liked)
	})
	return liked, true
}

// ToggleFavorite flips local favorite membership for the item. Favorites
// live entirely on this device; no backend write is involved.
func (e *Engine) ToggleFavorite(id string) (favorited bool, err error) {
	if e.favs == nil {
		return false, fmt.Errorf("engine: favorites are not available")
	}
	favorited, err = e.favs.Toggle(id)
	if err != nil {
		return false, err
	}

	// Membership in the favorites view changed under the pager.
	if e.Section() == domain.SectionFavorites {
		e.resetPage()
	}
	return favorited, nil
}

// AddItem creates the item remotely and inserts the stored row into the
// local catalog only after the backend confirms it. The error is surfaced
// to the caller; nothing is inserted locally on failure. The id is assigned
// by the backend and may be left empty on the input.
func (e *Engine) AddItem(ctx context.Context, item domain.CatalogItem) (domain.CatalogItem, error) {
	if item.Title == "" {
		return domain.CatalogItem{}, fmt.Errorf("engine: item title cannot be empty")
	}
	if item.Category != "" && !item.Category.IsValid() {
		return domain.CatalogItem{}, fmt.Errorf("engine: invalid category: %s", item.Category)
	}

	stored, err := e.backend.InsertItem(ctx, item)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("engine: add item: %w", err)
	}

	if e.store.Upsert(stored) {
		e.resetPage()
	}
	e.logger.Info("item added", "item", stored.ID, "title", stored.Title)
	return stored, nil
}

// DeleteItem removes the item remotely and drops it from the local catalog
// only after the backend confirms the delete.
func (e *Engine) DeleteItem(ctx context.Context, id string) error {
	if _, ok := e.store.Get(id); !ok {
		return fmt.Errorf("engine: unknown item: %s", id)
	}

	if err := e.backend.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("engine: delete item: %w", err)
	}

	if e.store.Remove(id) {
		e.resetPage()
	}

	e.mu.Lock()
	if e.detailID == id {
		e.detailID = ""
	}
	e.mu.Unlock()

	e.logger.Info("item deleted", "item", id)
	return nil
}
