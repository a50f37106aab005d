package engine

import (
	"fmt"

	"github.com/refka/mediatray/internal/backend"
	"github.com/refka/mediatray/internal/domain"
)

// consume drains the change feed until it closes. Events are applied one
// at a time; a bad event is logged and skipped, never halting the loop.
func (e *Engine) consume(sub backend.Subscription) {
	defer close(e.loopDone)

	for event := range sub.Events() {
		if err := e.applyEvent(event); err != nil {
			e.logger.Warn("event dropped", "type", event.Type.String(), "error", err)
		}
	}
	e.logger.Debug("change feed ended")
}

// applyEvent reconciles one remote event into the store.
//
// Inserted events always produce a notification, even when the row is
// already present locally (the echo of this client's own add): the event's
// arrival is the trigger. The upsert itself is idempotent, so the echo
// never clobbers local state.
//
// Updated events are reduced to a field-isolated patch restricted to
// remotely-owned fields; anything else is rejected before it can touch the
// store.
func (e *Engine) applyEvent(event domain.RemoteEvent) error {
	switch event.Type {
	case domain.EventInserted:
		if event.Item.ID == "" {
			return fmt.Errorf("%w: inserted item without id", domain.ErrMalformedEvent)
		}

		e.bridge.HandleInserted(event.Item)

		if e.store.Upsert(event.Item) {
			e.resetPage()
			e.logger.Info("remote item inserted", "item", event.Item.ID)
		} else {
			e.logger.Debug("insert echo ignored", "item", event.Item.ID)
		}
		return nil

	case domain.EventUpdated:
		patch, err := event.UpdatePatch()
		if err != nil {
			return err
		}
		if !e.store.Patch(event.ID, patch) {
			e.logger.Debug("update for unknown item", "item", event.ID)
			return nil
		}
		e.logger.Debug("remote item updated", "item", event.ID)
		return nil

	default:
		return fmt.Errorf("%w: unknown event type %q", domain.ErrMalformedEvent, event.Type)
	}
}
