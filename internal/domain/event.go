package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedEvent marks a remote event that cannot be interpreted.
	ErrMalformedEvent = errors.New("malformed remote event")

	// ErrUnsafeUpdate marks an update event touching fields the client owns.
	ErrUnsafeUpdate = errors.New("update event touches locally-owned fields")
)

// EventType classifies a remote change-feed event.
type EventType string

const (
	EventInserted EventType = "INSERT"
	EventUpdated  EventType = "UPDATE"
)

// IsValid checks if the event type is valid.
func (t EventType) IsValid() bool {
	switch t {
	case EventInserted, EventUpdated:
		return true
	default:
		return false
	}
}

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// RemoteEvent is one change-feed event as received from the backend.
// Inserted events carry the full item; updated events carry the row id and
// the raw changed fields.
type RemoteEvent struct {
	Type   EventType
	Item   CatalogItem
	ID     string
	Fields map[string]json.RawMessage
}

// safeUpdateFields lists the fields a remote update may touch. Everything
// else (liked state, like counts) is owned by this client's own mutations
// and must never be clobbered by the feed.
var safeUpdateFields = map[string]bool{
	"views": true,
}

// UpdatePatch interprets an updated event into a field-isolated patch.
// Returns ErrMalformedEvent when the event has no usable id or payload, and
// ErrUnsafeUpdate when the payload touches fields outside the safe set.
func (e *RemoteEvent) UpdatePatch() (ItemPatch, error) {
	if e.Type != EventUpdated {
		return ItemPatch{}, fmt.Errorf("%w: not an update event", ErrMalformedEvent)
	}
	if e.ID == "" {
		return ItemPatch{}, fmt.Errorf("%w: missing row id", ErrMalformedEvent)
	}
	if len(e.Fields) == 0 {
		return ItemPatch{}, fmt.Errorf("%w: empty payload", ErrMalformedEvent)
	}

	for field := range e.Fields {
		if field == "id" {
			continue
		}
		if !safeUpdateFields[field] {
			return ItemPatch{}, fmt.Errorf("%w: field %q", ErrUnsafeUpdate, field)
		}
	}

	var patch ItemPatch
	if raw, ok := e.Fields["views"]; ok {
		var views int
		if err := json.Unmarshal(raw, &views); err != nil {
			return ItemPatch{}, fmt.Errorf("%w: views: %v", ErrMalformedEvent, err)
		}
		if views < 0 {
			return ItemPatch{}, fmt.Errorf("%w: negative views", ErrMalformedEvent)
		}
		patch.Views = &views
	}

	if patch.IsZero() {
		return ItemPatch{}, fmt.Errorf("%w: no applicable fields", ErrMalformedEvent)
	}
	return patch, nil
}
