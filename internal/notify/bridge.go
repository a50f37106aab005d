package notify

import (
	"github.com/refka/mediatray/internal/domain"
	"github.com/refka/mediatray/internal/logging"
)

// Bridge derives user-facing notifications from qualifying remote events.
// It appends exactly one in-app notification per observed Inserted event.
// The event's arrival is the trigger, not the store mutation, so an echo of
// an item already present still produces an entry.
type Bridge struct {
	center    *Center
	device    DeviceNotifier
	permitted bool
	logger    logging.Logger
}

// NewBridge creates a notification bridge. The device notifier may be nil;
// permitted reports whether device-level notification permission was granted.
func NewBridge(center *Center, device DeviceNotifier, permitted bool, logger logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Bridge{center: center, device: device, permitted: permitted, logger: logger}
}

// Center returns the in-app notification list the bridge writes to.
func (b *Bridge) Center() *Center {
	return b.center
}

// HandleInserted records one notification for an Inserted event and, when
// permission was granted, emits one device notification keyed by item id.
func (b *Bridge) HandleInserted(item domain.CatalogItem) domain.Notification {
	n := domain.NewItemNotification(item)
	b.center.Append(n)

	if b.permitted && b.device != nil {
		if err := b.device.Notify(item.ID, n.Title, n.Message); err != nil {
			b.logger.Warn("device notification failed", "item", item.ID, "error", err)
		}
	}

	return n
}
