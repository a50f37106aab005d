// Package notify owns the in-session notification list and the bridge that
// turns qualifying remote events into in-app and device notifications.
package notify

import (
	"sync"

	"github.com/refka/mediatray/internal/domain"
)

// Center holds the in-session notification list. The list is append-only:
// entries are never deleted, only their read flag changes.
type Center struct {
	mu   sync.RWMutex
	list []domain.Notification
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{list: make([]domain.Notification, 0)}
}

// Append adds a notification at the front of the list. No dedup is
// performed: each observed event yields one entry.
func (c *Center) Append(n domain.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append([]domain.Notification{n}, c.list...)
}

// List returns a copy of all notifications, newest first.
func (c *Center) List() []domain.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Notification, len(c.list))
	copy(out, c.list)
	return out
}

// Get returns the notification with the given id.
func (c *Center) Get(id string) (domain.Notification, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, n := range c.list {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

// Len returns the number of notifications.
func (c *Center) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.list)
}

// UnreadCount returns how many notifications are unread.
func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, n := range c.list {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead flips one notification to read. Returns false when the id is
// unknown.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.list {
		if c.list[i].ID == id {
			c.list[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flips every notification to read and returns how many changed.
func (c *Center) MarkAllRead() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := 0
	for i := range c.list {
		if !c.list[i].Read {
			c.list[i].Read = true
			changed++
		}
	}
	return changed
}
