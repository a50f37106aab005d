package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationKind represents the kind of an in-app notification.
type NotificationKind string

const (
	// KindNewItem announces a catalog item that arrived via the change feed.
	KindNewItem NotificationKind = "new_item"
)

// IsValid checks if the notification kind is valid.
func (k NotificationKind) IsValid() bool {
	return k == KindNewItem
}

// String returns the string representation of the kind.
func (k NotificationKind) String() string {
	return string(k)
}

// Notification represents a single in-app notification entity.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Title     string
	Message   string
	ItemID    string
	Read      bool
	CreatedAt string
}

// NewItemNotification builds the notification announcing a new catalog item.
func NewItemNotification(item CatalogItem) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      KindNewItem,
		Title:     "New Video Added",
		Message:   fmt.Sprintf("%s has been added to the library", item.Title),
		ItemID:    item.ID,
		Read:      false,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.Read
}

// MarkRead flips the notification to read.
func (n *Notification) MarkRead() *Notification {
	n.Read = true
	return n
}

// Validate validates the notification and returns an error if invalid.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification ID cannot be empty")
	}

	if !n.Kind.IsValid() {
		return fmt.Errorf("invalid notification kind: %s", n.Kind)
	}

	if n.Message == "" {
		return fmt.Errorf("notification message cannot be empty")
	}

	if n.CreatedAt == "" {
		return fmt.Errorf("notification timestamp cannot be empty")
	}

	if _, err := time.Parse(time.RFC3339, n.CreatedAt); err != nil {
		return fmt.Errorf("invalid timestamp format: %w", err)
	}

	return nil
}
