package notify

import (
	"strings"

	"github.com/gen2brain/beeep"
)

// DeviceNotifier sends a notification through the device platform. The key
// identifies the subject (the catalog item id); platforms that support
// keyed notifications use it to deduplicate popups for the same subject.
// That dedup belongs to the platform, not to this engine.
type DeviceNotifier interface {
	Notify(key, title, message string) error
}

// BeeepNotifier delivers device notifications via the OS notification
// service (notify-send/D-Bus, toast, notification center).
type BeeepNotifier struct{}

// NewBeeepNotifier creates a device notifier backed by beeep.
func NewBeeepNotifier(appName string) *BeeepNotifier {
	if strings.TrimSpace(appName) != "" {
		beeep.AppName = appName
	}
	return &BeeepNotifier{}
}

// Notify sends one device notification.
func (b *BeeepNotifier) Notify(key, title, message string) error {
	_ = key // keyed dedup is up to the platform backend
	return beeep.Notify(title, truncateMessage(message, 100), "")
}

func truncateMessage(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
