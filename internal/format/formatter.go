// Package format provides output formatting functionality for CLI commands.
// It includes formatters for catalog items and in-app notifications.
package format

import (
	"io"

	"github.com/refka/mediatray/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatItems formats a slice of catalog items and writes to the writer.
	FormatItems(items []domain.CatalogItem, writer io.Writer) error

	// FormatNotifications formats a slice of notifications and writes to the writer.
	FormatNotifications(notifications []domain.Notification, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one line per entry with id, category, and title.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays entries in a table format with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays only titles or messages, one per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays entries in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		// Default to simple formatter for unknown types
		return NewSimpleFormatter()
	}
}

// GetFormatter returns the formatter for a format string, falling back to
// the simple formatter for unknown values.
func GetFormatter(format string) Formatter {
	formatterType := FormatterType(format)
	for _, ft := range []FormatterType{
		FormatterTypeSimple,
		FormatterTypeTable,
		FormatterTypeCompact,
		FormatterTypeJSON,
	} {
		if ft == formatterType {
			return NewFormatter(formatterType)
		}
	}
	return NewSimpleFormatter()
}
