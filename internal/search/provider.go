// Package search provides a unified search abstraction for matching catalog
// items. It supports multiple strategies (substring, regex) through a common
// Provider interface shared by the CLI and the panel.
package search

import (
	"github.com/refka/mediatray/internal/domain"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex, etc.)
// to match catalog items against search queries.
type Provider interface {
	// Match returns true if the item matches the search query.
	Match(item domain.CatalogItem, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: title and description)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{"title", "description"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "title", "description", "category", "id".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue extracts a named field from an item. Unknown fields yield "".
func fieldValue(item domain.CatalogItem, field string) string {
	switch field {
	case "title":
		return item.Title
	case "description":
		return item.Description
	case "category":
		return item.Category.String()
	case "id":
		return item.ID
	default:
		return ""
	}
}
