package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/domain"
)

// SimpleFormatter formats entries in a simple format with id, category/kind,
// and title or message.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatItems formats catalog items in simple format.
func (f *SimpleFormatter) FormatItems(items []domain.CatalogItem, writer io.Writer) error {
	for _, it := range items {
		liked := " "
		if it.Liked {
			liked = "*"
		}
		title := truncate(it.Title, 50)
		_, err := fmt.Fprintf(writer, "%-12s  %-12s  %s%s (%d views)\n", shortID(it.ID), it.Category, liked, title, it.Views)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatNotifications formats notifications in simple format.
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		read := " "
		if !n.Read {
			read = "!"
		}
		_, err := fmt.Fprintf(writer, "%-12s  %-20s  %s%s\n", shortID(n.ID), n.CreatedAt, read, truncate(n.Message, 60))
		if err != nil {
			return err
		}
	}
	return nil
}

// TableFormatter formats entries in a table format with headers.
type TableFormatter struct{}

// NewTableFormatter creates a new TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatItems formats catalog items in table format.
func (f *TableFormatter) FormatItems(items []domain.CatalogItem, writer io.Writer) error {
	if len(items) == 0 {
		return nil
	}
	headerColor := colors.Blue
	reset := colors.Reset
	_, err := fmt.Fprintf(writer, "%sID            CATEGORY      VIEWS   LIKES   TITLE%s\n", headerColor, reset)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer, "%s------------  ------------  ------  ------  --------------------------------%s\n", headerColor, reset)
	if err != nil {
		return err
	}
	for _, it := range items {
		_, err := fmt.Fprintf(writer, "%-12s  %-12s  %6d  %6d  %s\n", shortID(it.ID), it.Category, it.Views, it.LikesCount, truncate(it.Title, 32))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatNotifications formats notifications in table format.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}
	headerColor := colors.Blue
	reset := colors.Reset
	_, err := fmt.Fprintf(writer, "%sID            DATE                 READ  MESSAGE%s\n", headerColor, reset)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer, "%s------------  -------------------  ----  --------------------------------%s\n", headerColor, reset)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		read := "no"
		if n.Read {
			read = "yes"
		}
		_, err := fmt.Fprintf(writer, "%-12s  %-19s  %-4s  %s\n", shortID(n.ID), truncate(n.CreatedAt, 19), read, truncate(n.Message, 32))
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter formats entries with title or message only.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatItems formats catalog items in compact format.
func (f *CompactFormatter) FormatItems(items []domain.CatalogItem, writer io.Writer) error {
	for _, it := range items {
		_, err := fmt.Fprintln(writer, truncate(it.Title, 60))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatNotifications formats notifications in compact format.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		_, err := fmt.Fprintln(writer, truncate(n.Message, 60))
		if err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats entries as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatItems formats catalog items as JSON.
func (f *JSONFormatter) FormatItems(items []domain.CatalogItem, writer io.Writer) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items to JSON: %w", err)
	}
	_, err = writer.Write(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// FormatNotifications formats notifications as JSON.
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	data, err := json.MarshalIndent(notifications, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notifications to JSON: %w", err)
	}
	_, err = writer.Write(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// truncate truncates a string for display, adding "..." if truncated. The
// cut lands on rune boundaries so multibyte text stays valid UTF-8.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// shortID shortens an id for column display.
func shortID(id string) string {
	if idx := strings.IndexByte(id, '-'); idx > 0 && idx <= 12 {
		return id[:idx]
	}
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
