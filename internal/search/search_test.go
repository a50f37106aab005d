package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refka/mediatray/internal/domain"
)

func sampleItem() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          "abc-123",
		Title:       "Sunday Sermon",
		Description: "Morning service recording",
		Category:    domain.CategorySermons,
	}
}

func TestSubstringMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches everything", query: "", want: true},
		{name: "title substring", query: "Sunday", want: true},
		{name: "case insensitive by default", query: "sunday", want: true},
		{name: "description substring", query: "recording", want: true},
		{name: "no match", query: "christmas", want: false},
		{name: "category not searched by default", query: "Sermons", want: false},
	}

	p := NewSubstringProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Match(sampleItem(), tt.query))
		})
	}
}

func TestSubstringCaseSensitive(t *testing.T) {
	p := NewSubstringProvider(WithCaseInsensitive(false))

	assert.True(t, p.Match(sampleItem(), "Sunday"))
	assert.False(t, p.Match(sampleItem(), "sunday"))
}

func TestSubstringCustomFields(t *testing.T) {
	p := NewSubstringProvider(WithFields([]string{"category", "id"}))

	assert.True(t, p.Match(sampleItem(), "sermons"))
	assert.True(t, p.Match(sampleItem(), "abc-123"))
	assert.False(t, p.Match(sampleItem(), "Sunday"))
}

func TestSubstringUnknownFieldIgnored(t *testing.T) {
	p := NewSubstringProvider(WithFields([]string{"nope"}))
	assert.False(t, p.Match(sampleItem(), "Sunday"))
}

func TestRegexMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query matches everything", query: "", want: true},
		{name: "anchored title", query: "^Sunday", want: true},
		{name: "case insensitive by default", query: "^sunday", want: true},
		{name: "alternation", query: "sermon|hymn", want: true},
		{name: "no match", query: "^Sermon", want: false},
		{name: "invalid pattern matches nothing", query: "[unclosed", want: false},
	}

	p := NewRegexProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Match(sampleItem(), tt.query))
		})
	}
}

func TestRegexCaseSensitive(t *testing.T) {
	p := NewRegexProvider(WithCaseInsensitive(false))

	assert.True(t, p.Match(sampleItem(), "Sunday"))
	assert.False(t, p.Match(sampleItem(), "sunday"))
}

func TestRegexCacheReuse(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)

	first, err := p.getRegex("sermon")
	require.NoError(t, err)
	second, err := p.getRegex("sermon")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestProviderNames(t *testing.T) {
	assert.Equal(t, "substring", NewSubstringProvider().Name())
	assert.Equal(t, "regex", NewRegexProvider().Name())
}
