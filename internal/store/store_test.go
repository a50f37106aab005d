package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refka/mediatray/internal/domain"
)

func item(id string) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Title: "title " + id, Views: 1, LikesCount: 1}
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := NewRecordStore()

	assert.True(t, s.Upsert(item("a")))
	assert.Equal(t, 1, s.Len())

	// Locally flip state, then replay the same id with different fields.
	liked := true
	s.Patch("a", domain.ItemPatch{Liked: &liked})

	echo := item("a")
	echo.Title = "remote echo"
	echo.Views = 99
	assert.False(t, s.Upsert(echo))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "title a", got.Title)
	assert.Equal(t, 1, got.Views)
	assert.True(t, got.Liked)
}

func TestUpsertPrependsNewItems(t *testing.T) {
	s := NewRecordStore()
	s.Upsert(item("a"))
	s.Upsert(item("b"))
	s.Upsert(item("c"))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)
	assert.Equal(t, "a", snap[2].ID)
}

func TestPatchTouchesOnlyCarriedFields(t *testing.T) {
	s := NewRecordStore()
	it := item("a")
	it.Views = 10
	it.LikesCount = 4
	it.CommentsCount = 2
	it.Liked = true
	s.Upsert(it)

	views := 11
	assert.True(t, s.Patch("a", domain.ItemPatch{Views: &views}))

	got, _ := s.Get("a")
	assert.Equal(t, 11, got.Views)
	assert.Equal(t, 4, got.LikesCount)
	assert.Equal(t, 2, got.CommentsCount)
	assert.True(t, got.Liked)
}

func TestPatchClampsCountersAtZero(t *testing.T) {
	s := NewRecordStore()
	s.Upsert(item("a"))

	likes := -5
	s.Patch("a", domain.ItemPatch{LikesCount: &likes})

	got, _ := s.Get("a")
	assert.Equal(t, 0, got.LikesCount)
}

func TestPatchUnknownID(t *testing.T) {
	s := NewRecordStore()
	views := 1
	assert.False(t, s.Patch("ghost", domain.ItemPatch{Views: &views}))
}

func TestBumpViews(t *testing.T) {
	s := NewRecordStore()
	it := item("a")
	it.Views = 5
	s.Upsert(it)

	views, ok := s.BumpViews("a", 1)
	require.True(t, ok)
	assert.Equal(t, 6, views)

	views, ok = s.BumpViews("a", -10)
	require.True(t, ok)
	assert.Equal(t, 0, views)

	_, ok = s.BumpViews("ghost", 1)
	assert.False(t, ok)
}

func TestBumpViewsDoesNotLoseInterleavedPatch(t *testing.T) {
	s := NewRecordStore()
	it := item("a")
	it.Views = 5
	s.Upsert(it)

	// A remote patch landing between a read and the bump must survive:
	// the bump works on the stored value, never on a stale copy.
	views := 40
	s.Patch("a", domain.ItemPatch{Views: &views})

	got, ok := s.BumpViews("a", 1)
	require.True(t, ok)
	assert.Equal(t, 41, got)
}

func TestRemove(t *testing.T) {
	s := NewRecordStore()
	s.Upsert(item("a"))
	s.Upsert(item("b"))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	_, ok := s.Get("a")
	assert.False(t, ok)

	// Index stays consistent after removal.
	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewRecordStore()
	s.Upsert(item("a"))

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	got, _ := s.Get("a")
	assert.Equal(t, "title a", got.Title)
}

func TestReplace(t *testing.T) {
	s := NewRecordStore()
	s.Upsert(item("old"))

	s.Replace([]domain.CatalogItem{item("x"), item("y")})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("old")
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, "x", snap[0].ID)
	assert.Equal(t, "y", snap[1].ID)
}
