package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refka/mediatray/internal/domain"
)

func newTestClient(srv *httptest.Server) *HTTPClient {
	return NewHTTPClient(Options{
		BaseURL:     srv.URL,
		APIKey:      "anon-key",
		AccessToken: "user-token",
		UserID:      "user-1",
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	})
}

func TestCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/media_items", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		fmt.Fprint(w, `[
			{"id":"a","title":"First","category":"Sermons","views":3,"created_at":"2026-02-01T00:00:00Z"},
			{"id":"b","title":"Second","views":0}
		]`)
	}))
	defer srv.Close()

	items, err := newTestClient(srv).Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, domain.CategorySermons, items[0].Category)
	assert.Equal(t, 3, items[0].Views)
	assert.Equal(t, "Second", items[1].Title)
}

func TestAuthorizationFallsBackToAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewHTTPClient(Options{BaseURL: srv.URL, APIKey: "anon-key"})
	_, err := client.Catalog(context.Background())
	require.NoError(t, err)
}

func TestLikeCountsAggregates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/video_likes", r.URL.Path)
		assert.Equal(t, "video_id", r.URL.Query().Get("select"))
		fmt.Fprint(w, `[{"video_id":"a"},{"video_id":"a"},{"video_id":"b"}]`)
	}))
	defer srv.Close()

	counts, err := newTestClient(srv).LikeCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, counts)
}

func TestLikedByUserFiltersByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		fmt.Fprint(w, `[{"video_id":"a"}]`)
	}))
	defer srv.Close()

	liked, err := newTestClient(srv).LikedByUser(context.Background())
	require.NoError(t, err)
	_, ok := liked["a"]
	assert.True(t, ok)
}

func TestLikedByUserWithoutUser(t *testing.T) {
	client := NewHTTPClient(Options{BaseURL: "http://unused.invalid"})
	liked, err := client.LikedByUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestInsertItemReturnsStoredRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var row map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
		assert.Equal(t, "Fresh", row["title"])
		// The backend assigns the id; the request must not carry one.
		_, hasID := row["id"]
		assert.False(t, hasID)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `[{"id":"assigned","title":"Fresh","created_at":"2026-03-01T00:00:00Z"}]`)
	}))
	defer srv.Close()

	stored, err := newTestClient(srv).InsertItem(context.Background(), domain.CatalogItem{Title: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, "assigned", stored.ID)
	assert.Equal(t, "2026-03-01T00:00:00Z", stored.CreatedAt)
}

func TestInsertItemEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).InsertItem(context.Background(), domain.CatalogItem{Title: "x"})
	assert.ErrorContains(t, err, "empty response")
}

func TestDeleteItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.a", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv).DeleteItem(context.Background(), "a"))
}

func TestSetLiked(t *testing.T) {
	var gotMethod, gotPrefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPrefer = r.Header.Get("Prefer")
		if r.Method == http.MethodDelete {
			assert.Equal(t, "eq.a", r.URL.Query().Get("video_id"))
			assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	require.NoError(t, client.SetLiked(context.Background(), "a", true))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "resolution=ignore-duplicates", gotPrefer)

	require.NoError(t, client.SetLiked(context.Background(), "a", false))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSetLikedRequiresUser(t *testing.T) {
	client := NewHTTPClient(Options{BaseURL: "http://unused.invalid"})
	assert.Error(t, client.SetLiked(context.Background(), "a", true))
}

func TestIncrementViewsCallsProcedure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/increment_views", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "a", payload["row_id"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv).IncrementViews(context.Background(), "a"))
}

func TestRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"invalid column"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Catalog(context.Background())
	assert.ErrorContains(t, err, "invalid column")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestRetryBudgetExhausted(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Catalog(context.Background())
	assert.Error(t, err)
	// Initial attempt plus three retries.
	assert.Equal(t, int32(4), attempts.Load())
}

func TestParseRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "empty", header: "", want: 0},
		{name: "seconds", header: "2", want: 2 * time.Second},
		{name: "padded", header: " 1 ", want: time.Second},
		{name: "http date unsupported", header: "Wed, 21 Oct 2026 07:28:00 GMT", want: 0},
		{name: "negative", header: "-1", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfterSeconds(tt.header))
		})
	}
}

func TestRetryDelayBackoff(t *testing.T) {
	c := NewHTTPClient(Options{
		BaseURL:   "http://unused.invalid",
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  time.Second,
	})

	assert.Equal(t, 100*time.Millisecond, c.retryDelay(1, ""))
	assert.Equal(t, 200*time.Millisecond, c.retryDelay(2, ""))
	assert.Equal(t, 400*time.Millisecond, c.retryDelay(3, ""))
	assert.Equal(t, time.Second, c.retryDelay(10, ""))

	// Retry-After wins over backoff, capped at the maximum.
	assert.Equal(t, time.Second, c.retryDelay(1, "1"))
	assert.Equal(t, time.Second, c.retryDelay(1, "30"))
}

func TestRequiresBaseURL(t *testing.T) {
	client := NewHTTPClient(Options{})
	_, err := client.Catalog(context.Background())
	assert.ErrorContains(t, err, "not configured")
}
