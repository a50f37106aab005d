package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/refka/mediatray/internal/domain"
)

// Options holds configuration for the HTTP backend client.
type Options struct {
	BaseURL     string
	APIKey      string
	AccessToken string
	UserID      string
	HTTPClient  *http.Client
	MaxRetries  int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// HTTPClient is the REST implementation of Client. Requests carry the
// project key and the user token; transient failures are retried with
// exponential backoff.
type HTTPClient struct {
	baseURL     string
	apiKey      string
	accessToken string
	userID      string
	httpClient  *http.Client
	maxRetries  int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewHTTPClient creates a new HTTP backend client.
func NewHTTPClient(opts Options) *HTTPClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	maxDelay := opts.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}
	return &HTTPClient{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(opts.APIKey),
		accessToken: strings.TrimSpace(opts.AccessToken),
		userID:      strings.TrimSpace(opts.UserID),
		httpClient:  httpClient,
		maxRetries:  maxRetries,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

// mediaItemRow mirrors one catalog table row. The id and timestamp are
// omitted on insert so the backend assigns them.
type mediaItemRow struct {
	ID          string `json:"id,omitempty"`
	MediaID     string `json:"media_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Views       int    `json:"views,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (r mediaItemRow) toItem() domain.CatalogItem {
	return domain.CatalogItem{
		ID:          r.ID,
		MediaID:     r.MediaID,
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Thumbnail:   r.Thumbnail,
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,
	}
}

func rowFromItem(it domain.CatalogItem) mediaItemRow {
	return mediaItemRow{
		ID:          it.ID,
		MediaID:     it.MediaID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category.String(),
		Thumbnail:   it.Thumbnail,
		Views:       it.Views,
		CreatedAt:   it.CreatedAt,
	}
}

// likeRow mirrors one like table row.
type likeRow struct {
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id,omitempty"`
}

// commentRow mirrors one comment table row, reduced to the item reference.
type commentRow struct {
	VideoID string `json:"video_id"`
}

// Catalog fetches all catalog rows, newest first.
func (c *HTTPClient) Catalog(ctx context.Context) ([]domain.CatalogItem, error) {
	var rows []mediaItemRow
	err := c.do(ctx, http.MethodGet, "/rest/v1/media_items?select=*&order=created_at.desc", nil, nil, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	items := make([]domain.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items, nil
}

// LikeCounts fetches all like rows and aggregates them per item.
func (c *HTTPClient) LikeCounts(ctx context.Context) (map[string]int, error) {
	var rows []likeRow
	err := c.do(ctx, http.MethodGet, "/rest/v1/video_likes?select=video_id", nil, nil, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch like counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.VideoID]++
	}
	return counts, nil
}

// LikedByUser fetches the like rows of the configured user.
func (c *HTTPClient) LikedByUser(ctx context.Context) (map[string]struct{}, error) {
	if c.userID == "" {
		return map[string]struct{}{}, nil
	}
	path := "/rest/v1/video_likes?select=video_id&user_id=eq." + url.QueryEscape(c.userID)
	var rows []likeRow
	err := c.do(ctx, http.MethodGet, path, nil, nil, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch user likes: %w", err)
	}
	liked := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		liked[row.VideoID] = struct{}{}
	}
	return liked, nil
}

// CommentCounts fetches all comment rows and aggregates them per item.
func (c *HTTPClient) CommentCounts(ctx context.Context) (map[string]int, error) {
	var rows []commentRow
	err := c.do(ctx, http.MethodGet, "/rest/v1/video_comments?select=video_id", nil, nil, &rows)
	if err != nil {
		return nil, fmt.Errorf("fetch comment counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.VideoID]++
	}
	return counts, nil
}

// InsertItem creates a catalog row and returns it as stored remotely.
func (c *HTTPClient) InsertItem(ctx context.Context, item domain.CatalogItem) (domain.CatalogItem, error) {
	headers := map[string]string{"Prefer": "return=representation"}
	var rows []mediaItemRow
	err := c.do(ctx, http.MethodPost, "/rest/v1/media_items", rowFromItem(item), headers, &rows)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("insert item: %w", err)
	}
	if len(rows) == 0 {
		return domain.CatalogItem{}, fmt.Errorf("insert item: empty response")
	}
	return rows[0].toItem(), nil
}

// DeleteItem removes a catalog row.
func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	path := "/rest/v1/media_items?id=eq." + url.QueryEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// SetLiked records or clears a like by the configured user.
func (c *HTTPClient) SetLiked(ctx context.Context, itemID string, liked bool) error {
	if c.userID == "" {
		return fmt.Errorf("set liked: no user configured")
	}
	if liked {
		payload := likeRow{VideoID: itemID, UserID: c.userID}
		headers := map[string]string{"Prefer": "resolution=ignore-duplicates"}
		if err := c.do(ctx, http.MethodPost, "/rest/v1/video_likes", payload, headers, nil); err != nil {
			return fmt.Errorf("set liked: %w", err)
		}
		return nil
	}
	path := "/rest/v1/video_likes?video_id=eq." + url.QueryEscape(itemID) +
		"&user_id=eq." + url.QueryEscape(c.userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("clear liked: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter of a row by one via a stored
// procedure, so concurrent bumps from other clients are never lost.
func (c *HTTPClient) IncrementViews(ctx context.Context, id string) error {
	payload := map[string]string{"row_id": id}
	if err := c.do(ctx, http.MethodPost, "/rest/v1/rpc/increment_views", payload, nil, nil); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// Subscribe opens the realtime change feed.
func (c *HTTPClient) Subscribe(ctx context.Context) (Subscription, error) {
	return newRealtimeSubscription(ctx, c.baseURL, c.apiKey, c.accessToken)
}

// do performs one request with auth headers, retrying transient failures.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, headers map[string]string, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("backend base URL is not configured")
	}

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}
	reqURL := c.baseURL + path

	for attempt := 0; ; attempt++ {
		var body io.Reader
		if bodyBytes != nil {
			body = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return err
		}
		if c.apiKey != "" {
			req.Header.Set("apikey", c.apiKey)
		}
		token := c.accessToken
		if token == "" {
			token = c.apiKey
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, "")); waitErr != nil {
					return waitErr
				}
				continue
			}
			return err
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return readErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			if out == nil || len(respBody) == 0 {
				return nil
			}
			return json.Unmarshal(respBody, out)
		}

		if (resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599)) && attempt < c.maxRetries {
			if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, resp.Header.Get("Retry-After"))); waitErr != nil {
				return waitErr
			}
			continue
		}

		message := strings.TrimSpace(string(respBody))
		var parsed map[string]any
		if json.Unmarshal(respBody, &parsed) == nil {
			if m, ok := parsed["message"].(string); ok && strings.TrimSpace(m) != "" {
				message = m
			}
		}
		return fmt.Errorf("backend request failed: status=%d message=%s", resp.StatusCode, message)
	}
}

func (c *HTTPClient) retryDelay(attempt int, retryAfterHeader string) time.Duration {
	if retryAfter := parseRetryAfterSeconds(retryAfterHeader); retryAfter > 0 {
		if retryAfter > c.maxDelay {
			return c.maxDelay
		}
		return retryAfter
	}
	delay := c.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.maxDelay {
			return c.maxDelay
		}
	}
	if delay > c.maxDelay {
		return c.maxDelay
	}
	return delay
}

func parseRetryAfterSeconds(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
