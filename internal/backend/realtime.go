package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/refka/mediatray/internal/domain"
	"github.com/refka/mediatray/internal/logging"
)

const (
	realtimeTopic     = "realtime:public:media_items"
	heartbeatInterval = 30 * time.Second
)

// phoenixMessage is one frame of the realtime channel protocol.
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

// changePayload is the payload of an INSERT or UPDATE frame. Record holds
// the inserted row or, for updates, the changed columns.
type changePayload struct {
	Type   string                     `json:"type"`
	Record map[string]json.RawMessage `json:"record"`
}

// realtimeSubscription consumes the websocket change feed and decodes frames
// into remote events. The events channel is closed when the feed ends.
type realtimeSubscription struct {
	conn   *websocket.Conn
	events chan domain.RemoteEvent
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// newRealtimeSubscription dials the realtime endpoint and joins the catalog
// topic. The subscription lives until Close or until ctx is canceled.
func newRealtimeSubscription(ctx context.Context, baseURL, apiKey, accessToken string) (Subscription, error) {
	wsURL, err := realtimeURL(baseURL, apiKey)
	if err != nil {
		return nil, err
	}

	dialCtx, dialCancel := context.WithTimeout(ctx, 15*time.Second)
	defer dialCancel()

	conn, _, err := websocket.Dial(dialCtx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime feed: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	join := phoenixMessage{
		Topic:   realtimeTopic,
		Event:   "phx_join",
		Payload: joinPayload(accessToken),
		Ref:     "1",
	}
	if err := wsjson.Write(runCtx, conn, join); err != nil {
		cancel()
		conn.Close(websocket.StatusInternalError, "join failed")
		return nil, fmt.Errorf("join realtime topic: %w", err)
	}

	sub := &realtimeSubscription{
		conn:   conn,
		events: make(chan domain.RemoteEvent, 16),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go sub.heartbeatLoop(runCtx)
	go sub.readLoop(runCtx)
	return sub, nil
}

// realtimeURL converts the REST base URL into the websocket endpoint.
func realtimeURL(baseURL, apiKey string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return "", fmt.Errorf("backend base URL is not configured")
	}
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/realtime/v1/websocket?vsn=1.0.0&apikey=" + apiKey, nil
}

func joinPayload(accessToken string) json.RawMessage {
	payload := map[string]string{}
	if accessToken != "" {
		payload["access_token"] = accessToken
	}
	data, _ := json.Marshal(payload)
	return data
}

// Events returns the channel of decoded change events.
func (s *realtimeSubscription) Events() <-chan domain.RemoteEvent {
	return s.events
}

// Close terminates the feed and waits for the read loop to finish.
func (s *realtimeSubscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.conn.Close(websocket.StatusNormalClosure, "closing")
		<-s.done
	})
	return s.closeErr
}

// heartbeatLoop keeps the channel alive.
func (s *realtimeSubscription) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			beat := phoenixMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
			}
			if err := wsjson.Write(ctx, s.conn, beat); err != nil {
				logging.Debug("realtime heartbeat failed", "error", err)
				return
			}
		}
	}
}

// readLoop decodes incoming frames until the connection ends.
func (s *realtimeSubscription) readLoop(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		var msg phoenixMessage
		if err := wsjson.Read(ctx, s.conn, &msg); err != nil {
			if ctx.Err() == nil {
				logging.Warn("realtime feed closed", "error", err)
			}
			return
		}
		event, ok := decodeChange(msg)
		if !ok {
			continue
		}
		select {
		case s.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

// decodeChange converts a channel frame into a remote event. Non-change
// frames (join replies, heartbeats) are skipped.
func decodeChange(msg phoenixMessage) (domain.RemoteEvent, bool) {
	eventType := domain.EventType(msg.Event)
	if !eventType.IsValid() {
		return domain.RemoteEvent{}, false
	}

	var payload changePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		logging.Debug("undecodable realtime payload", "error", err)
		return domain.RemoteEvent{}, false
	}

	switch eventType {
	case domain.EventInserted:
		record, err := json.Marshal(payload.Record)
		if err != nil {
			return domain.RemoteEvent{}, false
		}
		var row mediaItemRow
		if err := json.Unmarshal(record, &row); err != nil {
			return domain.RemoteEvent{}, false
		}
		return domain.RemoteEvent{Type: domain.EventInserted, Item: row.toItem()}, true

	case domain.EventUpdated:
		id := ""
		if raw, ok := payload.Record["id"]; ok {
			_ = json.Unmarshal(raw, &id)
		}
		return domain.RemoteEvent{Type: domain.EventUpdated, ID: id, Fields: payload.Record}, true
	}
	return domain.RemoteEvent{}, false
}
