package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refka/mediatray/internal/domain"
)

func frame(event, payload string) phoenixMessage {
	return phoenixMessage{
		Topic:   realtimeTopic,
		Event:   event,
		Payload: json.RawMessage(payload),
	}
}

func TestDecodeChangeInsert(t *testing.T) {
	msg := frame("INSERT", `{
		"type": "INSERT",
		"record": {
			"id": "a",
			"title": "Sunday Sermon",
			"category": "Sermons",
			"views": 2,
			"created_at": "2026-04-01T00:00:00Z"
		}
	}`)

	event, ok := decodeChange(msg)
	require.True(t, ok)
	assert.Equal(t, domain.EventInserted, event.Type)
	assert.Equal(t, "a", event.Item.ID)
	assert.Equal(t, "Sunday Sermon", event.Item.Title)
	assert.Equal(t, domain.CategorySermons, event.Item.Category)
	assert.Equal(t, 2, event.Item.Views)
}

func TestDecodeChangeUpdate(t *testing.T) {
	msg := frame("UPDATE", `{
		"type": "UPDATE",
		"record": {"id": "a", "views": 42}
	}`)

	event, ok := decodeChange(msg)
	require.True(t, ok)
	assert.Equal(t, domain.EventUpdated, event.Type)
	assert.Equal(t, "a", event.ID)

	patch, err := event.UpdatePatch()
	require.NoError(t, err)
	require.NotNil(t, patch.Views)
	assert.Equal(t, 42, *patch.Views)
}

func TestDecodeChangeSkipsProtocolFrames(t *testing.T) {
	tests := []struct {
		name string
		msg  phoenixMessage
	}{
		{name: "join reply", msg: frame("phx_reply", `{"status":"ok"}`)},
		{name: "heartbeat reply", msg: phoenixMessage{Topic: "phoenix", Event: "phx_reply", Payload: json.RawMessage(`{}`)}},
		{name: "delete", msg: frame("DELETE", `{"type":"DELETE","record":{"id":"a"}}`)},
		{name: "undecodable payload", msg: frame("INSERT", `not json`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := decodeChange(tt.msg)
			assert.False(t, ok)
		})
	}
}

func TestDecodeChangeUpdateWithoutID(t *testing.T) {
	msg := frame("UPDATE", `{"type":"UPDATE","record":{"views": 1}}`)

	event, ok := decodeChange(msg)
	require.True(t, ok)
	assert.Empty(t, event.ID)

	// The reconciler rejects it downstream.
	_, err := event.UpdatePatch()
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)
}

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		want    string
		wantErr bool
	}{
		{
			name: "https becomes wss",
			base: "https://proj.supabase.co",
			want: "wss://proj.supabase.co/realtime/v1/websocket?vsn=1.0.0&apikey=key",
		},
		{
			name: "http becomes ws",
			base: "http://localhost:54321",
			want: "ws://localhost:54321/realtime/v1/websocket?vsn=1.0.0&apikey=key",
		},
		{
			name: "trailing slash trimmed",
			base: "https://proj.supabase.co/",
			want: "wss://proj.supabase.co/realtime/v1/websocket?vsn=1.0.0&apikey=key",
		},
		{name: "empty", base: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := realtimeURL(tt.base, "key")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
