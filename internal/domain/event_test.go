package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFields(pairs map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(pairs))
	for k, v := range pairs {
		out[k] = json.RawMessage(v)
	}
	return out
}

func TestUpdatePatch(t *testing.T) {
	tests := []struct {
		name      string
		event     RemoteEvent
		wantViews int
		wantErr   error
	}{
		{
			name: "views only is safe",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"views": "7"}),
			},
			wantViews: 7,
		},
		{
			name: "id alongside views is tolerated",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"id": `"a"`, "views": "3"}),
			},
			wantViews: 3,
		},
		{
			name: "locally owned field rejects the whole event",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"views": "7", "liked": "true"}),
			},
			wantErr: ErrUnsafeUpdate,
		},
		{
			name: "unknown field rejects the whole event",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"title": `"hacked"`}),
			},
			wantErr: ErrUnsafeUpdate,
		},
		{
			name: "missing id is malformed",
			event: RemoteEvent{
				Type:   EventUpdated,
				Fields: rawFields(map[string]string{"views": "7"}),
			},
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "empty payload is malformed",
			event:   RemoteEvent{Type: EventUpdated, ID: "a"},
			wantErr: ErrMalformedEvent,
		},
		{
			name: "non-numeric views is malformed",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"views": `"many"`}),
			},
			wantErr: ErrMalformedEvent,
		},
		{
			name: "negative views is malformed",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"views": "-2"}),
			},
			wantErr: ErrMalformedEvent,
		},
		{
			name: "insert event is not a patch source",
			event: RemoteEvent{
				Type: EventInserted, ID: "a",
				Fields: rawFields(map[string]string{"views": "7"}),
			},
			wantErr: ErrMalformedEvent,
		},
		{
			name: "id-only payload has nothing to apply",
			event: RemoteEvent{
				Type: EventUpdated, ID: "a",
				Fields: rawFields(map[string]string{"id": `"a"`}),
			},
			wantErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := tt.event.UpdatePatch()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, patch.Views)
			assert.Equal(t, tt.wantViews, *patch.Views)
			assert.Nil(t, patch.Liked)
			assert.Nil(t, patch.LikesCount)
			assert.Nil(t, patch.CommentsCount)
		})
	}
}
