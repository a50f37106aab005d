package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refka/mediatray/internal/backend"
	"github.com/refka/mediatray/internal/domain"
)

func TestPrintEventInserted(t *testing.T) {
	var buf bytes.Buffer
	printEvent(domain.RemoteEvent{
		Type: domain.EventInserted,
		Item: domain.CatalogItem{ID: "a", Title: "Sunday Sermon", Category: domain.CategorySermons},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "[inserted]")
	assert.Contains(t, out, "Sunday Sermon")
	assert.Contains(t, out, "(Sermons)")
}

func TestPrintEventUpdatedSortsFields(t *testing.T) {
	var buf bytes.Buffer
	printEvent(domain.RemoteEvent{
		Type: domain.EventUpdated,
		ID:   "a",
		Fields: map[string]json.RawMessage{
			"views": json.RawMessage("2"),
			"id":    json.RawMessage(`"a"`),
		},
	}, &buf)

	assert.Contains(t, buf.String(), "fields=[id views]")
}

func TestFollowStreamsUntilFeedCloses(t *testing.T) {
	sub := backend.NewMockSubscription()
	client := &backend.MockClient{
		SubscribeFunc: func(ctx context.Context) (backend.Subscription, error) {
			return sub, nil
		},
	}

	sub.Emit(domain.RemoteEvent{
		Type: domain.EventInserted,
		Item: domain.CatalogItem{ID: "a", Title: "First"},
	})
	require.NoError(t, sub.Close())

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- Follow(context.Background(), client, &buf) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not return after the feed closed")
	}

	out := buf.String()
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Change feed closed")
}

func TestFollowStopsOnContextCancel(t *testing.T) {
	client := &backend.MockClient{}
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- Follow(ctx, client, &buf) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not return after cancel")
	}
	assert.Contains(t, buf.String(), "Stopping...")
}
