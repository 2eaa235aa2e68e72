package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNotifier_BroadcastsToRegisteredClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	projectID := uuid.New()
	NewNotifier(hub).Publish(Event{Type: EventProjectPosted, ProjectID: projectID, Title: "Logo"})

	select {
	case msg := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, EventProjectPosted, evt.Type)
		assert.Equal(t, projectID, evt.ProjectID)
		assert.NotEmpty(t, evt.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	cancel()
	<-done
	_, open := <-c.send
	assert.False(t, open)
}

func TestNotifier_NilSafe(t *testing.T) {
	var n *Notifier
	n.Publish(Event{Type: EventProjectClosed})
	NewNotifier(nil).Publish(Event{Type: EventProjectClosed})
}
