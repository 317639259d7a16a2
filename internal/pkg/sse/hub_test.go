package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesTeamSubscribers(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("team-1")
	defer cleanup()
	other, otherCleanup := hub.Subscribe("team-2")
	defer otherCleanup()

	hub.Publish("team-1", Event{TeamID: "team-1", Event: EventSessionUpdated, Data: "s1"})

	select {
	case got := <-ch:
		assert.Equal(t, EventSessionUpdated, got.Event)
	default:
		t.Fatal("expected event for team-1 subscriber")
	}

	select {
	case <-other:
		t.Fatal("team-2 subscriber must not receive team-1 events")
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("team-1")
	require.Equal(t, 1, hub.SubscriberCount("team-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("team-1"))

	// Publishing to an empty team is a no-op.
	hub.Publish("team-1", Event{TeamID: "team-1", Event: EventSessionClosed})
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("team-1")
	defer cleanup()

	// Overfill the buffered channel; extra events are dropped.
	for i := 0; i < 64; i++ {
		hub.Publish("team-1", Event{TeamID: "team-1", Event: EventPresenceChanged})
	}

	assert.Equal(t, cap(ch), len(ch))
}
