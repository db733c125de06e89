package firebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecell/internal/domain/entity"
)

func TestBroadcaster_SeedsCurrentState(t *testing.T) {
	b := newBroadcaster()
	b.set(&entity.User{UID: "u1"})

	ch, cancel := b.watch()
	defer cancel()

	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UID)
}

func TestBroadcaster_EmitsStateChanges(t *testing.T) {
	b := newBroadcaster()

	ch, cancel := b.watch()
	defer cancel()

	assert.Nil(t, <-ch) // signed-out seed

	b.set(&entity.User{UID: "u1"})
	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UID)

	b.set(nil)
	assert.Nil(t, <-ch)
}

func TestBroadcaster_SlowConsumerSeesLatest(t *testing.T) {
	b := newBroadcaster()

	ch, cancel := b.watch()
	defer cancel()

	// Nobody reads while three states go by; only the last survives.
	b.set(&entity.User{UID: "u1"})
	b.set(&entity.User{UID: "u2"})
	b.set(&entity.User{UID: "u3"})

	got := <-ch
	require.NotNil(t, got)
	assert.Equal(t, "u3", got.UID)
}

func TestBroadcaster_CancelClosesChannel(t *testing.T) {
	b := newBroadcaster()

	ch, cancel := b.watch()
	cancel()
	cancel() // second cancel is a no-op

	_, ok := <-ch
	assert.False(t, ok)

	// Emitting after cancel must not panic.
	b.set(&entity.User{UID: "u1"})
}

func TestBroadcaster_IndependentSubscribers(t *testing.T) {
	b := newBroadcaster()

	first, cancelFirst := b.watch()
	second, cancelSecond := b.watch()
	defer cancelSecond()

	<-first
	<-second

	cancelFirst()

	b.set(&entity.User{UID: "u1"})
	got := <-second
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UID)
}
