package notify

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, bufferSize int) *Hub {
	t.Helper()
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), bufferSize)
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	h := newTestHub(t, 4)

	first, unsubFirst := h.Subscribe()
	defer unsubFirst()
	second, unsubSecond := h.Subscribe()
	defer unsubSecond()

	assert.Equal(t, 2, h.Subscribers())

	h.Broadcast("refresh-posts")

	ev1 := receive(t, first)
	ev2 := receive(t, second)
	assert.Equal(t, "refresh-posts", ev1.Name)
	assert.Equal(t, ev1, ev2)
	assert.Equal(t, uint64(1), ev1.ID)
}

func TestHub_EachBroadcastDeliveredOnce(t *testing.T) {
	h := newTestHub(t, 8)

	ch, unsub := h.Subscribe()
	defer unsub()

	h.Broadcast("refresh-posts")
	h.Broadcast("refresh-posts")

	assert.Equal(t, uint64(1), receive(t, ch).ID)
	assert.Equal(t, uint64(2), receive(t, ch).ID)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := newTestHub(t, 1)

	ch, unsub := h.Subscribe()
	unsub()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := newTestHub(t, 1)

	slow, unsubSlow := h.Subscribe()
	defer unsubSlow()
	fast, unsubFast := h.Subscribe()
	defer unsubFast()

	h.Broadcast("refresh-posts")
	receive(t, fast)
	h.Broadcast("refresh-posts")
	receive(t, fast)

	// slow never read; only the first event fit in its buffer
	assert.Equal(t, uint64(1), receive(t, slow).ID)
}

func TestHub_StopClosesSubscribers(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), 1)
	h.Start()

	ch, unsub := h.Subscribe()
	h.Stop()
	h.Stop()

	_, ok := <-ch
	assert.False(t, ok)
	unsub()

	late, _ := h.Subscribe()
	_, ok = <-late
	assert.False(t, ok)

	assert.NotPanics(t, func() { h.Broadcast("refresh-posts") })
}

func TestHub_ConcurrentBroadcast(t *testing.T) {
	h := newTestHub(t, 64)

	ch, unsub := h.Subscribe()
	defer unsub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Broadcast("refresh-posts")
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for i := 0; i < 20; i++ {
		ev := receive(t, ch)
		assert.False(t, seen[ev.ID], "duplicate event %d", ev.ID)
		seen[ev.ID] = true
	}
}
