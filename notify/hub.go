package notify

import (
	"log/slog"
	"sync"
)

// Event is a change notification delivered to subscribers.
type Event struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Hub fans change notifications out to every current subscriber.
// Delivery is at most once: a subscriber whose buffer is full misses the event.
type Hub struct {
	logger      *slog.Logger
	bufferSize  int
	events      chan Event
	subscribers map[uint64]chan Event
	nextSubID   uint64
	nextEventID uint64
	running     bool
	stopped     bool
	mu          sync.Mutex
	stopChan    chan struct{}
	done        chan struct{}
}

// NewHub creates a hub whose subscribers each buffer up to bufferSize events
func NewHub(logger *slog.Logger, bufferSize int) *Hub {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Hub{
		logger:      logger,
		bufferSize:  bufferSize,
		events:      make(chan Event, 64),
		subscribers: make(map[uint64]chan Event),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start begins delivering broadcast events
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	h.logger.Info("notification hub started")

	go h.run()
}

// Stop ends delivery and closes every subscriber channel
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.stopped = true
	close(h.stopChan)
	h.mu.Unlock()

	<-h.done
	h.logger.Info("notification hub stopped")
}

// Broadcast queues an event for all subscribers without waiting for delivery
func (h *Hub) Broadcast(name string) {
	h.mu.Lock()
	h.nextEventID++
	ev := Event{ID: h.nextEventID, Name: name}
	h.mu.Unlock()

	select {
	case h.events <- ev:
	default:
		h.logger.Warn("notification queue full, dropping event", "event", name, "event_id", ev.ID)
	}
}

// Subscribe registers a listener. The returned function unsubscribes and
// closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.bufferSize)

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.nextSubID++
	id := h.nextSubID
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

// Subscribers returns the number of active listeners
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case ev := <-h.events:
			h.deliver(ev)
		case <-h.stopChan:
			h.mu.Lock()
			for id, ch := range h.subscribers {
				delete(h.subscribers, id)
				close(ch)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) deliver(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("subscriber too slow, dropping event", "subscriber", id, "event", ev.Name)
		}
	}
}
