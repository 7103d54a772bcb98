package service

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
)

// DefaultSubscriberBuffer is the per-subscriber event buffer.
const DefaultSubscriberBuffer = 64

// JobEventHubOptions configure a JobEventHub.
type JobEventHubOptions struct {
	Buffer int
	Logger *slog.Logger
}

// JobEventHub fans job events out to live subscribers such as dashboard
// WebSocket connections. Publish never blocks: a subscriber whose buffer is
// full misses the event.
type JobEventHub struct {
	buffer int
	logger *slog.Logger

	mu      sync.Mutex
	subs    map[chan model.JobEvent]struct{}
	closed  bool
	dropped atomic.Int64
}

// NewJobEventHub constructs an empty hub.
func NewJobEventHub(opts JobEventHubOptions) *JobEventHub {
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobEventHub{
		buffer: buffer,
		logger: logger.With("component", "job_event_hub"),
		subs:   make(map[chan model.JobEvent]struct{}),
	}
}

// Publish delivers evt to every subscriber with room in its buffer.
func (h *JobEventHub) Publish(evt model.JobEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
			h.dropped.Add(1)
			h.logger.Debug("job event dropped for slow subscriber", "job_id", evt.JobID, "type", evt.Type)
		}
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; it is safe to call more than once. On a closed hub
// the channel is returned already closed.
func (h *JobEventHub) Subscribe() (<-chan model.JobEvent, func()) {
	ch := make(chan model.JobEvent, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; !ok {
			return
		}
		delete(h.subs, ch)
		drainAndClose(ch)
	}
	return ch, unsub
}

// Subscribers returns the number of live subscribers.
func (h *JobEventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many events were not delivered to full subscribers.
func (h *JobEventHub) Dropped() int64 {
	return h.dropped.Load()
}

// Close closes every subscriber channel. Later publishes are no-ops.
func (h *JobEventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		drainAndClose(ch)
	}
}

func drainAndClose(ch chan model.JobEvent) {
	for {
		select {
		case <-ch:
		default:
			close(ch)
			return
		}
	}
}
