package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const subscriberBuffer = 8

// BroadcastHook fans section events out to live subscribers. Every event is
// stamped with a sequence number and the latest one is replayed to new
// subscribers so a freshly opened page starts from the current order.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan SectionEvent
	next int
	seq  uint64
	last *SectionEvent
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]chan SectionEvent)}
}

// SectionsUpdated satisfies RefreshHook. A subscriber whose buffer is full
// misses the event.
func (h *BroadcastHook) SectionsUpdated(_ context.Context, event SectionEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	event.Seq = h.seq
	h.last = &event
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber. The returned cancel func is idempotent
// and closes the channel.
func (h *BroadcastHook) Subscribe() (<-chan SectionEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan SectionEvent, subscriberBuffer)
	if h.last != nil {
		ch <- *h.last
	}
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

// Last returns the most recent event, if any.
func (h *BroadcastHook) Last() (SectionEvent, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return SectionEvent{}, false
	}
	return *h.last, true
}

// Subscribers returns the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and writes each event as a JSON frame.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	h.stream(r.Context(), func(event SectionEvent) error {
		return conn.WriteJSON(event)
	})
}

// ServeSSE streams events as text/event-stream using the sequence number as
// the event id.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}
	h.stream(r.Context(), func(event SectionEvent) error {
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "id: %d\nevent: sections\ndata: %s\n\n", event.Seq, data); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
}

func (h *BroadcastHook) stream(ctx context.Context, write func(SectionEvent) error) {
	events, cancel := h.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := write(event); err != nil {
				return
			}
		}
	}
}
