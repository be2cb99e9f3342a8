// Package notifications streams pipeline progress to websocket
// subscribers. A Telegram bot frontend subscribes with the request id it
// was handed and shows the user how far the pipeline has advanced.
package notifications

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ProgressEvent is one pipeline step update pushed to subscribers.
type ProgressEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Step      int       `json:"step"`
	Total     int       `json:"total"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// subscriber is one websocket client watching a single request.
type subscriber struct {
	requestID uuid.UUID
	conn      *websocket.Conn
	send      chan ProgressEvent
}

// ProgressHub fans pipeline progress out to websocket subscribers keyed
// by request id. It satisfies the pipeline's progress notifier contract
// and never blocks the publisher.
type ProgressHub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID][]*subscriber
	upgrader    websocket.Upgrader
	logger      *zap.Logger
	closed      bool
}

// NewProgressHub creates the hub.
func NewProgressHub(logger *zap.Logger) *ProgressHub {
	return &ProgressHub{
		subscribers: make(map[uuid.UUID][]*subscriber),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Publish pushes one step update to every subscriber of the request.
// Slow subscribers are dropped rather than waited on.
func (h *ProgressHub) Publish(requestID uuid.UUID, step, total int, message string) {
	event := ProgressEvent{
		RequestID: requestID,
		Step:      step,
		Total:     total,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	h.mu.RLock()
	subs := make([]*subscriber, len(h.subscribers[requestID]))
	copy(subs, h.subscribers[requestID])
	h.mu.RUnlock()

	var slow []*subscriber
	for _, sub := range subs {
		select {
		case sub.send <- event:
		default:
			h.logger.Warn("progress subscriber too slow, dropping",
				zap.String("request_id", requestID.String()))
			slow = append(slow, sub)
		}
	}
	for _, sub := range slow {
		h.remove(sub)
	}
}

// Subscribe upgrades the HTTP request to a websocket and streams
// progress for the given request id until the client disconnects.
func (h *ProgressHub) Subscribe(w http.ResponseWriter, r *http.Request, requestID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	sub := &subscriber{
		requestID: requestID,
		conn:      conn,
		send:      make(chan ProgressEvent, 16),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return fmt.Errorf("hub is shut down")
	}
	h.subscribers[requestID] = append(h.subscribers[requestID], sub)
	h.mu.Unlock()

	go h.writePump(sub)
	go h.readPump(sub)

	return nil
}

// Count returns the number of subscribers for a request. Used by tests
// and the health endpoint.
func (h *ProgressHub) Count(requestID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[requestID])
}

// Close disconnects all subscribers.
func (h *ProgressHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subscribers {
		for _, sub := range subs {
			close(sub.send)
			sub.conn.Close()
		}
	}
	h.subscribers = make(map[uuid.UUID][]*subscriber)
}

// readPump discards client frames and detects disconnects.
func (h *ProgressHub) readPump(sub *subscriber) {
	defer func() {
		h.remove(sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(512)
	sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.conn.SetPongHandler(func(string) error {
		sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("progress subscriber read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump forwards events and keeps the connection alive with pings.
func (h *ProgressHub) writePump(sub *subscriber) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *ProgressHub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[sub.requestID]
	for i, s := range subs {
		if s == sub {
			h.subscribers[sub.requestID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subscribers[sub.requestID]) == 0 {
		delete(h.subscribers, sub.requestID)
	}
}
