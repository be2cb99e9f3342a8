package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	hub := NewProgressHub(zap.NewNop())
	defer hub.Close()

	assert.NotPanics(t, func() {
		hub.Publish(uuid.New(), 1, 6, "fetching climate archive")
	})
}

func TestSubscribeReceivesEvents(t *testing.T) {
	hub := NewProgressHub(zap.NewNop())
	defer hub.Close()

	requestID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, hub.Subscribe(w, r, requestID))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for registration before publishing.
	require.Eventually(t, func() bool {
		return hub.Count(requestID) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(requestID, 2, 6, "fetching satellite NDVI")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event ProgressEvent
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, requestID, event.RequestID)
	assert.Equal(t, 2, event.Step)
	assert.Equal(t, 6, event.Total)
	assert.Equal(t, "fetching satellite NDVI", event.Message)
}

func TestPublishDropsOnlySlowSubscriber(t *testing.T) {
	hub := NewProgressHub(zap.NewNop())

	requestID := uuid.New()
	slow := &subscriber{requestID: requestID, send: make(chan ProgressEvent)}
	second := &subscriber{requestID: requestID, send: make(chan ProgressEvent, 4)}
	third := &subscriber{requestID: requestID, send: make(chan ProgressEvent, 4)}

	hub.mu.Lock()
	hub.subscribers[requestID] = []*subscriber{slow, second, third}
	hub.mu.Unlock()

	hub.Publish(requestID, 3, 6, "fetching soil profile")

	// The slow subscriber is dropped; the others each get the event once.
	assert.Len(t, second.send, 1)
	assert.Len(t, third.send, 1)
	assert.Equal(t, 2, hub.Count(requestID))

	hub.Publish(requestID, 4, 6, "computing indices")

	assert.Len(t, second.send, 2)
	assert.Len(t, third.send, 2)
}

func TestPublishIgnoresOtherRequests(t *testing.T) {
	hub := NewProgressHub(zap.NewNop())
	defer hub.Close()

	subscribed := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, hub.Subscribe(w, r, subscribed))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Count(subscribed) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(uuid.New(), 1, 6, "someone else's run")

	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	var event ProgressEvent
	assert.Error(t, conn.ReadJSON(&event))
}
