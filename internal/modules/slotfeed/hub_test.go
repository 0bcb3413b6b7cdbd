package slotfeed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, server *httptest.Server, mechanicID string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws/mechanics/" + mechanicID + "/slots"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_BroadcastReachesSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	r := gin.New()
	NewHandler(hub).RegisterRoutes(r.Group("/api/v1"))

	server := httptest.NewServer(r)
	defer server.Close()

	conn := dialFeed(t, server, "1")
	defer conn.Close()

	// Subscription registers asynchronously with the dial.
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	hub.BroadcastSlotEvent(1, start, start.Add(30*time.Minute), "reserved")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var ev SlotEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, int64(1), ev.MechanicID)
	assert.Equal(t, "reserved", ev.Event)
	assert.True(t, ev.Start.Equal(start))
}

func TestHub_BroadcastToOtherMechanicNotDelivered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	r := gin.New()
	NewHandler(hub).RegisterRoutes(r.Group("/api/v1"))

	server := httptest.NewServer(r)
	defer server.Close()

	conn := dialFeed(t, server, "1")
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	hub.BroadcastSlotEvent(2, start, start.Add(30*time.Minute), "reserved")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var ev SlotEvent
	assert.Error(t, conn.ReadJSON(&ev))
}

func TestHub_ClientDisconnectDropsSubscription(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	r := gin.New()
	NewHandler(hub).RegisterRoutes(r.Group("/api/v1"))

	server := httptest.NewServer(r)
	defer server.Close()

	conn := dialFeed(t, server, "7")

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(7) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(7) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	hub.BroadcastSlotEvent(99, start, start.Add(30*time.Minute), "released")
	assert.Equal(t, 0, hub.SubscriberCount(99))
}
