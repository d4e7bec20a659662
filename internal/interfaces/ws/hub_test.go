// internal/interfaces/ws/hub_test.go
package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/enquiry"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestHub stands up an httptest server that registers every connection
// under the given user id, and returns a connected client conn.
func dialTestHub(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		NewClient(hub, conn, userID)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForConnections(t *testing.T, hub *Hub, userID uint, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount(userID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %d never reached %d connections", userID, want)
}

func TestHubDeliversStatusUpdateToOwner(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestHub(t, hub, 42)
	waitForConnections(t, hub, 42, 1)

	update := enquiry.StatusUpdate{
		EnquiryID: 7,
		Status:    enquiry.StatusApproved,
		CartID:    "c1",
		UpdatedAt: time.Now().UTC(),
	}
	hub.NotifyStatusUpdate(42, update)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Event string                `json:"event"`
		Data  enquiry.StatusUpdate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, EventEnquiryStatusUpdated, event.Event)
	assert.Equal(t, uint(7), event.Data.EnquiryID)
	assert.Equal(t, enquiry.StatusApproved, event.Data.Status)
	assert.Equal(t, "c1", event.Data.CartID)
}

func TestHubDoesNotCrossUserBoundaries(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	ownerConn := dialTestHub(t, hub, 1)
	otherConn := dialTestHub(t, hub, 2)
	waitForConnections(t, hub, 1, 1)
	waitForConnections(t, hub, 2, 1)

	hub.NotifyStatusUpdate(1, enquiry.StatusUpdate{EnquiryID: 1, Status: enquiry.StatusRejected})

	ownerConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := ownerConn.ReadMessage()
	require.NoError(t, err)

	otherConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = otherConn.ReadMessage()
	assert.Error(t, err, "the other user must not receive the event")
}

func TestHubBroadcastToEmptyRoomIsNoOp(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No connections registered for this user; must not block or panic.
	done := make(chan struct{})
	go func() {
		hub.NotifyStatusUpdate(99, enquiry.StatusUpdate{EnquiryID: 1, Status: enquiry.StatusPending})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast to empty room blocked")
	}

	assert.Zero(t, hub.ConnectionCount(99))
}

func TestHubFanOutToMultipleConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := dialTestHub(t, hub, 5)
	second := dialTestHub(t, hub, 5)
	waitForConnections(t, hub, 5, 2)

	hub.NotifyStatusUpdate(5, enquiry.StatusUpdate{EnquiryID: 3, Status: enquiry.StatusApproved})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(payload), EventEnquiryStatusUpdated)
	}
}

func TestHubSurvivesNotifyDuringDisconnectChurn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	const userID uint = 9
	const numClients = 500

	// Bare clients with no pumps: the hub never learns they stopped reading,
	// so their buffers fill and deliveries race the unregisters below.
	clients := make([]*Client, 0, numClients)
	for i := 0; i < numClients; i++ {
		c := &Client{hub: hub, userID: userID, send: make(chan []byte, sendBufferSize)}
		hub.register <- c
		clients = append(clients, c)
	}
	waitForConnections(t, hub, userID, numClients)

	done := make(chan struct{})
	go func() {
		defer close(done)
		update := enquiry.StatusUpdate{EnquiryID: 1, Status: enquiry.StatusApproved, UpdatedAt: time.Now().UTC()}
		for i := 0; i < 1000; i++ {
			hub.NotifyStatusUpdate(userID, update)
		}
	}()

	for _, c := range clients {
		hub.unregister <- c
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("notify loop never finished")
	}

	waitForConnections(t, hub, userID, 0)
}

func TestHubRemovesDisconnectedClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestHub(t, hub, 8)
	waitForConnections(t, hub, 8, 1)

	conn.Close()
	waitForConnections(t, hub, 8, 0)
}
