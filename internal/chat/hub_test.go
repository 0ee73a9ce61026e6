package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// newChatServer upgrades every request into conversation 1 and echoes
// persisted messages back to the room.
func newChatServer(t *testing.T, hub *Hub, persist PersistFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := hub.Join(1, 7, conn)
		go client.WritePump()
		hub.ReadPump(client, persist)
	}))
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcastsPersistedMessages(t *testing.T) {
	hub := NewHub()
	persist := func(userID int64, text string) ([]byte, error) {
		return json.Marshal(map[string]interface{}{"user_id": userID, "text": text})
	}
	server := newChatServer(t, hub, persist)
	defer server.Close()

	sender := dial(t, server)
	defer sender.Close()
	listener := dial(t, server)
	defer listener.Close()

	// Wait for both sockets to land in the room.
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, sender.WriteJSON(Inbound{Text: "took the morning dose"}))

	listener.SetReadDeadline(time.Now().Add(time.Second))
	var got map[string]interface{}
	require.NoError(t, listener.ReadJSON(&got))
	assert.Equal(t, "took the morning dose", got["text"])
	assert.Equal(t, float64(7), got["user_id"])
}

func TestHubSkipsFailedPersist(t *testing.T) {
	hub := NewHub()
	persist := func(userID int64, text string) ([]byte, error) {
		return nil, fmt.Errorf("db down")
	}
	server := newChatServer(t, hub, persist)
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize(1) == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.WriteJSON(Inbound{Text: "hello"}))

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err) // nothing broadcast
}

func TestLeaveEmptiesRoom(t *testing.T) {
	hub := NewHub()
	server := newChatServer(t, hub, func(int64, string) ([]byte, error) { return []byte("{}"), nil })
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 0 }, time.Second, 10*time.Millisecond)
}
