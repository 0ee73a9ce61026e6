package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Inbound is the frame a client sends over the socket.
type Inbound struct {
	Text string `json:"text"`
}

// PersistFunc stores an incoming message and returns the payload to fan out
// to the room.
type PersistFunc func(userID int64, text string) ([]byte, error)

// Client is one open socket in a conversation room.
type Client struct {
	ID             string
	ConversationID int64
	UserID         int64

	conn *websocket.Conn
	send chan []byte
}

// Hub tracks the open sockets per conversation and fans messages out to
// room members.
type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[int64]map[string]*Client)}
}

// Join registers a connection in the conversation's room.
func (h *Hub) Join(conversationID, userID int64, conn *websocket.Conn) *Client {
	client := &Client{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		UserID:         userID,
		conn:           conn,
		send:           make(chan []byte, 16),
	}

	h.mu.Lock()
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[conversationID] = room
	}
	room[client.ID] = client
	h.mu.Unlock()

	return client
}

// Leave removes the client from its room and closes its send queue.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[client.ConversationID]; ok {
		if _, present := room[client.ID]; present {
			delete(room, client.ID)
			close(client.send)
		}
		if len(room) == 0 {
			delete(h.rooms, client.ConversationID)
		}
	}
	h.mu.Unlock()
}

// Broadcast queues a payload for every socket in the conversation. Clients
// that cannot keep up are skipped rather than blocking the room.
func (h *Hub) Broadcast(conversationID int64, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.rooms[conversationID] {
		select {
		case client.send <- payload:
		default:
			log.Printf("Dropping message for slow client %s", client.ID)
		}
	}
}

// RoomSize reports how many sockets a conversation currently has open.
func (h *Hub) RoomSize(conversationID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

// ReadPump consumes frames from the socket until it closes, persisting each
// message and broadcasting the stored result to the room.
func (h *Hub) ReadPump(client *Client, persist PersistFunc) {
	defer func() {
		h.Leave(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Unexpected close on client %s: %v", client.ID, err)
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil || in.Text == "" {
			continue
		}

		payload, err := persist(client.UserID, in.Text)
		if err != nil {
			log.Printf("Failed to persist message from client %s: %v", client.ID, err)
			continue
		}
		h.Broadcast(client.ConversationID, payload)
	}
}

// WritePump drains the client's queue onto the socket.
func (c *Client) WritePump() {
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	// Queue closed by Leave; tell the peer we are done.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
