package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"eldercare-backend/internal/model"
	"eldercare-backend/internal/mw"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ListConversations handles GET /api/seniors/:senior_id/conversations. A
// senior with no conversation yet gets one opened on first listing.
func (h *Handler) ListConversations(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}
	if _, err := h.store.GetSenior(c.Request.Context(), seniorID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())
	var conversations []model.Conversation
	if err := db.Where("senior_id = ?", seniorID).Order("id ASC").Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conversations"})
		return
	}

	if len(conversations) == 0 {
		conv := model.Conversation{SeniorID: seniorID, Status: "OPEN"}
		if err := db.Create(&conv).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open conversation"})
			return
		}
		conversations = append(conversations, conv)
	}

	c.JSON(http.StatusOK, conversations)
}

// ListMessages handles GET /api/conversations/:conversation_id/messages.
func (h *Handler) ListMessages(c *gin.Context) {
	conversationID, ok := pathID(c, "conversation_id")
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())
	var conv model.Conversation
	if err := db.First(&conv, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return
	}

	var messages []model.Message
	if err := db.Where("conversation_id = ?", conversationID).Order("sent_at ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// ServeConversation handles GET /api/ws/conversations/:conversation_id: it
// upgrades the request, joins the room and pumps messages until the socket
// closes. Messages are persisted before fan-out.
func (h *Handler) ServeConversation(c *gin.Context) {
	conversationID, ok := pathID(c, "conversation_id")
	if !ok {
		return
	}
	userID, _ := mw.UserID(c)

	db := h.store.DB()
	var conv model.Conversation
	if err := db.First(&conv, conversationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		return
	}

	client := h.hub.Join(conversationID, userID, conn)
	go client.WritePump()
	h.hub.ReadPump(client, func(senderID int64, text string) ([]byte, error) {
		msg := model.Message{
			ConversationID: conversationID,
			SenderUserID:   senderID,
			Content:        text,
			SentAt:         h.clk.Now(),
		}
		if err := db.Create(&msg).Error; err != nil {
			return nil, err
		}
		return json.Marshal(msg)
	})
}
