// File: /ws/conn.go
package ws

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"chatmini-api/metrics"
	"chatmini-api/models"
)

// ChatBackend is the slice of chat behavior the socket layer needs. The
// service layer implements it; keeping it an interface here avoids an
// import cycle.
type ChatBackend interface {
	SaveMessage(roomID, senderID uint, content string) (*models.ChatMessage, error)
	RoomParticipants(roomID uint) ([]models.UserProfile, error)
	RoomExists(roomID uint) bool
}

type Client struct {
	room     *RoomHub
	conn     *websocket.Conn
	send     chan []byte
	backend  ChatBackend
	userID   uint
	nickname string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Inbound is a frame received from a client. TALK frames are persisted;
// JOIN and LEAVE are notification-only and mutate no membership state.
type Inbound struct {
	Type           EventType `json:"type"`
	RoomID         uint      `json:"roomId"`
	SenderID       uint      `json:"senderId"`
	SenderNickname string    `json:"senderNickname"`
	Message        string    `json:"message"`
}

// Serve upgrades the connection and subscribes it to the room topic.
// The caller's identity comes from the session middleware upstream.
func Serve(h *Hub, backend ChatBackend) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID64, err := strconv.ParseUint(c.Query("room_id"), 10, 64)
		if err != nil || roomID64 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID := uint(roomID64)
		if !backend.RoomExists(roomID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		userID := c.GetUint("userID")
		nickname := c.GetString("userNickname")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		rh := h.GetRoom(roomID)
		client := &Client{
			room:     rh,
			conn:     conn,
			send:     make(chan []byte, 256),
			backend:  backend,
			userID:   userID,
			nickname: nickname,
		}
		rh.register <- client

		go client.writePump()
		client.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		c.room.unregister <- c
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			continue
		}
		c.handle(h, in)
	}
}

func (c *Client) handle(h *Hub, in Inbound) {
	roomID := c.room.roomID
	evt := Event{
		Type:           in.Type,
		RoomID:         roomID,
		SenderID:       c.userID,
		SenderNickname: c.nickname,
		CreatedAt:      time.Now(),
	}

	switch in.Type {
	case EventJoin, EventLeave:
		// Notification only; the participant list reflects the committed
		// membership state, not this frame.
		participants, err := c.backend.RoomParticipants(roomID)
		if err != nil {
			log.Error().Err(err).Uint("room_id", roomID).Msg("load room participants")
			return
		}
		evt.Participants = participants
		if in.Type == EventJoin {
			evt.Message = c.nickname + " joined the room"
		} else {
			evt.Message = c.nickname + " left the room"
		}
	case EventTalk:
		if in.Message == "" {
			return
		}
		saved, err := c.backend.SaveMessage(roomID, c.userID, in.Message)
		if err != nil {
			log.Error().Err(err).Uint("room_id", roomID).Uint("user_id", c.userID).Msg("save chat message")
			return
		}
		// The stored timestamp is authoritative for ordering.
		evt.Message = saved.MessageContent
		evt.CreatedAt = saved.CreatedAt
		metrics.WsMessagesTotal.Inc()
	default:
		return
	}

	h.Broadcast(roomID, evt)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			_ = w.Close()
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
