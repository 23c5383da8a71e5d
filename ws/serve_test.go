// File: /ws/serve_test.go
package ws_test

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatmini-api/models"
	"chatmini-api/repositories"
	"chatmini-api/services"
	"chatmini-api/ws"
)

// setupSocketServer boots a real router with the socket endpoint backed by
// the chat service over an in-memory database, with alice already in a room.
func setupSocketServer(t *testing.T) (*httptest.Server, *gorm.DB, uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.ChatRoom{},
		&models.RoomParticipant{},
		&models.ChatMessage{},
	))

	alice := &models.UserProfile{UserNickname: "alice"}
	require.NoError(t, repositories.NewUserRepository(db).CreateProfile(alice))

	hub := ws.NewHub()
	chatSvc := services.NewChatService(
		repositories.NewChatRepository(db),
		repositories.NewUserRepository(db),
		hub,
	)
	room, err := chatSvc.CreateRoom("general", models.RoomTypeGroup, []string{"alice"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws/chat", func(c *gin.Context) {
		c.Set("userID", alice.UserID)
		c.Set("userNickname", alice.UserNickname)
	}, ws.Serve(hub, chatSvc))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db, room.RoomID
}

func dialRoom(t *testing.T, srv *httptest.Server, roomID uint) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?room_id=" + strconv.Itoa(int(roomID))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) ws.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var evt ws.Event
	require.NoError(t, json.Unmarshal(data, &evt))
	return evt
}

func writeFrame(t *testing.T, conn *websocket.Conn, frame map[string]interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(frame))
}

// TALK frames persist the message and echo it back with the stored
// timestamp, not the frame's arrival time.
func TestServe_TalkPersistsAndBroadcasts(t *testing.T) {
	srv, db, roomID := setupSocketServer(t)
	conn := dialRoom(t, srv, roomID)

	writeFrame(t, conn, map[string]interface{}{"type": "TALK", "message": "hello"})

	evt := readEvent(t, conn)
	assert.Equal(t, ws.EventTalk, evt.Type)
	assert.Equal(t, roomID, evt.RoomID)
	assert.Equal(t, "alice", evt.SenderNickname)
	assert.Equal(t, "hello", evt.Message)
	assert.Empty(t, evt.Participants)

	var stored models.ChatMessage
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "hello", stored.MessageContent)
	assert.WithinDuration(t, stored.CreatedAt, evt.CreatedAt, time.Second)

	var count int64
	db.Model(&models.ChatMessage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// An empty TALK frame is dropped: nothing stored, nothing broadcast.
func TestServe_EmptyTalkIgnored(t *testing.T) {
	srv, db, roomID := setupSocketServer(t)
	conn := dialRoom(t, srv, roomID)

	writeFrame(t, conn, map[string]interface{}{"type": "TALK", "message": ""})
	writeFrame(t, conn, map[string]interface{}{"type": "TALK", "message": "after"})

	evt := readEvent(t, conn)
	assert.Equal(t, "after", evt.Message)

	var count int64
	db.Model(&models.ChatMessage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// JOIN frames only notify: they carry the committed participant snapshot
// and mutate no membership rows.
func TestServe_JoinIsNotificationOnly(t *testing.T) {
	srv, db, roomID := setupSocketServer(t)
	conn := dialRoom(t, srv, roomID)

	writeFrame(t, conn, map[string]interface{}{"type": "JOIN"})

	evt := readEvent(t, conn)
	assert.Equal(t, ws.EventJoin, evt.Type)
	assert.Equal(t, "alice joined the room", evt.Message)
	require.Len(t, evt.Participants, 1)
	assert.Equal(t, "alice", evt.Participants[0].UserNickname)

	var count int64
	db.Model(&models.RoomParticipant{}).Where("room_id = ?", roomID).Count(&count)
	assert.Equal(t, int64(1), count)

	var messages int64
	db.Model(&models.ChatMessage{}).Count(&messages)
	assert.Equal(t, int64(0), messages)
}

func TestServe_LeaveNotification(t *testing.T) {
	srv, _, roomID := setupSocketServer(t)
	conn := dialRoom(t, srv, roomID)

	writeFrame(t, conn, map[string]interface{}{"type": "LEAVE"})

	evt := readEvent(t, conn)
	assert.Equal(t, ws.EventLeave, evt.Type)
	assert.Equal(t, "alice left the room", evt.Message)
	require.Len(t, evt.Participants, 1)
}

// The handshake is refused for rooms that do not exist.
func TestServe_UnknownRoomRejected(t *testing.T) {
	srv, _, roomID := setupSocketServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat?room_id=" + strconv.Itoa(int(roomID+100))
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
