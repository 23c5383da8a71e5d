// File: /controllers/api_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatmini-api/config"
	"chatmini-api/models"
	"chatmini-api/routes"
	"chatmini-api/ws"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.UserCredential{},
		&models.Session{},
		&models.UserFriend{},
		&models.ChatRoom{},
		&models.RoomParticipant{},
		&models.ChatMessage{},
		&models.Board{},
	))

	cfg := &config.Config{
		Port:                  "0",
		Env:                   "test",
		SessionTimeoutMinutes: 30,
		UploadDir:             t.TempDir(),
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, ws.NewHub())
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func signUpAndLogin(t *testing.T, r *gin.Engine, loginID, nickname string) *http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users/signup", gin.H{
		"loginId":      loginID,
		"password":     "secret",
		"userNickname": nickname,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"loginId":  loginID,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "SESSION" {
			return c
		}
	}
	t.Fatal("login response did not set the SESSION cookie")
	return nil
}

func TestSignUpLoginAndMe(t *testing.T) {
	r, _ := setupTestRouter(t)

	cookie := signUpAndLogin(t, r, "alice01", "alice")
	assert.True(t, cookie.HttpOnly)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["userNickname"])
}

func TestLogin_ReturnsSessionTimeout(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/signup", gin.H{
		"loginId":      "alice01",
		"password":     "secret",
		"userNickname": "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"loginId":  "alice01",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(30), body["sessionTimeoutInMinutes"])
}

func TestLogin_InvalidCredentials_ErrorEnvelope(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"loginId":  "nobody",
		"password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "U004", body["errCd"])
	assert.NotEmpty(t, body["errMsg"])
}

func TestMe_WithoutSession(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "authentication required", body["error"])
}

func TestGetUser_NotFound_ErrorEnvelope(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "U001", body["errCd"])
}

func TestSignUp_BindingErrors(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/signup", gin.H{
		"loginId": "alice01",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	fields, ok := body["errors"].(map[string]interface{})
	require.True(t, ok, "expected errors map, got %v", body)
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "userNickname")
}

func TestLogout_InvalidatesSession(t *testing.T) {
	r, _ := setupTestRouter(t)
	cookie := signUpAndLogin(t, r, "alice01", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/users/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteUser_InvalidatesSessions(t *testing.T) {
	r, db := setupTestRouter(t)
	cookie := signUpAndLogin(t, r, "alice01", "alice")

	var alice models.UserProfile
	require.NoError(t, db.Where("user_nickname = ?", "alice").First(&alice).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/users/"+strconv.Itoa(int(alice.UserID)), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var sessions int64
	db.Model(&models.Session{}).Where("user_id = ?", alice.UserID).Count(&sessions)
	assert.Equal(t, int64(0), sessions)

	w = doJSON(t, r, http.MethodGet, "/api/users/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendFlow_OverHTTP(t *testing.T) {
	r, db := setupTestRouter(t)
	aliceCookie := signUpAndLogin(t, r, "alice01", "alice")
	bobCookie := signUpAndLogin(t, r, "bob02", "bob")

	var bob models.UserProfile
	require.NoError(t, db.Where("user_nickname = ?", "bob").First(&bob).Error)

	w := doJSON(t, r, http.MethodPost, "/api/friends/requests", gin.H{
		"recipientId": bob.UserID,
	}, aliceCookie)
	require.Equal(t, http.StatusCreated, w.Code)

	// bob sees the incoming request
	w = doJSON(t, r, http.MethodGet, "/api/friends/requests/pending", nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0]["requesterNickname"])

	// duplicate request from either side fails with F001
	w = doJSON(t, r, http.MethodPost, "/api/friends/requests", gin.H{
		"recipientId": bob.UserID,
	}, aliceCookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "F001", decodeBody(t, w)["errCd"])
}

func TestChatRoom_Unauthenticated(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/chat/room", gin.H{
		"roomName":      "general",
		"roomType":      "GROUP",
		"userNicknames": []string{"alice"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRoom_OverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)
	cookie := signUpAndLogin(t, r, "alice01", "alice")
	signUpAndLogin(t, r, "bob02", "bob")

	w := doJSON(t, r, http.MethodPost, "/api/chat/room", gin.H{
		"roomName":      "general",
		"roomType":      "GROUP",
		"userNicknames": []string{"alice", "bob"},
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "general", body["roomName"])
	participants, ok := body["participants"].([]interface{})
	require.True(t, ok)
	assert.Len(t, participants, 2)
}

func TestPing(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decodeBody(t, w)["message"])
}
