// File: /controllers/board_controller_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, filename, fileContent string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(fileContent))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBoard_CreateAndList(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/boards/", gin.H{
		"title":   "first post",
		"content": "<p>hello</p>",
		"author":  "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/boards/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var boards []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boards))
	require.Len(t, boards, 1)
	assert.Equal(t, "first post", boards[0]["title"])
}

func TestBoard_Create_SanitizesScript(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/boards/", gin.H{
		"title":   "xss attempt",
		"content": "<p>ok</p><script>alert(1)</script>",
		"author":  "mallory",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	content, _ := body["content"].(string)
	assert.Contains(t, content, "<p>ok</p>")
	assert.NotContains(t, content, "<script>")
}

func TestBoard_SecureUpload_AllowedExtension(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doMultipart(t, r, "/api/boards/secure-upload", map[string]string{
		"title":   "with attachment",
		"content": "body",
		"author":  "alice",
	}, "notes.txt", "hello")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	stored, _ := body["attachedFilename"].(string)
	require.NotEmpty(t, stored)
	// The stored name is a random rename, not the client's filename.
	assert.NotEqual(t, "notes.txt", stored)
	assert.True(t, strings.HasSuffix(stored, ".txt"))
}

func TestBoard_SecureUpload_RejectedExtension(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doMultipart(t, r, "/api/boards/secure-upload", map[string]string{
		"title":   "evil",
		"content": "body",
		"author":  "mallory",
	}, "shell.sh", "#!/bin/sh\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "C001", decodeBody(t, w)["errCd"])
}

func TestBoard_VulnerableUpload_KeepsOriginalName(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doMultipart(t, r, "/api/boards/vulnerable-upload", map[string]string{
		"title":   "post",
		"content": "body",
		"author":  "alice",
	}, "original-name.txt", "hello")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "original-name.txt", decodeBody(t, w)["attachedFilename"])
}

func TestBoard_DownloadSecure_RejectsTraversal(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/boards/download/secure?filename=..%2F..%2Fetc%2Fpasswd", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "C001", decodeBody(t, w)["errCd"])
}

func TestBoard_SearchSafe_InjectionIsLiteral(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/boards/", gin.H{
		"title":   "post",
		"content": "body",
		"author":  "alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/boards/search/safe?author=alice%27+OR+%271%27%3D%271", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var boards []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boards))
	assert.Empty(t, boards)
}
