package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pixelgram-app/pixelgram-backend/auth"
	"github.com/pixelgram-app/pixelgram-backend/file_store"
	"github.com/pixelgram-app/pixelgram-backend/server"
	"github.com/pixelgram-app/pixelgram-backend/social"
	"github.com/pixelgram-app/pixelgram-backend/utils"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := utils.GetTestDBConnection(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, utils.DatabaseSetupAndMigration(db))

	files, err := file_store.NewLocalFileStore(t.TempDir(), "/storage/")
	require.NoError(t, err)

	engine := social.NewEngine(db, files)
	issuer := auth.NewTokenIssuer(db, "test-secret")
	return server.NewRouter(db, engine, issuer, files), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	parsed := map[string]interface{}{}
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	}
	return resp, parsed
}

func registerUser(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	resp, body := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name":     name,
		"email":    name + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func uploadPost(t *testing.T, router *gin.Engine, token, content string) string {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes: " + content))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("content", content))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	parsed := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &parsed))
	return parsed["data"].(map[string]interface{})["id"].(string)
}

func TestRegisterLoginFlow(t *testing.T) {
	router, _ := newTestServer(t)

	token := registerUser(t, router, "alice")
	assert.NotEmpty(t, token)

	resp, body := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, false, body["success"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestServer(t)
	registerUser(t, router, "alice")

	resp, body := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name":     "alice again",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router, _ := newTestServer(t)

	resp, _ := doJSON(t, router, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, _ = doJSON(t, router, http.MethodGet, "/api/posts", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUploadAndFeed(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")
	postID := uploadPost(t, router, token, "first post")

	resp, body := doJSON(t, router, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["current_page"])
	assert.EqualValues(t, 1, data["total"])
	posts := data["data"].([]interface{})
	require.Len(t, posts, 1)
	post := posts[0].(map[string]interface{})
	assert.Equal(t, postID, post["id"])
	assert.Equal(t, "first post", post["content"])
	assert.Contains(t, post["image_url"], "/storage/")
	assert.Equal(t, true, post["is_owner"])
}

func TestUploadRequiresImage(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("content", "no image attached"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestLikeToggleEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")
	postID := uploadPost(t, router, alice, "hello")

	path := fmt.Sprintf("/api/posts/%s/like", postID)

	resp, body := doJSON(t, router, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Post liked", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_liked"])
	assert.EqualValues(t, 1, data["likes_count"])

	resp, body = doJSON(t, router, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Post unliked", body["message"])
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_liked"])
	assert.EqualValues(t, 0, data["likes_count"])
}

func TestLikeMissingPost(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	resp, _ := doJSON(t, router, http.MethodPost, "/api/posts/missing/like", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCommentAuthorizationFlow(t *testing.T) {
	router, _ := newTestServer(t)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")
	postID := uploadPost(t, router, alice, "hello")

	resp, body := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/posts/%s/comments", postID), alice, gin.H{
		"comment": "original",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	commentID := body["data"].(map[string]interface{})["id"].(string)

	commentPath := fmt.Sprintf("/api/posts/%s/comments/%s", postID, commentID)

	resp, _ = doJSON(t, router, http.MethodPut, commentPath, bob, gin.H{"comment": "edited"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp, body = doJSON(t, router, http.MethodPut, commentPath, alice, gin.H{"comment": "edited"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "edited", body["data"].(map[string]interface{})["comment"])
}

func TestDeletePostEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")
	postID := uploadPost(t, router, alice, "hello")

	postPath := "/api/posts/" + postID

	resp, _ := doJSON(t, router, http.MethodDelete, postPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp, _ = doJSON(t, router, http.MethodDelete, postPath, alice, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp, _ = doJSON(t, router, http.MethodGet, postPath, alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp, _ = doJSON(t, router, http.MethodGet, postPath+"/likes", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp, _ = doJSON(t, router, http.MethodGet, postPath+"/comments", alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "alice")

	resp, _ := doJSON(t, router, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp, _ = doJSON(t, router, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp, _ = doJSON(t, router, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProfileEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	alice := registerUser(t, router, "alice")
	bob := registerUser(t, router, "bob")
	uploadPost(t, router, alice, "hello")

	resp, body := doJSON(t, router, http.MethodGet, "/api/me", alice, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["name"])
	posts := data["posts"].(map[string]interface{})
	assert.EqualValues(t, 1, posts["total"])

	aliceID := user["id"].(string)
	resp, body = doJSON(t, router, http.MethodGet, "/api/users/"+aliceID, bob, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_own_profile"])

	resp, _ = doJSON(t, router, http.MethodGet, "/api/users/unknown", bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
