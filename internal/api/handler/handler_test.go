package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vortex-go/internal/api/dto"
	"vortex-go/internal/api/handler"
	"vortex-go/internal/api/middleware"
	"vortex-go/internal/api/router"
	"vortex-go/internal/config"
	"vortex-go/internal/infra/database"
	"vortex-go/internal/media"
	"vortex-go/internal/model"
	"vortex-go/internal/repository"
	"vortex-go/internal/service"
	"vortex-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type memStore struct{ n int }

func (s *memStore) Upload(_ context.Context, folder string, f *media.File) (model.Asset, error) {
	s.n++
	id := fmt.Sprintf("%s/%d", folder, s.n)
	return model.Asset{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (s *memStore) Delete(context.Context, string) error { return nil }

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidators())

	db, err := database.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	sqlDB, err := db.DB()
	require.NoError(t, err)

	repos := repository.New(db)
	uow := repository.NewUnitOfWork(db)
	store := &memStore{}
	tokens := utils.NewTokenManager(config.JWTConfig{
		Issuer: "test", AccessSecret: "a", AccessExpireHours: 1, RefreshSecret: "r", RefreshExpireHours: 24,
	})
	policy := media.NewPolicy(config.UploadConfig{
		TempDir:            t.TempDir(),
		MaxImageSize:       1 << 20,
		MaxVideoSize:       1 << 20,
		ImageExtensions:    []string{".png", ".jpg"},
		VideoExtensions:    []string{".mp4"},
		ImageContentPrefix: "image/",
		VideoContentPrefix: "video/",
	})

	authService := service.NewAuthService(repos, tokens, store, nil)
	handlers := &router.Handlers{
		Healthcheck:  handler.NewHealthcheckHandler(sqlDB),
		User:         handler.NewUserHandler(authService, service.NewUserService(repos, store), policy, false),
		Video:        handler.NewVideoHandler(service.NewVideoService(repos, uow, store, nil, nil, nil), policy),
		Comment:      handler.NewCommentHandler(service.NewCommentService(repos, uow)),
		Like:         handler.NewLikeHandler(service.NewLikeService(repos)),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(repos)),
		Tweet:        handler.NewTweetHandler(service.NewTweetService(repos, uow)),
		Playlist:     handler.NewPlaylistHandler(service.NewPlaylistService(repos, uow)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(repos)),
	}
	return router.New(handlers, authService)
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &env), "body = %s", w.Body.String())
	assert.Equal(t, w.Code, env.StatusCode)
	assert.Equal(t, w.Code < 400, env.Success)
	if !env.Success {
		assert.NotNil(t, env.Errors, "failed responses always carry an errors list")
	}
	return w, env
}

func jsonRequest(method, path, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func registerRequest(t *testing.T, fields map[string]string, avatar []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if avatar != nil {
		fw, err := mw.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write(avatar)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// signup 注册并登录，返回访问令牌
func signup(t *testing.T, r http.Handler, userName string) string {
	t.Helper()
	w, env := do(t, r, registerRequest(t, map[string]string{
		"userName": userName,
		"email":    userName + "@example.com",
		"fullName": "Test " + userName,
		"password": "secret123",
	}, pngHeader))
	require.Equalf(t, http.StatusCreated, w.Code, "register: %s", env.Message)

	w, env = do(t, r, jsonRequest(http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"userName": userName, "password": "secret123",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestHealthcheck(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Everything is OK.", env.Message)

	w, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, jsonRequest(http.MethodGet, "/api/v1/users/current-user", "", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "null", string(env.Data))

	w, _ = do(t, r, jsonRequest(http.MethodGet, "/api/v1/users/current-user", "not-a-jwt", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r := newServer(t)
	token := signup(t, r, "alice")

	w, env := do(t, r, jsonRequest(http.MethodGet, "/api/v1/users/current-user", token, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"userName":"alice"`)
	assert.NotContains(t, string(env.Data), "password")

	t.Run("cookie auth", func(t *testing.T) {
		req := jsonRequest(http.MethodGet, "/api/v1/users/current-user", "", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
		w, _ := do(t, r, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		w, _ := do(t, r, registerRequest(t, map[string]string{
			"userName": "ALICE", "email": "x@example.com", "fullName": "X", "password": "secret123",
		}, pngHeader))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		w, env := do(t, r, registerRequest(t, map[string]string{
			"userName": "a!", "email": "not-an-email", "fullName": "X", "password": "123",
		}, pngHeader))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, env.Errors, 3)
	})

	t.Run("avatar must be an image", func(t *testing.T) {
		w, _ := do(t, r, registerRequest(t, map[string]string{
			"userName": "bob", "email": "bob@example.com", "fullName": "Bob", "password": "secret123",
		}, []byte("just some text pretending to be a png")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing avatar", func(t *testing.T) {
		w, _ := do(t, r, registerRequest(t, map[string]string{
			"userName": "bob", "email": "bob@example.com", "fullName": "Bob", "password": "secret123",
		}, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w, _ := do(t, r, jsonRequest(http.MethodPost, "/api/v1/users/login", "", map[string]string{
			"userName": "alice", "password": "nope",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestErrors(t *testing.T) {
	r := newServer(t)
	token := signup(t, r, "alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"malformed video id", http.MethodGet, "/api/v1/videos/abc", nil, http.StatusBadRequest},
		{"negative video id", http.MethodGet, "/api/v1/videos/-1", nil, http.StatusBadRequest},
		{"unknown video", http.MethodGet, "/api/v1/videos/42", nil, http.StatusNotFound},
		{"invalid sort", http.MethodGet, "/api/v1/videos?sortBy=password", nil, http.StatusBadRequest},
		{"like unknown comment", http.MethodPost, "/api/v1/likes/toggle/c/7", nil, http.StatusNotFound},
		{"subscribe unknown channel", http.MethodPost, "/api/v1/subscriptions/c/99", nil, http.StatusNotFound},
		{"empty tweet", http.MethodPost, "/api/v1/tweets", map[string]string{"content": ""}, http.StatusBadRequest},
		{"playlist without name", http.MethodPost, "/api/v1/playlists", map[string]string{"description": "d"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, r, jsonRequest(tt.method, tt.path, token, tt.body))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSocialFlow(t *testing.T) {
	r := newServer(t)
	alice := signup(t, r, "alice")
	bob := signup(t, r, "bob")

	w, env := do(t, r, jsonRequest(http.MethodPost, "/api/v1/tweets", alice, map[string]string{"content": "hello"}))
	require.Equal(t, http.StatusCreated, w.Code)
	var tweet struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tweet))

	path := fmt.Sprintf("/api/v1/likes/toggle/t/%d", tweet.ID)
	_, env = do(t, r, jsonRequest(http.MethodPost, path, bob, nil))
	assert.JSONEq(t, `{"isLiked":true}`, string(env.Data))
	_, env = do(t, r, jsonRequest(http.MethodPost, path, bob, nil))
	assert.JSONEq(t, `{"isLiked":false}`, string(env.Data))

	w, _ = do(t, r, jsonRequest(http.MethodPatch, fmt.Sprintf("/api/v1/tweets/%d", tweet.ID), bob, map[string]string{"content": "stolen"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = do(t, r, jsonRequest(http.MethodGet, "/api/v1/dashboard/stats", alice, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalSubscribers":0,"totalLikes":0,"totalViews":0,"totalVideos":0}`, string(env.Data))
}
