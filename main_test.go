package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/filmorate/config"
	"github.com/akinalp/filmorate/pkg/cache"
	"github.com/akinalp/filmorate/pkg/ratelimit"
	"github.com/akinalp/filmorate/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, store, err := initStore(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "filmorate.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	refCache := cache.NewMemoryStore(time.Minute)
	t.Cleanup(func() { refCache.Close() })

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	limiter := ratelimit.NewIPRateLimiter(1000, 1000, time.Minute)
	t.Cleanup(limiter.Stop)

	h := initHandlers(initServices(store, refCache, hub), db.Conn, hub)
	return initRoutes(h, limiter, config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}})
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_FriendshipFlow(t *testing.T) {
	h := newTestRouter(t)

	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/users", `{"login":"a","email":"a@mail.ru"}`).Code)
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/users", `{"login":"b","email":"b@mail.ru"}`).Code)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/users/1/friends/2", "").Code)

	rec := call(t, h, http.MethodGet, "/users/2/friends/requests", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"a"`)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPut, "/users/2/friends/1/confirm", "").Code)

	rec = call(t, h, http.MethodGet, "/users/2/friends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)

	assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodDelete, "/users/1/friends/2", "").Code)
	assert.JSONEq(t, `[]`, call(t, h, http.MethodGet, "/users/1/friends", "").Body.String())
	assert.JSONEq(t, `[]`, call(t, h, http.MethodGet, "/users/2/friends", "").Body.String())
}

func TestRoutes_FilmsAndReference(t *testing.T) {
	h := newTestRouter(t)

	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/films", `{"name":"x","description":"d","duration":90,"mpa":{"id":2}}`).Code)

	rec := call(t, h, http.MethodGet, "/films/popular?count=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"PG"`)

	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/films/1", "").Code)
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/films", "").Code)
	assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/genres", "").Code)
	assert.JSONEq(t, `{"id":4,"name":"R"}`, call(t, h, http.MethodGet, "/mpa/4", "").Body.String())
	assert.JSONEq(t, `{"status":"ok"}`, call(t, h, http.MethodGet, "/health", "").Body.String())
}

func TestRoutes_RequestIDAndCORS(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/genres", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
