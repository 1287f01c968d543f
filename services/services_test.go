package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/akinalp/filmorate/database"
	"github.com/akinalp/filmorate/models"
	"github.com/akinalp/filmorate/repository"
	"github.com/akinalp/filmorate/ws"
	"github.com/stretchr/testify/require"
)

// MockPublisher records every event instead of sending it.
type MockPublisher struct {
	mu     sync.Mutex
	events []sentEvent
}

type sentEvent struct {
	to    int64
	event ws.Event
}

func (m *MockPublisher) BroadcastToUser(userID int64, event ws.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, sentEvent{to: userID, event: event})
}

func (m *MockPublisher) Sent() []sentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEvent(nil), m.events...)
}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	db, err := database.Open(context.Background(), database.DialectSQLite, filepath.Join(t.TempDir(), "filmorate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSQLStore(db)
}

func newUser(t *testing.T, svc UserService, login string) *models.User {
	t.Helper()
	u, err := svc.Create(context.Background(), &models.User{Email: login + "@mail.ru", Login: login})
	require.NoError(t, err)
	return u
}

func newFilm(t *testing.T, svc FilmService, name string) *models.Film {
	t.Helper()
	f, err := svc.Create(context.Background(), &models.Film{Name: name, Description: "d", Duration: 90})
	require.NoError(t, err)
	return f
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func userID(u models.User) int64 { return u.ID }
func filmID(f models.Film) int64 { return f.ID }
