package main

import (
	"github.com/akinalp/filmorate/handlers"
	"github.com/akinalp/filmorate/ws"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	User       *handlers.UserHandler
	Friendship *handlers.FriendshipHandler
	Film       *handlers.FilmHandler
	Reference  *handlers.ReferenceHandler
	Health     *handlers.HealthHandler
	WS         *ws.Handler
}

func initHandlers(svcs *Services, db handlers.Pinger, hub *ws.Hub) *Handlers {
	return &Handlers{
		User:       handlers.NewUserHandler(svcs.User),
		Friendship: handlers.NewFriendshipHandler(svcs.Friendship),
		Film:       handlers.NewFilmHandler(svcs.Film),
		Reference:  handlers.NewReferenceHandler(svcs.Reference),
		Health:     handlers.NewHealthHandler(db),
		WS:         ws.NewHandler(hub, svcs.User),
	}
}
