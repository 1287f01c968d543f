package main

import (
	"github.com/akinalp/filmorate/pkg/cache"
	"github.com/akinalp/filmorate/repository"
	"github.com/akinalp/filmorate/services"
	"github.com/akinalp/filmorate/ws"
)

// Services groups every service instance.
type Services struct {
	User       services.UserService
	Friendship services.FriendshipService
	Film       services.FilmService
	Reference  services.ReferenceService
}

func initServices(store repository.Store, refCache cache.Store, events ws.EventPublisher) *Services {
	return &Services{
		User:       services.NewUserService(store),
		Friendship: services.NewFriendshipService(store, events),
		Film:       services.NewFilmService(store),
		Reference:  services.NewReferenceService(store, refCache),
	}
}
