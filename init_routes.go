package main

import (
	"net/http"

	"github.com/akinalp/filmorate/config"
	"github.com/akinalp/filmorate/middleware"
	"github.com/akinalp/filmorate/pkg/ratelimit"
	"github.com/rs/cors"
)

// initRoutes registers every endpoint and wraps the mux with the
// middleware chain: CORS, request log, panic recovery, rate limit.
//
// Literal segments such as /films/popular and /friends/requests win over
// {id} wildcards in ServeMux, so registration order does not matter.
func initRoutes(h *Handlers, limiter *ratelimit.IPRateLimiter, corsCfg config.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Check)

	// Users
	mux.HandleFunc("POST /users", h.User.Create)
	mux.HandleFunc("PUT /users", h.User.Update)
	mux.HandleFunc("GET /users", h.User.List)
	mux.HandleFunc("GET /users/{id}", h.User.GetByID)

	// Friends
	mux.HandleFunc("GET /users/{id}/friends", h.Friendship.ListFriends)
	mux.HandleFunc("GET /users/{id}/friends/requests", h.Friendship.ListRequests)
	mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", h.Friendship.CommonFriends)
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}", h.Friendship.Request)
	mux.HandleFunc("PUT /users/{id}/friends/{friendId}/confirm", h.Friendship.Confirm)
	mux.HandleFunc("DELETE /users/{id}/friends/{friendId}", h.Friendship.Remove)

	// Films
	mux.HandleFunc("POST /films", h.Film.Create)
	mux.HandleFunc("PUT /films", h.Film.Update)
	mux.HandleFunc("GET /films", h.Film.List)
	mux.HandleFunc("GET /films/popular", h.Film.Popular)
	mux.HandleFunc("GET /films/{id}", h.Film.GetByID)
	mux.HandleFunc("PUT /films/{id}/like/{userId}", h.Film.AddLike)
	mux.HandleFunc("DELETE /films/{id}/like/{userId}", h.Film.RemoveLike)

	// Reference data
	mux.HandleFunc("GET /genres", h.Reference.ListGenres)
	mux.HandleFunc("GET /genres/{id}", h.Reference.GetGenre)
	mux.HandleFunc("GET /mpa", h.Reference.ListMpa)
	mux.HandleFunc("GET /mpa/{id}", h.Reference.GetMpa)

	// WebSocket event stream, ?user_id=N
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return middleware.Chain(mux,
		corsHandler.Handler,
		middleware.RequestLogger,
		middleware.Recover,
		middleware.RateLimit(limiter),
	)
}
