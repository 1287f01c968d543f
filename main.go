// Package main is the Filmorate API server entry point.
//
// Wire-up order:
//  1. config and logging
//  2. database (migrations run on open) and repository store
//  3. cache and WebSocket hub
//  4. services, handlers, routes with middleware
//  5. HTTP server and graceful shutdown
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/filmorate/config"
	"github.com/akinalp/filmorate/pkg/logger"
	"github.com/akinalp/filmorate/pkg/ratelimit"
	"github.com/akinalp/filmorate/ws"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}
	log.WithFields(log.Fields{"port": cfg.Server.Port, "driver": cfg.Database.Driver}).Info("filmorate server starting")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	db, store, err := initStore(startCtx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer db.Close()

	refCache, err := initCache(startCtx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize cache")
	}
	defer refCache.Close()

	hub := ws.NewHub()
	go hub.Run()

	svcs := initServices(store, refCache, hub)
	// A shared cache may still hold reference rows from an older seed.
	if err := svcs.Reference.Invalidate(startCtx); err != nil {
		log.WithError(err).Warn("failed to clear reference cache")
	}

	limiter := ratelimit.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
	defer limiter.Stop()

	h := initHandlers(svcs, db.Conn, hub)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      initRoutes(h, limiter, cfg.CORS),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-done
	log.Info("shutting down")

	// Close WebSocket clients first; hijacked connections are invisible to srv.Shutdown.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
		return
	}

	log.Info("server stopped gracefully")
}
