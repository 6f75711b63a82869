// Package main is the entrypoint of the blog HTTP server.
//
//	@title			Cornelius Blog
//	@version		1.0
//	@description	Session-based blogging service: register, log in, publish and delete posts.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cornelius/blog/internal/api"
	"github.com/cornelius/blog/internal/api/handler"
	"github.com/cornelius/blog/internal/api/middleware"
	"github.com/cornelius/blog/internal/api/view"
	"github.com/cornelius/blog/internal/core/service"
	mongodb "github.com/cornelius/blog/internal/infrastructure/db/mongo"
	redisdb "github.com/cornelius/blog/internal/infrastructure/db/redis"
	"github.com/cornelius/blog/internal/pkg/config"
	"github.com/cornelius/blog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog",
	})
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Services ---
	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)

	authService := service.NewAuthService(users, cfg.Session.BcryptCost, log)
	postService := service.NewPostService(posts, users, log)
	sessionService := service.NewSessionService(redisdb.NewSessionStore(rdb), cfg.Session.TTL, log)

	renderer, err := view.New(cfg.TemplatesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Posts:     postService,
		Sessions:  sessionService,
		Cookies:   middleware.NewCookieCodec(cfg.Session.Secret, cfg.Session.CookieSecure),
		Renderer:  renderer,
		Logger:    log,
		StaticDir: cfg.StaticDir,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) },
		},
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
