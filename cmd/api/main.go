// Package main is the entry point for the TripTune schedule API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/config"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/handler"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/middleware"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Postgres ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections. New() does not open
	// connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Mongo ------------------------------------------------------------
	// Chat history lives in a document store. Connection failures here are
	// fatal for the same reason Postgres ones are: a half-wired server would
	// accept traffic it cannot serve.
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mongoCancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		slog.Error("failed to reach document store", "error", err)
		os.Exit(1)
	}
	slog.Info("document store connection established")

	// --- Repos and services -----------------------------------------------
	scheduleRepo := repo.NewScheduleRepo(pool)
	attendeeRepo := repo.NewAttendeeRepo(pool)
	routeRepo := repo.NewRouteRepo(pool)
	placeRepo := repo.NewPlaceRepo(pool)
	memberRepo := repo.NewMemberRepo(pool)
	chatRepo := repo.NewChatRepo(mongoClient.Database(cfg.MongoDatabase))

	routeSvc := service.NewRouteService(scheduleRepo, attendeeRepo, routeRepo, placeRepo)
	scheduleSvc := service.NewScheduleService(scheduleRepo, attendeeRepo, memberRepo, placeRepo, chatRepo, routeSvc, logger)
	attendeeSvc := service.NewAttendeeService(scheduleRepo, attendeeRepo, memberRepo)
	placeSvc := service.NewPlaceService(placeRepo)
	chatSvc := service.NewChatService(scheduleRepo, attendeeRepo, memberRepo, chatRepo)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → CORS →
	// body cap → Recoverer. RequestID generates a unique trace ID per
	// request. RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP
	// (safe behind a proxy). SlogLogger writes one structured JSON log line
	// per request. Recoverer catches panics and returns HTTP 500 instead of
	// crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)

	srv := handler.NewServer(scheduleSvc, attendeeSvc, routeSvc, placeSvc, chatSvc)
	r.Mount("/", srv.Router())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
