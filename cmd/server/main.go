package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prepworks/satprep/internal/platform/cache"
	"github.com/prepworks/satprep/internal/platform/config"
	"github.com/prepworks/satprep/internal/platform/database"
	"github.com/prepworks/satprep/internal/questions"
	"github.com/prepworks/satprep/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := server.RunMigrations(ctx, pool, os.DirFS(cfg.Database.MigrationsDir)); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisCache, err := cache.Connect(ctx, cfg.Cache.URL)
	if err != nil {
		slog.Error("failed to connect to cache", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()

	store, err := server.NewPostgresStore(pool)
	if err != nil {
		slog.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	bank := questions.NewBank(os.DirFS(cfg.Data.Dir))
	auth := server.NewAuth(store, redisCache, cfg.Auth)
	app := server.New(bank, store, redisCache, auth)

	// Warm the bank before accepting traffic so the first request does
	// not pay the ingestion cost, and log what the catalog yielded.
	for _, report := range bank.Reports() {
		if report.Err != "" {
			slog.Warn("dataset failed to load", "dataset", report.Dataset, "error", report.Err)
			continue
		}
		slog.Info("dataset loaded", "dataset", report.Dataset,
			"stage", report.Stage, "questions", report.Questions, "duplicates", report.Duplicates)
	}
	slog.Info("question bank ready", "questions", len(bank.Questions()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
