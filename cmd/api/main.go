package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/twaiba/faithful-registry/internal/bootstrap"
	"github.com/twaiba/faithful-registry/internal/config"
	"github.com/twaiba/faithful-registry/internal/infrastructure/cache"
	"github.com/twaiba/faithful-registry/internal/infrastructure/email"
	"github.com/twaiba/faithful-registry/internal/infrastructure/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		slog.Error("parse database dsn", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		slog.Error("create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	codes := cache.NewTTLStore()
	defer codes.Close()

	var sender email.Sender = email.NewNoopSender()
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	} else {
		slog.Warn("no resend api key configured, emails are logged only")
	}

	server := bootstrap.NewHTTPServer(cfg, bootstrap.Dependencies{
		DB:     db,
		Pool:   pool,
		Codes:  codes,
		Files:  file.NewLocalStore(cfg.Files.BaseDir),
		Sender: sender,
	})

	go func() {
		if err := server.Start(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
