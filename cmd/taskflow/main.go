// Command taskflow runs the TaskFlow REST API server.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/abubakkersiddiqq/taskflow/internal/api"
	"github.com/abubakkersiddiqq/taskflow/internal/auth"
	"github.com/abubakkersiddiqq/taskflow/internal/config"
	"github.com/abubakkersiddiqq/taskflow/internal/engine"
	"github.com/abubakkersiddiqq/taskflow/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.Error("creating data directory", "error", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		logger.Error("opening store", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	eng := engine.New(st, logger)
	authSvc := auth.NewService(st, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	server := api.NewServer(eng, authSvc)

	logger.Info("starting server", "addr", cfg.ListenAddr, "db", cfg.DatabasePath)
	if err := server.Run(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
