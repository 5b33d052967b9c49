// cmd/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"go_hsk_flashcard/internal/cli"
	"go_hsk_flashcard/internal/config"
	"go_hsk_flashcard/internal/repository"
	"go_hsk_flashcard/internal/service"
)

func main() {
	dataDir := flag.String("data", ".", "directory holding config.json, progress and vocabulary files")
	flag.Parse()

	cfg, err := config.Load(*dataDir)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := buildLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	db, err := repository.NewDB(cfg.HistoryFile(), logger)
	if err != nil {
		slog.Error("Error initializing history database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing history database", slog.Any("error", err))
		}
	}()

	wordRepo := repository.NewFileWordRepository(cfg.ResourceDir())
	progRepo := repository.NewFileProgressRepository(cfg.ProgressFile())
	revRepo := repository.NewFileRevisionRepository(cfg.RevisionFile())
	histRepo := repository.NewGormHistoryRepository()
	shuffler := service.NewShuffler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := service.NewApp(ctx, cfg, db, wordRepo, progRepo, revRepo, histRepo, shuffler)
	if err != nil {
		slog.Error("Error initializing application", slog.Any("error", err))
		os.Exit(1)
	}

	console := cli.NewConsole(app, logger, os.Stdin, os.Stdout)
	if err := console.Run(ctx); err != nil {
		slog.Error("Console exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// buildLogger mirrors the server entrypoint: tint for dev terminals, JSON
// otherwise, selected by APP_ENV.
func buildLogger(level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})
	}
	return slog.New(handler)
}
