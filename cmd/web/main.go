// cmd/web/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_hsk_flashcard/internal/config"
	"go_hsk_flashcard/internal/handlers"
	"go_hsk_flashcard/internal/middleware"
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
	slog.Info("Application starting...")

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
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	wordRepo := repository.NewFileWordRepository(cfg.ResourceDir())
	progRepo := repository.NewFileProgressRepository(cfg.ProgressFile())
	revRepo := repository.NewFileRevisionRepository(cfg.RevisionFile())
	histRepo := repository.NewGormHistoryRepository()
	shuffler := service.NewShuffler()

	app, err := service.NewApp(context.Background(), cfg, db, wordRepo, progRepo, revRepo, histRepo, shuffler)
	if err != nil {
		slog.Error("Error initializing application", slog.Any("error", err))
		os.Exit(1)
	}

	deckHandler := handlers.NewDeckHandler(app, logger)
	sessionHandler := handlers.NewSessionHandler(app, logger)
	configHandler := handlers.NewConfigHandler(app, logger)
	historyHandler := handlers.NewHistoryHandler(app, logger)
	revisionHandler := handlers.NewRevisionHandler(app, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", deckHandler.GetStatus)

		r.Route("/deck", func(r chi.Router) {
			r.Get("/current", deckHandler.GetCurrentPatch)
			r.Get("/previous", deckHandler.GetPreviousPatch)
			r.Post("/advance", deckHandler.Advance)
			r.Post("/retreat", deckHandler.Retreat)
			r.Post("/reset", deckHandler.Reset)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Start)
			r.Get("/question", sessionHandler.GetQuestion)
			r.Post("/answer", sessionHandler.SubmitAnswer)
			r.Post("/finish", sessionHandler.Finish)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", configHandler.Get)
			r.Put("/", configHandler.Update)
			r.Post("/reset-progress", configHandler.ResetProgress)
		})

		r.Get("/revision", revisionHandler.List)
		r.Get("/history", historyHandler.Get)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Server exited gracefully")
}

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
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
