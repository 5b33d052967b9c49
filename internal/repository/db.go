// internal/repository/db.go
package repository

import (
	"fmt"
	"log/slog"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go_hsk_flashcard/internal/model"
)

// NewDB opens the local sqlite history database, bridging GORM's logging
// into slog, and migrates the schema.
func NewDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	gormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(500 * time.Millisecond),
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to open history database", "error", err, "path", path)
		return nil, fmt.Errorf("repository.NewDB: %w", err)
	}

	if err := db.AutoMigrate(&model.SessionRecord{}); err != nil {
		appLogger.Error("Failed to migrate history database", "error", err)
		return nil, fmt.Errorf("repository.NewDB: migrate: %w", err)
	}

	appLogger.Info("History database ready", "path", path)
	return db, nil
}
