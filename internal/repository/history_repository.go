//go:generate mockery --name HistoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
)

// HistoryRepository stores finished quiz sessions.
type HistoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, rec *model.SessionRecord) error
	FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]*model.SessionRecord, error)
	Aggregate(ctx context.Context, db *gorm.DB) (*model.HistoryStats, error)
}

type gormHistoryRepository struct{}

func NewGormHistoryRepository() HistoryRepository {
	return &gormHistoryRepository{}
}

func (r *gormHistoryRepository) Create(ctx context.Context, db *gorm.DB, rec *model.SessionRecord) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(rec)
	if result.Error != nil {
		logger.Error("Error creating session record in DB",
			"error", result.Error,
			"session_id", rec.SessionID.String(),
		)
		return fmt.Errorf("gormHistoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormHistoryRepository) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]*model.SessionRecord, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.SessionRecord
	result := db.WithContext(ctx).Order("finished_at DESC").Limit(limit).Find(&records)
	if result.Error != nil {
		logger.Error("Error finding session records in DB", "error", result.Error)
		return nil, fmt.Errorf("gormHistoryRepository.FindRecent: %w", result.Error)
	}
	return records, nil
}

func (r *gormHistoryRepository) Aggregate(ctx context.Context, db *gorm.DB) (*model.HistoryStats, error) {
	logger := middleware.GetLogger(ctx)
	var stats model.HistoryStats
	row := db.WithContext(ctx).Model(&model.SessionRecord{}).
		Select("COUNT(*) AS sessions, COALESCE(SUM(asked), 0) AS asked, COALESCE(SUM(correct), 0) AS correct").
		Row()
	if err := row.Scan(&stats.Sessions, &stats.Asked, &stats.Correct); err != nil {
		logger.Error("Error aggregating session history", "error", err)
		return nil, fmt.Errorf("gormHistoryRepository.Aggregate: %w", err)
	}
	if stats.Asked > 0 {
		stats.Accuracy = 100 * float64(stats.Correct) / float64(stats.Asked)
	}
	return &stats, nil
}
