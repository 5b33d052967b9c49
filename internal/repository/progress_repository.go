// internal/repository/progress_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
)

// ProgressRepository persists the patch cursor state between runs.
type ProgressRepository interface {
	Load(ctx context.Context) (*model.Progress, error)
	Save(ctx context.Context, p *model.Progress) error
}

type fileProgressRepository struct {
	path string
}

func NewFileProgressRepository(path string) ProgressRepository {
	return &fileProgressRepository{path: path}
}

// Load reads progress.json. A missing file yields zero progress, which the
// deck service treats as "needs initialization".
func (r *fileProgressRepository) Load(ctx context.Context) (*model.Progress, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &model.Progress{}, nil
		}
		return nil, fmt.Errorf("fileProgressRepository.Load: %w", err)
	}

	var p model.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("fileProgressRepository.Load: parsing %s: %w", r.path, err)
	}
	return &p, nil
}

// Save rewrites progress.json in full.
func (r *fileProgressRepository) Save(ctx context.Context, p *model.Progress) error {
	logger := middleware.GetLogger(ctx)

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("fileProgressRepository.Save: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		logger.Error("Error writing progress file", "error", err, "path", r.path)
		return fmt.Errorf("fileProgressRepository.Save: %w", err)
	}
	return nil
}
