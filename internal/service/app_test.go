// internal/service/app_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_hsk_flashcard/internal/config"
	"go_hsk_flashcard/internal/repository"
)

func TestApp_StatusWithEmptyVocabulary(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	// No resource directory at all: the store starts empty.
	app, err := NewApp(ctx, cfg, nil,
		repository.NewFileWordRepository(cfg.ResourceDir()),
		repository.NewFileProgressRepository(cfg.ProgressFile()),
		repository.NewFileRevisionRepository(cfg.RevisionFile()),
		repository.NewGormHistoryRepository(),
		NewSeededShuffler(5))
	require.NoError(t, err)

	status, err := app.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalWords)
	assert.Equal(t, 1, status.CurrentPatch)
	assert.Equal(t, 1, status.TotalPatches, "the header never reads patch 1/0")
}
