// internal/repository/progress_repository_test.go
package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_hsk_flashcard/internal/model"
)

func TestFileProgressRepository_MissingFileIsZeroProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	repo := NewFileProgressRepository(path)

	p, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentIndex)
	assert.Empty(t, p.ShuffledIndices)
}

func TestFileProgressRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	repo := NewFileProgressRepository(path)

	saved := &model.Progress{CurrentIndex: 2, ShuffledIndices: []int{3, 0, 2, 1}}
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestFileProgressRepository_UsesExpectedKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	repo := NewFileProgressRepository(path)

	require.NoError(t, repo.Save(ctx, &model.Progress{CurrentIndex: 1, ShuffledIndices: []int{1, 0}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"current_index"`)
	assert.Contains(t, string(raw), `"shuffled_indices"`)
}
