package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_hsk_flashcard/internal/model"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultHSKLevel, cfg.HSKLevel)
	assert.Equal(t, DefaultPatchSize, cfg.PatchSize)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"hsk_level": 3}`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.HSKLevel)
	assert.Equal(t, DefaultPatchSize, cfg.PatchSize, "missing keys keep their defaults")
}

func TestLoad_RejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "level too high", body: `{"hsk_level": 9}`},
		{name: "level zero", body: `{"hsk_level": 0}`},
		{name: "non-positive patch size", body: `{"words_per_patch": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.body), 0o644))

			_, err := Load(dir)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.HSKLevel = 4
	cfg.PatchSize = 25
	require.NoError(t, cfg.Save())

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.HSKLevel)
	assert.Equal(t, 25, reloaded.PatchSize)
}
