// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/viper"

	"go_hsk_flashcard/internal/model"
)

type Config struct {
	HSKLevel  int `mapstructure:"hsk_level"`
	PatchSize int `mapstructure:"words_per_patch"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	dir string // data directory holding config.json and the other state files
}

// Load reads config.json from dir, merging a partial (or absent) file over
// the defaults. A missing file is not an error; the defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, ConfigFileName))
	v.SetConfigType("json")

	v.SetDefault("hsk_level", DefaultHSKLevel)
	v.SetDefault("words_per_patch", DefaultPatchSize)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: reading %s: %w", v.ConfigFileUsed(), err)
		}
		slog.Warn("Config file not found, using defaults", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshalling config: %w", err)
	}
	cfg.dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects out-of-range values so a hand-edited file cannot push the
// application into an impossible state.
func (c *Config) Validate() error {
	if c.HSKLevel < MinHSKLevel || c.HSKLevel > MaxHSKLevel {
		return fmt.Errorf("config: hsk_level %d out of range [%d, %d]: %w",
			c.HSKLevel, MinHSKLevel, MaxHSKLevel, model.ErrInvalidInput)
	}
	if c.PatchSize <= 0 {
		return fmt.Errorf("config: words_per_patch %d must be positive: %w",
			c.PatchSize, model.ErrInvalidInput)
	}
	return nil
}

// Save rewrites config.json with the current values. Only the learner-facing
// keys are persisted; log and server settings stay as authored.
func (c *Config) Save() error {
	v := viper.New()
	v.SetConfigFile(c.ConfigFile())
	v.SetConfigType("json")
	v.Set("hsk_level", c.HSKLevel)
	v.Set("words_per_patch", c.PatchSize)
	v.Set("log.level", c.Log.Level)
	v.Set("server.port", c.Server.Port)
	v.Set("cors.allowed_origins", c.CORS.AllowedOrigins)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

func (c *Config) Dir() string          { return c.dir }
func (c *Config) ConfigFile() string   { return filepath.Join(c.dir, ConfigFileName) }
func (c *Config) ProgressFile() string { return filepath.Join(c.dir, ProgressFileName) }
func (c *Config) RevisionFile() string { return filepath.Join(c.dir, RevisionFileName) }
func (c *Config) HistoryFile() string  { return filepath.Join(c.dir, HistoryFileName) }
func (c *Config) ResourceDir() string  { return filepath.Join(c.dir, ResourceDirName) }
