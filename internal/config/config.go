package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	UI      UIConfig
	Log     LogConfig
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string
	// Path is the sqlite database file, or the directory for the file backend.
	Path string
	Key  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title               string
	Placeholder         string
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

// LogConfig sets where log output goes while the TUI owns the terminal.
type LogConfig struct {
	File string
}

// Load reads configuration from file and env. Env var overrides use prefix JASKTASKS_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", filepath.Join(home, ".local", "share", "jasktasks", "jasktasks.db"))
	v.SetDefault("storage.key", "tasks")
	v.SetDefault("ui.title", "Task List")
	v.SetDefault("ui.placeholder", "Add a new task")
	v.SetDefault("ui.similarity_threshold", 0.25)
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "jasktasks", "jasktasks.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKTASKS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "jasktasks"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKTASKS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine; a broken one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values Load cannot default away.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("config: storage.path required for %s backend", c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("config: storage.key must not be empty")
	}
	// the file backend uses the key as a file name
	if c.Storage.Backend == BackendFile {
		k := c.Storage.Key
		if k == "." || k == ".." || strings.ContainsAny(k, `/\`) {
			return fmt.Errorf("config: storage.key %q is not a valid file name", k)
		}
	}
	if c.UI.SimilarityThreshold < 0 || c.UI.SimilarityThreshold > 1 {
		return fmt.Errorf("config: ui.similarity_threshold must be within [0,1]")
	}
	return nil
}
