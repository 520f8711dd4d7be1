// Package config loads atlas settings from config.toml, the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "atlas"

// Config holds all atlas configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
	Categories CategoryConfig   `toml:"categories"`
}

// GeneralConfig holds storage and dashboard preferences.
type GeneralConfig struct {
	DBPath        string `toml:"db_path,omitempty"`
	TopCategories int    `toml:"top_categories"`
	TrendMonths   int    `toml:"trend_months"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			TopCategories: 5,
			TrendMonths:   6,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
		Categories: DefaultCategories(),
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DBPath returns the database path, defaulting to the data dir.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "atlas.db")
}

// LogPath returns the log file path, defaulting to the data dir.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(DataDir(), "atlas.log")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file in the working directory is
// read first when present.
func Load() (Config, error) {
	cfg := DefaultConfig()

	_ = godotenv.Load()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ATLAS_DB_PATH"); v != "" {
		c.General.DBPath = v
	}
	if v := os.Getenv("ATLAS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ATLAS_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ATLAS_THEME"); v != "" {
		c.Appearance.Theme = v
	}
	if v := os.Getenv("ATLAS_TOP_CATEGORIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ATLAS_TOP_CATEGORIES: %w", err)
		}
		c.General.TopCategories = n
	}
	return nil
}

var validLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var problems []string

	if c.General.TopCategories < 0 {
		problems = append(problems, fmt.Sprintf("top_categories %d: must not be negative", c.General.TopCategories))
	}
	if c.General.TrendMonths < 1 || c.General.TrendMonths > 24 {
		problems = append(problems, fmt.Sprintf("trend_months %d: must be between 1 and 24", c.General.TrendMonths))
	}

	levelOK := false
	for _, l := range validLevels {
		if strings.EqualFold(c.Log.Level, l) {
			levelOK = true
			break
		}
	}
	if !levelOK {
		problems = append(problems, fmt.Sprintf("log level %q: must be one of %v", c.Log.Level, validLevels))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
