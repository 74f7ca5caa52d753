package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Provider identifiers for the generation backend
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration
type Config struct {
	Version    int              `toml:"version"`
	Browser    BrowserConfig    `toml:"browser"`
	Generation GenerationConfig `toml:"generation"`
	Injection  InjectionConfig  `toml:"injection"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Schedule   ScheduleConfig   `toml:"schedule"`
}

type BrowserConfig struct {
	Headless bool `toml:"headless"`
	// WatchIntervalMs is how often the agent drains the page-side
	// trigger queue and re-checks for navigation.
	WatchIntervalMs int `toml:"watch_interval_ms"`
}

type GenerationConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	// Generation parameters are fixed per install, not tunable per call.
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
	TopK            int     `toml:"top_k"`
	TopP            float64 `toml:"top_p"`
}

type InjectionConfig struct {
	// PollAttempts x PollIntervalMs is the hard cap on waiting for the
	// compose input to appear after the reply action is triggered.
	PollAttempts   int `toml:"poll_attempts"`
	PollIntervalMs int `toml:"poll_interval_ms"`
	// SettleDelayMs is a fixed wait before each write attempt to give
	// the page's own async UI time to render.
	SettleDelayMs int `toml:"settle_delay_ms"`
	WriteAttempts int `toml:"write_attempts"`
}

type CatalogConfig struct {
	Enabled bool   `toml:"enabled"`
	Brand   string `toml:"brand"`
}

type ScheduleConfig struct {
	// PruneSchedule is a cron expression for pruning old history rows.
	PruneSchedule   string `toml:"prune_schedule"`
	HistoryKeepDays int    `toml:"history_keep_days"`
	// RevalidateSchedule is a cron expression for the periodic API key check.
	RevalidateSchedule string `toml:"revalidate_schedule"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Browser: BrowserConfig{
			Headless:        false,
			WatchIntervalMs: 250,
		},
		Generation: GenerationConfig{
			Provider:        ProviderGemini,
			Model:           "gemini-1.5-flash",
			Temperature:     0.7,
			MaxOutputTokens: 150,
			TopK:            40,
			TopP:            0.95,
		},
		Injection: InjectionConfig{
			PollAttempts:   25,
			PollIntervalMs: 200,
			SettleDelayMs:  500,
			WriteAttempts:  3,
		},
		Catalog: CatalogConfig{
			Enabled: true,
			Brand:   "imjacoblopez",
		},
		Schedule: ScheduleConfig{
			PruneSchedule:      "0 4 * * *",
			HistoryKeepDays:    30,
			RevalidateSchedule: "0 9 * * 1",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "replypilot"), nil
}

// CacheDir returns the platform-appropriate cache directory
func CacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "replypilot"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
