// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	Enrich   EnrichConfig   `toml:"enrich"`
	Filters  FiltersConfig  `toml:"filters"`
	Player   PlayerConfig   `toml:"player"`
	Watch    WatchConfig    `toml:"watch"`
	LogLevel string         `toml:"log_level"`
}

// LibraryConfig lists the folder roots scanned for each media kind.
type LibraryConfig struct {
	Movies []string `toml:"movies"`
	Series []string `toml:"series"`
	Anime  []string `toml:"anime"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type CacheConfig struct {
	Dir string `toml:"dir"`
}

type TMDBConfig struct {
	APIKey       string   `toml:"api_key"`
	BaseURL      string   `toml:"base_url"`
	ImageBaseURL string   `toml:"image_base_url"`
	Timeout      Duration `toml:"timeout"`
}

// Duration decodes TOML duration strings like "10s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type EnrichConfig struct {
	Workers int `toml:"workers"`
}

// FiltersConfig overrides the built-in category policy. Empty slices
// keep the defaults.
type FiltersConfig struct {
	KidsGenres     []int    `toml:"kids_genres"`
	HorrorGenres   []int    `toml:"horror_genres"`
	AsianCountries []string `toml:"asian_countries"`
}

type PlayerConfig struct {
	Command string `toml:"command"`
}

type WatchConfig struct {
	Path string `toml:"path"`
}

// Load reads and parses the configuration file, then validates it.
// Missing environment variables and validation failures come back
// aggregated in a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &ConfigError{
		Path:    path,
		Missing: missing,
		Errors:  cfg.Validate(),
	}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file but
// skips validation. Used by commands that inspect or repair a config.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/mediadex.db"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "./data/posters"
	}
	if cfg.Watch.Path == "" {
		cfg.Watch.Path = "./data/watched.json"
	}
	if cfg.Player.Command == "" {
		cfg.Player.Command = "vlc"
	}

	return &cfg, missing, nil
}
