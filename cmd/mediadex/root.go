package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/config"
	"github.com/mediadex/mediadex/internal/library"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "mediadex",
	Short: "Local media library indexer",
	Long: `mediadex - local media library indexer

Scans movie and series folders, enriches titles with posters and
classification metadata from TMDB, and answers category and search
queries over the catalog.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: discover)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediadex {{.Version}}\n")
}

// loadConfig resolves the --config flag or falls back to discovery.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, fmt.Errorf("%w\nRun 'mediadex init' to create one", err)
		}
	}
	return config.Load(path)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the CLI logger. Log lines go to stderr so stdout
// stays clean for command output and --json.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

// filterPolicy merges config overrides over the stock category policy.
func filterPolicy(cfg *config.Config) library.FilterPolicy {
	policy := library.DefaultPolicy()
	if len(cfg.Filters.KidsGenres) > 0 {
		policy.KidsGenres = cfg.Filters.KidsGenres
	}
	if len(cfg.Filters.HorrorGenres) > 0 {
		policy.HorrorGenres = cfg.Filters.HorrorGenres
	}
	if len(cfg.Filters.AsianCountries) > 0 {
		policy.AsianCountries = cfg.Filters.AsianCountries
	}
	return policy
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
