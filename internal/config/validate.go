// internal/config/validate.go
package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// At least one library required
	if len(c.Library.Movies) == 0 && len(c.Library.Series) == 0 && len(c.Library.Anime) == 0 {
		errs = append(errs, "library: at least one library root (movies, series, or anime) must be configured")
	}

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if c.TMDB.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must not be negative, got %s", c.TMDB.Timeout.Std()))
	}

	if c.Enrich.Workers < 0 {
		errs = append(errs, fmt.Sprintf("enrich.workers: must not be negative, got %d", c.Enrich.Workers))
	}

	return errs
}

// Warnings reports non-fatal issues, currently library roots that do
// not exist. A missing root is skipped at scan time, so it never
// blocks loading, but surfacing it early saves a confusing empty scan.
func (c *Config) Warnings() []string {
	var warns []string

	for _, group := range []struct {
		name  string
		roots []string
	}{
		{"movies", c.Library.Movies},
		{"series", c.Library.Series},
		{"anime", c.Library.Anime},
	} {
		for _, root := range group.roots {
			if _, err := os.Stat(root); os.IsNotExist(err) {
				warns = append(warns, fmt.Sprintf("library.%s: directory %q does not exist", group.name, root))
			}
		}
	}

	return warns
}
