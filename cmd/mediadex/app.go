package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mediadex/mediadex/internal/catalog"
	"github.com/mediadex/mediadex/internal/config"
	"github.com/mediadex/mediadex/internal/metadata"
	"github.com/mediadex/mediadex/pkg/tmdb"
)

// openCatalog opens the catalog database, creating the data directory
// and schema on first use.
func openCatalog(cfg *config.Config) (*catalog.Store, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := catalog.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewStore(db), db, nil
}

// newEngine assembles the metadata engine from config: TMDB client,
// poster cache directory, memory cache.
func newEngine(cfg *config.Config, logger *slog.Logger) (*metadata.Engine, error) {
	opts := []tmdb.Option{tmdb.WithLogger(logger)}
	if cfg.TMDB.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	if cfg.TMDB.ImageBaseURL != "" {
		opts = append(opts, tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL))
	}
	if cfg.TMDB.Timeout > 0 {
		opts = append(opts, tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout.Std()}))
	}
	client := tmdb.New(cfg.TMDB.APIKey, opts...)

	return metadata.NewEngine(client, cfg.Cache.Dir, logger)
}
