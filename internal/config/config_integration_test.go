package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "mediadex", "config.toml")
	if err := WriteDefault(cfgPath); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. Set required env vars (t.Setenv auto-restores on cleanup)
	t.Setenv("TMDB_API_KEY", "test-tmdb-key")

	// 3. Load without validation (library paths don't exist)
	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("LoadWithoutValidation: %v", err)
	}

	// 4. Verify env substitution worked for the API key
	if cfg.TMDB.APIKey != "test-tmdb-key" {
		t.Errorf("expected tmdb key substituted, got %q", cfg.TMDB.APIKey)
	}

	// 5. Verify defaults applied
	if cfg.Database.Path != "./data/mediadex.db" {
		t.Errorf("expected default database path, got %s", cfg.Database.Path)
	}
	if cfg.Enrich.Workers != 8 {
		t.Errorf("expected workers 8 from default config, got %d", cfg.Enrich.Workers)
	}
}
