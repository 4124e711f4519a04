package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTestConfig is a helper that writes content to a temp file and loads it without validation.
func parseTestConfig(t *testing.T, content string) (*Config, error) {
	t.Helper()
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return LoadWithoutValidation(cfgPath)
}

func TestConfig_LibraryRoots(t *testing.T) {
	content := `
[library]
movies = ["/media/movies", "/mnt/more-movies"]
series = ["/media/tv"]
anime = ["/media/anime"]
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, []string{"/media/movies", "/mnt/more-movies"}, cfg.Library.Movies)
	assert.Equal(t, []string{"/media/tv"}, cfg.Library.Series)
	assert.Equal(t, []string{"/media/anime"}, cfg.Library.Anime)
}

func TestConfig_TMDBTimeout(t *testing.T) {
	content := `
[tmdb]
api_key = "k"
timeout = "30s"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout.Std())
}

func TestConfig_FiltersOverrides(t *testing.T) {
	content := `
[filters]
kids_genres = [10751]
horror_genres = [27, 53]
asian_countries = ["JP", "KR"]
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, []int{10751}, cfg.Filters.KidsGenres)
	assert.Equal(t, []int{27, 53}, cfg.Filters.HorrorGenres)
	assert.Equal(t, []string{"JP", "KR"}, cfg.Filters.AsianCountries)
}

func TestConfig_FiltersOmittedNil(t *testing.T) {
	cfg, err := parseTestConfig(t, `log_level = "debug"`)
	require.NoError(t, err)

	// Nil means "use the built-in policy", never "match nothing".
	assert.Nil(t, cfg.Filters.KidsGenres)
	assert.Nil(t, cfg.Filters.HorrorGenres)
	assert.Nil(t, cfg.Filters.AsianCountries)
}
