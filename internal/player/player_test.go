package player

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLauncher_Play(t *testing.T) {
	file := filepath.Join(t.TempDir(), "movie.mkv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// "true" exits immediately, which is all Play needs to observe.
	l := New("true", testLogger())
	assert.NoError(t, l.Play(file))
}

func TestLauncher_Play_MissingFile(t *testing.T) {
	l := New("true", testLogger())
	err := l.Play(filepath.Join(t.TempDir(), "missing.mkv"))
	assert.Error(t, err)
}

func TestLauncher_Play_MissingPlayer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "movie.mkv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	l := New("definitely-not-a-player-binary", testLogger())
	err := l.Play(file)
	assert.Error(t, err)
}
