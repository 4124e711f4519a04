// Package player launches an external video player on a media file.
package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Launcher starts the configured player command detached from the
// current process, so the CLI returns while playback continues.
type Launcher struct {
	command string
	log     *slog.Logger
}

// New creates a launcher for the given player command ("vlc", "mpv",
// an absolute path, anything on PATH).
func New(command string, log *slog.Logger) *Launcher {
	if log == nil {
		log = slog.Default()
	}
	return &Launcher{
		command: command,
		log:     log.With("component", "player"),
	}
}

// Play launches the player on the file. The file must exist; the
// player process is released, not waited on.
func (l *Launcher) Play(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("media file: %w", err)
	}

	cmd := exec.Command(l.command, filePath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player %s: %w", l.command, err)
	}
	l.log.Debug("player started", "command", l.command, "file", filePath, "pid", cmd.Process.Pid)

	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release player process: %w", err)
	}
	return nil
}
