package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/catalog"
	"github.com/mediadex/mediadex/internal/library"
	"github.com/mediadex/mediadex/internal/player"
	"github.com/mediadex/mediadex/internal/watch"
)

var playCmd = &cobra.Command{
	Use:   "play <title> [year]",
	Short: "Play a movie, or the next unwatched episode of a series",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	name, year, err := titleYear(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	store, db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	launcher := player.New(cfg.Player.Command, logger)

	// Movies take precedence over a series with the same title.
	movie, err := store.GetMovie(name, year)
	if err == nil {
		fmt.Printf("Playing %s\n", movie.Title)
		return launcher.Play(movie.FilePath)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	return playSeries(store, launcher, cfg.Watch.Path, name)
}

// playSeries plays the episode after the stored watch position and
// advances the position on success.
func playSeries(store *catalog.Store, launcher *player.Launcher, watchPath, name string) error {
	all, err := store.ListSeries()
	if err != nil {
		return err
	}

	var series *library.Series
	for _, s := range all {
		if s.Title == name {
			series = s
			break
		}
	}
	if series == nil {
		return fmt.Errorf("%q is not in the catalog", name)
	}

	positions, err := watch.Open(watchPath)
	if err != nil {
		return err
	}
	pos, _ := positions.Get(name)

	season, episode, ok := nextEpisode(series, pos)
	if !ok {
		return fmt.Errorf("no episode after S%02dE%02d for %s", pos.Season, pos.Episode, name)
	}

	fmt.Printf("Playing %s S%02dE%02d\n", name, season.Number, episode.Number)
	if err := launcher.Play(episode.FilePath); err != nil {
		return err
	}

	return positions.Set(name, watch.Position{Season: season.Number, Episode: episode.Number})
}

// nextEpisode returns the first episode strictly after the position.
// A zero position yields the very first episode.
func nextEpisode(s *library.Series, p watch.Position) (library.Season, library.Episode, bool) {
	for _, season := range s.Seasons {
		if season.Number < p.Season {
			continue
		}
		for _, ep := range season.Episodes {
			if season.Number == p.Season && ep.Number <= p.Episode {
				continue
			}
			return season, ep, true
		}
	}
	return library.Season{}, library.Episode{}, false
}
