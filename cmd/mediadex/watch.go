package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track watch positions for series",
}

var watchShowCmd = &cobra.Command{
	Use:   "show [title]",
	Short: "Show watch positions (all series, or one)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatchShow,
}

var watchSetCmd = &cobra.Command{
	Use:   "set <title> <season> <episode>",
	Short: "Record the last watched episode of a series",
	Args:  cobra.ExactArgs(3),
	RunE:  runWatchSet,
}

var watchClearCmd = &cobra.Command{
	Use:   "clear <title>",
	Short: "Forget the watch position for a series",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchClear,
}

func init() {
	watchCmd.AddCommand(watchShowCmd)
	watchCmd.AddCommand(watchSetCmd)
	watchCmd.AddCommand(watchClearCmd)
	rootCmd.AddCommand(watchCmd)
}

func openWatchStore() (*watch.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return watch.Open(cfg.Watch.Path)
}

func runWatchShow(cmd *cobra.Command, args []string) error {
	store, err := openWatchStore()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		p, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("no watch position for %q", args[0])
		}
		if jsonOutput {
			printJSON(map[string]any{"title": args[0], "season": p.Season, "episode": p.Episode})
			return nil
		}
		fmt.Printf("%s: S%02dE%02d\n", args[0], p.Season, p.Episode)
		return nil
	}

	titles := store.Titles()
	if jsonOutput {
		all := make(map[string]watch.Position, len(titles))
		for _, t := range titles {
			all[t], _ = store.Get(t)
		}
		printJSON(all)
		return nil
	}
	if len(titles) == 0 {
		fmt.Println("No watch positions recorded.")
		return nil
	}
	for _, t := range titles {
		p, _ := store.Get(t)
		fmt.Printf("%s: S%02dE%02d\n", t, p.Season, p.Episode)
	}
	return nil
}

func runWatchSet(cmd *cobra.Command, args []string) error {
	season, err := strconv.Atoi(args[1])
	if err != nil || season < 0 {
		return fmt.Errorf("invalid season %q", args[1])
	}
	episode, err := strconv.Atoi(args[2])
	if err != nil || episode < 0 {
		return fmt.Errorf("invalid episode %q", args[2])
	}

	store, err := openWatchStore()
	if err != nil {
		return err
	}
	if err := store.Set(args[0], watch.Position{Season: season, Episode: episode}); err != nil {
		return err
	}
	fmt.Printf("%s: S%02dE%02d\n", args[0], season, episode)
	return nil
}

func runWatchClear(cmd *cobra.Command, args []string) error {
	store, err := openWatchStore()
	if err != nil {
		return err
	}
	if err := store.Remove(args[0]); err != nil {
		return err
	}
	fmt.Printf("Cleared watch position for %s\n", args[0])
	return nil
}
