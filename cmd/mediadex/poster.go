package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var posterCmd = &cobra.Command{
	Use:   "poster",
	Short: "Manage poster overrides",
}

var posterSetCmd = &cobra.Command{
	Use:   "set <title> [year] <image>",
	Short: "Install a custom poster image for a title",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runPosterSet,
}

var posterResetCmd = &cobra.Command{
	Use:   "reset <title> [year]",
	Short: "Drop the cached or overridden poster so the next scan fetches fresh",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPosterReset,
}

func init() {
	posterCmd.AddCommand(posterSetCmd)
	posterCmd.AddCommand(posterResetCmd)
	rootCmd.AddCommand(posterCmd)
}

// titleYear splits trailing-year argument forms: ["Dune" "2021"] and
// ["Dune"] both parse; a non-numeric second arg is an error.
func titleYear(args []string) (string, int, error) {
	if len(args) == 1 {
		return args[0], 0, nil
	}
	year, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid year %q", args[1])
	}
	return args[0], year, nil
}

func runPosterSet(cmd *cobra.Command, args []string) error {
	imagePath := args[len(args)-1]
	name, year, err := titleYear(args[:len(args)-1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	if err := engine.SetOverride(name, year, imagePath); err != nil {
		return fmt.Errorf("set poster: %w", err)
	}

	// Keep the stored catalog in step when the title is already indexed.
	store, db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	path, _ := engine.Poster(cmd.Context(), name, year)
	if err := store.UpdateMoviePoster(name, year, path); err == nil {
		fmt.Printf("Poster set for %s\n", name)
	} else {
		fmt.Printf("Poster set for %s (not in catalog; will apply on next scan)\n", name)
	}
	return nil
}

func runPosterReset(cmd *cobra.Command, args []string) error {
	name, year, err := titleYear(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	if err := engine.Reset(name, year); err != nil {
		return fmt.Errorf("reset poster: %w", err)
	}

	fmt.Printf("Poster reset for %s; run 'mediadex scan' to fetch fresh\n", name)
	return nil
}
