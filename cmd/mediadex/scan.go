package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mediadex/mediadex/internal/library"
	"github.com/mediadex/mediadex/internal/metadata"
)

var scanSkipEnrich bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan library folders and refresh the catalog",
	Long: `Scan walks the configured library roots, builds movie and series
entities from filenames, enriches them with posters and classification
metadata, and replaces the stored catalog.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanSkipEnrich, "no-enrich", false, "Skip metadata enrichment (offline scan)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("metadata engine: %w", err)
	}

	store, db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scanner := library.NewScanner(engine.Placeholder(), logger)

	movies, err := scanner.ScanMovies(cfg.Library.Movies)
	if err != nil {
		return fmt.Errorf("scan movies: %w", err)
	}

	// Anime folders have series layout; they share the series pass.
	seriesRoots := append(append([]string{}, cfg.Library.Series...), cfg.Library.Anime...)
	series, err := scanner.ScanSeries(seriesRoots)
	if err != nil {
		return fmt.Errorf("scan series: %w", err)
	}

	if !scanSkipEnrich {
		enricher := metadata.NewEnricher(engine, cfg.Enrich.Workers, logger)

		enricher.EnrichMovies(ctx, movies, func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rEnriching movies %d/%d", done, total)
		})
		if len(movies) > 0 {
			fmt.Fprintln(os.Stderr)
		}

		enricher.EnrichSeries(ctx, series, func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rEnriching series %d/%d", done, total)
		})
		if len(series) > 0 {
			fmt.Fprintln(os.Stderr)
		}
	}

	if err := store.ReplaceMovies(movies); err != nil {
		return fmt.Errorf("store movies: %w", err)
	}
	if err := store.ReplaceSeries(series); err != nil {
		return fmt.Errorf("store series: %w", err)
	}

	episodes := 0
	for _, s := range series {
		for _, season := range s.Seasons {
			episodes += len(season.Episodes)
		}
	}

	if jsonOutput {
		printJSON(map[string]any{
			"movies":   len(movies),
			"series":   len(series),
			"episodes": episodes,
		})
		return nil
	}

	fmt.Printf("Catalog updated: %d movies, %d series (%d episodes)\n", len(movies), len(series), episodes)
	return nil
}
