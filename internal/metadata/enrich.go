package metadata

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mediadex/mediadex/internal/library"
)

// defaultWorkers bounds concurrent enrichment resolutions.
const defaultWorkers = 8

// movieUpdate carries one resolved enrichment back to the entity
// owner. Workers never touch entities directly; the collector applies
// updates, so all mutation happens on the calling goroutine.
type movieUpdate struct {
	index  int
	poster string
	info   Classification
}

type seriesUpdate struct {
	index  int
	poster string
}

// Enricher schedules asynchronous enrichment of scanned entities
// against the engine with a bounded worker pool.
type Enricher struct {
	engine  *Engine
	workers int
	log     *slog.Logger
}

// NewEnricher creates an enricher. workers <= 0 selects the default
// pool size.
func NewEnricher(engine *Engine, workers int, log *slog.Logger) *Enricher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		engine:  engine,
		workers: workers,
		log:     log.With("component", "enricher"),
	}
}

// EnrichMovies resolves poster and classification for every movie,
// applying results to the entities as each completes. Completion
// order is unspecified; progress is called after each applied update
// with a monotonically increasing done count against the fixed total.
// EnrichMovies returns once every scheduled task has completed.
func (e *Enricher) EnrichMovies(ctx context.Context, movies []*library.Movie, progress func(done, total int)) {
	total := len(movies)
	if total == 0 {
		return
	}

	updates := make(chan movieUpdate)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	go func() {
		for i := range movies {
			i := i
			m := movies[i]
			g.Go(func() error {
				poster, outcome := e.engine.Poster(ctx, m.Title, m.Year)
				info, _ := e.engine.MovieInfo(ctx, m.Title, m.Year)
				if outcome == OutcomeDefaulted {
					e.log.Debug("enrichment degraded", "title", m.Title)
				}
				updates <- movieUpdate{index: i, poster: poster, info: info}
				return nil
			})
		}
		_ = g.Wait()
		close(updates)
	}()

	done := 0
	for u := range updates {
		m := movies[u.index]
		m.PosterPath = u.poster
		m.GenreIDs = u.info.GenreIDs
		m.CountryCode = u.info.CountryCode
		m.IsMovie = u.info.IsMovie
		done++
		if progress != nil {
			progress(done, total)
		}
	}
}

// EnrichSeries resolves posters for series entities. Series are keyed
// by title alone, never by year, and get no classification fetch.
func (e *Enricher) EnrichSeries(ctx context.Context, series []*library.Series, progress func(done, total int)) {
	total := len(series)
	if total == 0 {
		return
	}

	updates := make(chan seriesUpdate)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	go func() {
		for i := range series {
			i := i
			s := series[i]
			g.Go(func() error {
				poster, _ := e.engine.Poster(ctx, s.Title, 0)
				updates <- seriesUpdate{index: i, poster: poster}
				return nil
			})
		}
		_ = g.Wait()
		close(updates)
	}()

	done := 0
	for u := range updates {
		series[u.index].PosterPath = u.poster
		done++
		if progress != nil {
			progress(done, total)
		}
	}
}
