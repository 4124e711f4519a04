package metadata

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Flight-map key prefixes keep poster and classification resolutions
// for the same title from coalescing into each other.
const (
	keyPrefixPoster = "poster:"
	keyPrefixInfo   = "info:"
)

// Engine resolves posters and classification metadata for titles.
//
// Every resolution runs through three defenses: a process-lifetime
// memory cache, a singleflight group that coalesces concurrent
// requests for the same cache key into one provider round-trip, and
// (for posters) the disk cache. Failures degrade to the placeholder
// or default classification and are never cached, so a later call can
// succeed once connectivity returns.
type Engine struct {
	provider Provider
	cache    *DiskCache
	log      *slog.Logger

	mu      sync.RWMutex
	posters map[string]string
	infos   map[string]Classification

	flight singleflight.Group
}

// NewEngine creates an engine backed by the given provider and cache
// directory.
func NewEngine(provider Provider, cacheDir string, log *slog.Logger) (*Engine, error) {
	cache, err := NewDiskCache(cacheDir)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		provider: provider,
		cache:    cache,
		log:      log.With("component", "metadata"),
		posters:  make(map[string]string),
		infos:    make(map[string]Classification),
	}, nil
}

// Placeholder returns the sentinel poster path used for unresolved
// titles.
func (e *Engine) Placeholder() string {
	return e.cache.Placeholder()
}

type posterResult struct {
	path    string
	outcome Outcome
}

// Poster resolves the poster image path for a title (year 0 = none).
// It never fails: on any provider or cache error the placeholder path
// comes back with OutcomeDefaulted.
func (e *Engine) Poster(ctx context.Context, title string, year int) (string, Outcome) {
	key := CacheKey(title, year)

	if path, ok := e.cachedPoster(key); ok {
		return path, OutcomeCacheHit
	}

	v, _, _ := e.flight.Do(keyPrefixPoster+key, func() (any, error) {
		// Re-check under the flight: another caller may have resolved
		// this key while we waited to enter.
		if path, ok := e.cachedPoster(key); ok {
			return posterResult{path, OutcomeCacheHit}, nil
		}
		if path, ok := e.cache.Lookup(key); ok {
			e.storePoster(key, path)
			return posterResult{path, OutcomeCacheHit}, nil
		}

		path, ok := e.fetchPoster(ctx, title, year, key)
		if !ok {
			// Placeholder is never cached.
			return posterResult{e.cache.Placeholder(), OutcomeDefaulted}, nil
		}
		e.storePoster(key, path)
		return posterResult{path, OutcomeFetched}, nil
	})

	r := v.(posterResult)
	return r.path, r.outcome
}

// fetchPoster performs the remote resolution: movie search, TV search
// fallback, first hit wins, image download, disk persist.
func (e *Engine) fetchPoster(ctx context.Context, title string, year int, key string) (string, bool) {
	results, err := e.provider.SearchMovie(ctx, title, year)
	if err != nil || len(results) == 0 {
		results, err = e.provider.SearchTV(ctx, title, year)
	}
	if err != nil {
		e.log.Debug("poster search failed", "title", title, "error", err)
		return "", false
	}
	if len(results) == 0 {
		e.log.Debug("poster search empty", "title", title, "year", year)
		return "", false
	}

	// No ranking: the provider's first result is taken as-is.
	first := results[0]
	if first.PosterPath == "" {
		return "", false
	}

	data, err := e.provider.PosterImage(ctx, first.PosterPath)
	if err != nil {
		e.log.Debug("poster download failed", "title", title, "error", err)
		return "", false
	}

	path, err := e.cache.WritePoster(key, data)
	if err != nil {
		// Non-fatal: skip persistence for this key, next call re-fetches.
		e.log.Warn("poster cache write failed", "key", key, "error", err)
		return "", false
	}
	return path, true
}

type infoResult struct {
	info    Classification
	outcome Outcome
}

// MovieInfo resolves classification metadata for a movie title. It
// never fails: any provider error degrades to the default
// classification (no genres, "US", movie) with OutcomeDefaulted.
func (e *Engine) MovieInfo(ctx context.Context, title string, year int) (Classification, Outcome) {
	key := CacheKey(title, year)

	if info, ok := e.cachedInfo(key); ok {
		return info, OutcomeCacheHit
	}

	v, _, _ := e.flight.Do(keyPrefixInfo+key, func() (any, error) {
		if info, ok := e.cachedInfo(key); ok {
			return infoResult{info, OutcomeCacheHit}, nil
		}

		info, ok := e.fetchInfo(ctx, title, year)
		if !ok {
			// Defaults are never cached, for the same reason
			// placeholders are not.
			return infoResult{defaultClassification(), OutcomeDefaulted}, nil
		}
		e.storeInfo(key, info)
		return infoResult{info, OutcomeFetched}, nil
	})

	r := v.(infoResult)
	return r.info, r.outcome
}

func (e *Engine) fetchInfo(ctx context.Context, title string, year int) (Classification, bool) {
	results, err := e.provider.SearchMovie(ctx, title, year)
	if err != nil || len(results) == 0 {
		if err != nil {
			e.log.Debug("metadata search failed", "title", title, "error", err)
		}
		return Classification{}, false
	}

	details, err := e.provider.MovieDetails(ctx, results[0].ID)
	if err != nil {
		e.log.Debug("metadata details failed", "title", title, "id", results[0].ID, "error", err)
		return Classification{}, false
	}

	info := Classification{CountryCode: "US", IsMovie: true}
	for _, g := range details.Genres {
		info.GenreIDs = append(info.GenreIDs, g.ID)
	}
	if len(details.ProductionCountries) > 0 && details.ProductionCountries[0].Code != "" {
		info.CountryCode = details.ProductionCountries[0].Code
	}
	return info, true
}

// SetOverride installs a user-supplied poster image for the title,
// taking precedence over future fetches until Reset. The disk copy is
// installed first; only then does the memory cache change, so a crash
// mid-operation leaves the disk file authoritative.
func (e *Engine) SetOverride(title string, year int, imagePath string) error {
	key := CacheKey(title, year)
	dest, err := e.cache.ImportImage(key, imagePath)
	if err != nil {
		return err
	}
	e.storePoster(key, dest)
	return nil
}

// Reset deletes the cached (or overridden) poster for the title, on
// disk and in memory, so the next Poster call fetches fresh.
func (e *Engine) Reset(title string, year int) error {
	key := CacheKey(title, year)
	if err := e.cache.Remove(key); err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.posters, key)
	delete(e.infos, key)
	e.mu.Unlock()
	return nil
}

// Clear drops the whole memory cache. Disk entries stay.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.posters = make(map[string]string)
	e.infos = make(map[string]Classification)
	e.mu.Unlock()
}

func (e *Engine) cachedPoster(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	path, ok := e.posters[key]
	return path, ok
}

func (e *Engine) storePoster(key, path string) {
	e.mu.Lock()
	e.posters[key] = path
	e.mu.Unlock()
}

func (e *Engine) cachedInfo(key string) (Classification, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info, ok := e.infos[key]
	return info, ok
}

func (e *Engine) storeInfo(key string, info Classification) {
	e.mu.Lock()
	e.infos[key] = info
	e.mu.Unlock()
}
