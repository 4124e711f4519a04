// Package metadata resolves poster images and classification data for
// scanned titles, with request coalescing and a two-tier cache.
package metadata

import (
	"context"

	"github.com/mediadex/mediadex/pkg/tmdb"
)

// Provider is the narrow contract the engine needs from the remote
// metadata service. *tmdb.Client satisfies it.
type Provider interface {
	SearchMovie(ctx context.Context, query string, year int) ([]tmdb.SearchResult, error)
	SearchTV(ctx context.Context, query string, year int) ([]tmdb.SearchResult, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
	PosterImage(ctx context.Context, posterPath string) ([]byte, error)
}

// Classification is the categorization data attached to a movie.
type Classification struct {
	GenreIDs    []int
	CountryCode string // ISO-3166-1 alpha-2
	IsMovie     bool
}

// defaultClassification is what callers get when resolution degrades.
func defaultClassification() Classification {
	return Classification{CountryCode: "US", IsMovie: true}
}

// Outcome reports how a resolution was satisfied, so callers and
// tests can distinguish real results from degraded ones without
// injecting failures.
type Outcome int

const (
	// OutcomeFetched means the value came from the remote provider
	// on this call.
	OutcomeFetched Outcome = iota
	// OutcomeCacheHit means the value came from the memory or disk
	// cache.
	OutcomeCacheHit
	// OutcomeDefaulted means resolution failed and the placeholder
	// or default classification was substituted.
	OutcomeDefaulted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFetched:
		return "fetched"
	case OutcomeCacheHit:
		return "cache-hit"
	case OutcomeDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}
