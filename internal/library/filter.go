package library

import (
	"slices"
	"strings"
)

// Category is a display-filter bucket for movies.
type Category string

const (
	CategoryAll    Category = "all"
	CategoryKids   Category = "kids"
	CategoryHorror Category = "horror"
	CategoryAsian  Category = "asian"
	CategoryMovies Category = "movies"
)

// Categories lists the valid filter categories.
var Categories = []Category{CategoryAll, CategoryKids, CategoryHorror, CategoryAsian, CategoryMovies}

// ParseCategory validates a category name (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(s))
	return c, slices.Contains(Categories, c)
}

// FilterPolicy holds the provider-taxonomy constants behind the
// category predicates. These mirror one provider's genre IDs and
// country codes and are a policy choice, so they stay configurable
// rather than baked in.
type FilterPolicy struct {
	KidsGenres     []int    // genre IDs counted as kids content
	HorrorGenres   []int    // genre IDs counted as horror
	AsianCountries []string // ISO-3166-1 alpha-2 production countries
}

// DefaultPolicy returns the stock TMDB-based category policy.
func DefaultPolicy() FilterPolicy {
	return FilterPolicy{
		KidsGenres:     []int{10751, 16}, // Family, Animation
		HorrorGenres:   []int{27},
		AsianCountries: []string{"JP", "KR", "CN", "HK", "TW"},
	}
}

// Apply returns the movies matching both the category predicate and
// the free-text search, preserving input order. It is pure: the input
// slice is never modified, and identical inputs give identical output.
// Entities that have not been enriched yet carry default
// classification values and so are only excluded by predicates those
// defaults fail.
func Apply(movies []*Movie, category Category, search string, policy FilterPolicy) []*Movie {
	search = strings.ToLower(search)

	var out []*Movie
	for _, m := range movies {
		if !matchesCategory(m, category, policy) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesCategory(m *Movie, category Category, p FilterPolicy) bool {
	switch category {
	case CategoryKids:
		return intersects(m.GenreIDs, p.KidsGenres)
	case CategoryHorror:
		return intersects(m.GenreIDs, p.HorrorGenres)
	case CategoryAsian:
		return slices.Contains(p.AsianCountries, m.CountryCode)
	case CategoryMovies:
		// The "everything else" bucket: movies that land in no other category.
		return m.IsMovie &&
			!intersects(m.GenreIDs, p.KidsGenres) &&
			!intersects(m.GenreIDs, p.HorrorGenres) &&
			!slices.Contains(p.AsianCountries, m.CountryCode)
	default:
		return true
	}
}

func intersects(a, b []int) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
