package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediadex/mediadex/internal/library"
)

func testMovies() []*library.Movie {
	return []*library.Movie{
		{Title: "Toy Story", GenreIDs: []int{16, 10751}, CountryCode: "US", IsMovie: true},
		{Title: "Saw", GenreIDs: []int{27}, CountryCode: "US", IsMovie: true},
		{Title: "Oldboy", GenreIDs: []int{18, 53}, CountryCode: "KR", IsMovie: true},
		{Title: "Heat", GenreIDs: []int{80, 18}, CountryCode: "US", IsMovie: true},
		{Title: "Pending Fetch", IsMovie: true}, // not yet enriched
	}
}

func TestApply_All(t *testing.T) {
	movies := testMovies()
	got := library.Apply(movies, library.CategoryAll, "", library.DefaultPolicy())
	require.Len(t, got, len(movies))
	for i := range movies {
		assert.Same(t, movies[i], got[i], "order must be preserved")
	}
}

func TestApply_Categories(t *testing.T) {
	movies := testMovies()
	policy := library.DefaultPolicy()

	tests := []struct {
		category library.Category
		want     []string
	}{
		{library.CategoryKids, []string{"Toy Story"}},
		{library.CategoryHorror, []string{"Saw"}},
		{library.CategoryAsian, []string{"Oldboy"}},
		// Everything-else bucket: unenriched entities keep their
		// defaults and stay visible here.
		{library.CategoryMovies, []string{"Heat", "Pending Fetch"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := library.Apply(movies, tt.category, "", policy)
			titles := make([]string, len(got))
			for i, m := range got {
				titles[i] = m.Title
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestApply_Search(t *testing.T) {
	movies := testMovies()
	policy := library.DefaultPolicy()

	got := library.Apply(movies, library.CategoryAll, "oLd", policy)
	require.Len(t, got, 1)
	assert.Equal(t, "Oldboy", got[0].Title, "search is a case-insensitive substring match")

	got = library.Apply(movies, library.CategoryKids, "toy", policy)
	require.Len(t, got, 1)
	assert.Equal(t, "Toy Story", got[0].Title, "category and search combine")

	got = library.Apply(movies, library.CategoryKids, "saw", policy)
	assert.Empty(t, got)
}

func TestApply_Pure(t *testing.T) {
	movies := testMovies()
	policy := library.DefaultPolicy()

	first := library.Apply(movies, library.CategoryHorror, "", policy)
	second := library.Apply(movies, library.CategoryHorror, "", policy)
	assert.Equal(t, first, second)
	assert.Len(t, movies, 5, "input slice must not be modified")
}

func TestApply_ConfigurablePolicy(t *testing.T) {
	movies := testMovies()
	policy := library.FilterPolicy{HorrorGenres: []int{18}}

	got := library.Apply(movies, library.CategoryHorror, "", policy)
	titles := make([]string, len(got))
	for i, m := range got {
		titles[i] = m.Title
	}
	assert.Equal(t, []string{"Oldboy", "Heat"}, titles)
}

func TestParseCategory(t *testing.T) {
	c, ok := library.ParseCategory("Kids")
	require.True(t, ok)
	assert.Equal(t, library.CategoryKids, c)

	_, ok = library.ParseCategory("bogus")
	assert.False(t, ok)
}
