package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "1999", r.URL.Query().Get("year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "poster_path": "/matrix.jpg"},
				{"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "poster_path": "/reloaded.jpg"}
			],
			"total_results": 2
		}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	results, err := client.SearchMovie(context.Background(), "The Matrix", 1999)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(603), results[0].ID)
	assert.Equal(t, "The Matrix", results[0].Title)
	assert.Equal(t, 1999, results[0].Year)
	assert.Equal(t, "/matrix.jpg", results[0].PosterPath)
}

func TestClient_SearchMovie_NoYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("year"), "year param should be omitted")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page": 1, "results": [], "total_results": 0}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	results, err := client.SearchMovie(context.Background(), "Obscure", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_SearchTV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "2008", r.URL.Query().Get("first_air_date_year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20", "poster_path": "/bb.jpg"}
			],
			"total_results": 1
		}`))
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	results, err := client.SearchTV(context.Background(), "Breaking Bad", 2008)
	require.NoError(t, err)
	require.Len(t, results, 1)
	// TV results carry "name", not "title"
	assert.Equal(t, "Breaking Bad", results[0].Title)
	assert.Equal(t, 2008, results[0].Year)
}

func TestClient_MovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/603", r.URL.Path)

		resp := MovieDetails{
			ID:    603,
			Title: "The Matrix",
			Genres: []Genre{
				{ID: 28, Name: "Action"},
				{ID: 878, Name: "Science Fiction"},
			},
			ProductionCountries: []Country{
				{Code: "US", Name: "United States of America"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	details, err := client.MovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", details.Title)
	require.Len(t, details.Genres, 2)
	assert.Equal(t, 28, details.Genres[0].ID)
	require.Len(t, details.ProductionCountries, 1)
	assert.Equal(t, "US", details.ProductionCountries[0].Code)
}

func TestClient_MovieDetails_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	_, err := client.MovieDetails(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_PosterImage(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/t/p/w500/matrix.jpg", r.URL.Path)
		_, _ = w.Write(imageBytes)
	}))
	defer server.Close()

	client := New("test-key", WithImageBaseURL(server.URL))

	data, err := client.PosterImage(context.Background(), "/matrix.jpg")
	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New("test-key", WithBaseURL(server.URL))

	_, err := client.SearchMovie(context.Background(), "Anything", 0)
	assert.ErrorIs(t, err, ErrRateLimited)
}
