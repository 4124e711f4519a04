// Package tmdb provides a client for the TMDB v3 API.
package tmdb

// SearchResult is a single movie or TV search hit.
type SearchResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`        // Extracted from release_date / first_air_date
	PosterPath string `json:"poster_path"` // Relative image path, may be empty
}

// Genre is a TMDB genre identifier.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is a production country entry.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// MovieDetails is the full detail record for a movie.
type MovieDetails struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Overview            string    `json:"overview"`
	Genres              []Genre   `json:"genres"`
	ProductionCountries []Country `json:"production_countries"`
	PosterPath          string    `json:"poster_path"`
}

// searchResponse is the TMDB search API response.
// Movie results carry "title"/"release_date", TV results carry
// "name"/"first_air_date"; both shapes decode into one struct.
type searchResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		Name         string `json:"name"`
		ReleaseDate  string `json:"release_date"`
		FirstAirDate string `json:"first_air_date"`
		PosterPath   string `json:"poster_path"`
	} `json:"results"`
	TotalResults int `json:"total_results"`
}
