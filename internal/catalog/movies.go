package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mediadex/mediadex/internal/library"
)

func encodeGenres(ids []int) (string, error) {
	if len(ids) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode genre ids: %w", err)
	}
	return string(data), nil
}

func decodeGenres(raw string) ([]int, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode genre ids: %w", err)
	}
	return ids, nil
}

func addMovie(q querier, m *library.Movie) error {
	genres, err := encodeGenres(m.GenreIDs)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = q.Exec(`
		INSERT INTO movies (title, year, file_path, poster_path, genre_ids, country_code, is_movie, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.Year, m.FilePath, m.PosterPath, genres, m.CountryCode, m.IsMovie, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	return nil
}

// AddMovie inserts a movie entity.
// Returns ErrDuplicate when a movie with the same title and year exists.
func (s *Store) AddMovie(m *library.Movie) error { return addMovie(s.db, m) }

// AddMovie inserts a movie entity within a transaction.
func (t *Tx) AddMovie(m *library.Movie) error { return addMovie(t.tx, m) }

func listMovies(q querier) ([]*library.Movie, error) {
	rows, err := q.Query(`
		SELECT title, year, file_path, poster_path, genre_ids, country_code, is_movie
		FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*library.Movie
	for rows.Next() {
		m := &library.Movie{}
		var genres string
		if err := rows.Scan(&m.Title, &m.Year, &m.FilePath, &m.PosterPath, &genres, &m.CountryCode, &m.IsMovie); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		if m.GenreIDs, err = decodeGenres(genres); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return results, nil
}

// ListMovies returns every stored movie in insertion order, the order
// the scan discovered them in.
func (s *Store) ListMovies() ([]*library.Movie, error) { return listMovies(s.db) }

// ListMovies returns every stored movie within a transaction.
func (t *Tx) ListMovies() ([]*library.Movie, error) { return listMovies(t.tx) }

func getMovie(q querier, title string, year int) (*library.Movie, error) {
	m := &library.Movie{}
	var genres string
	err := q.QueryRow(`
		SELECT title, year, file_path, poster_path, genre_ids, country_code, is_movie
		FROM movies WHERE title = ? AND year = ?`, title, year,
	).Scan(&m.Title, &m.Year, &m.FilePath, &m.PosterPath, &genres, &m.CountryCode, &m.IsMovie)
	if err != nil {
		return nil, fmt.Errorf("get movie %q: %w", title, mapSQLiteError(err))
	}
	if m.GenreIDs, err = decodeGenres(genres); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMovie retrieves a movie by title and year.
// Returns ErrNotFound if no such movie is stored.
func (s *Store) GetMovie(title string, year int) (*library.Movie, error) {
	return getMovie(s.db, title, year)
}

// GetMovie retrieves a movie by title and year within a transaction.
func (t *Tx) GetMovie(title string, year int) (*library.Movie, error) {
	return getMovie(t.tx, title, year)
}

func updateMoviePoster(q querier, title string, year int, posterPath string) error {
	result, err := q.Exec(`
		UPDATE movies SET poster_path = ?, updated_at = ? WHERE title = ? AND year = ?`,
		posterPath, time.Now(), title, year,
	)
	if err != nil {
		return fmt.Errorf("update movie poster: %w", mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update movie poster %q: %w", title, ErrNotFound)
	}
	return nil
}

// UpdateMoviePoster points a stored movie at a new poster file.
// Returns ErrNotFound if no such movie is stored.
func (s *Store) UpdateMoviePoster(title string, year int, posterPath string) error {
	return updateMoviePoster(s.db, title, year, posterPath)
}

// UpdateMoviePoster updates a movie's poster within a transaction.
func (t *Tx) UpdateMoviePoster(title string, year int, posterPath string) error {
	return updateMoviePoster(t.tx, title, year, posterPath)
}

// ReplaceMovies atomically swaps the stored movie set for the given
// one. A failed replace leaves the previous catalog intact.
func (s *Store) ReplaceMovies(movies []*library.Movie) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	for _, m := range movies {
		if err := tx.AddMovie(m); err != nil {
			return err
		}
	}
	return tx.Commit()
}
