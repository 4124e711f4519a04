package catalog

import (
	"fmt"
	"time"

	"github.com/mediadex/mediadex/internal/library"
)

func addSeries(q querier, s *library.Series) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO series (title, folder_path, poster_path, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.Title, s.FolderPath, s.PosterPath, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert series: %w", mapSQLiteError(err))
	}
	seriesID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	for _, season := range s.Seasons {
		result, err := q.Exec(`
			INSERT INTO seasons (series_id, number) VALUES (?, ?)`,
			seriesID, season.Number,
		)
		if err != nil {
			return fmt.Errorf("insert season %d: %w", season.Number, mapSQLiteError(err))
		}
		seasonID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		for _, ep := range season.Episodes {
			_, err := q.Exec(`
				INSERT INTO episodes (season_id, number, title, file_path) VALUES (?, ?, ?, ?)`,
				seasonID, ep.Number, ep.Title, ep.FilePath,
			)
			if err != nil {
				return fmt.Errorf("insert episode %q: %w", ep.Title, mapSQLiteError(err))
			}
		}
	}
	return nil
}

// AddSeries inserts a series with its full season tree.
// Returns ErrDuplicate when a series with the same title exists.
func (s *Store) AddSeries(series *library.Series) error { return addSeries(s.db, series) }

// AddSeries inserts a series within a transaction.
func (t *Tx) AddSeries(series *library.Series) error { return addSeries(t.tx, series) }

func listSeries(q querier) ([]*library.Series, error) {
	rows, err := q.Query(`
		SELECT id, title, folder_path, poster_path FROM series ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*library.Series
	var ids []int64
	for rows.Next() {
		s := &library.Series{}
		var id int64
		if err := rows.Scan(&id, &s.Title, &s.FolderPath, &s.PosterPath); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		results = append(results, s)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}

	for i, id := range ids {
		seasons, err := listSeasons(q, id)
		if err != nil {
			return nil, err
		}
		results[i].Seasons = seasons
	}
	return results, nil
}

func listSeasons(q querier, seriesID int64) ([]library.Season, error) {
	rows, err := q.Query(`
		SELECT id, number FROM seasons WHERE series_id = ? ORDER BY number`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seasons []library.Season
	var ids []int64
	for rows.Next() {
		var s library.Season
		var id int64
		if err := rows.Scan(&id, &s.Number); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, s)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}

	for i, id := range ids {
		episodes, err := listEpisodes(q, id)
		if err != nil {
			return nil, err
		}
		seasons[i].Episodes = episodes
	}
	return seasons, nil
}

func listEpisodes(q querier, seasonID int64) ([]library.Episode, error) {
	rows, err := q.Query(`
		SELECT number, title, file_path FROM episodes WHERE season_id = ? ORDER BY number, id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var episodes []library.Episode
	for rows.Next() {
		var e library.Episode
		if err := rows.Scan(&e.Number, &e.Title, &e.FilePath); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}

// ListSeries returns every stored series with its season tree, in
// insertion order.
func (s *Store) ListSeries() ([]*library.Series, error) { return listSeries(s.db) }

// ListSeries returns every stored series within a transaction.
func (t *Tx) ListSeries() ([]*library.Series, error) { return listSeries(t.tx) }

// ReplaceSeries atomically swaps the stored series set for the given
// one. Season and episode rows cascade with their series.
func (s *Store) ReplaceSeries(series []*library.Series) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.tx.Exec("DELETE FROM series"); err != nil {
		return fmt.Errorf("clear series: %w", err)
	}
	for _, sr := range series {
		if err := tx.AddSeries(sr); err != nil {
			return err
		}
	}
	return tx.Commit()
}
