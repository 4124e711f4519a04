package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mediadex/mediadex/pkg/title"
)

// videoExtensions are the file types treated as playable media.
var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".avi": true,
}

// IsVideoFile reports whether the path has a recognized video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// digitRunRegex extracts the first run of digits from a season folder path.
var digitRunRegex = regexp.MustCompile(`\d+`)

// Scanner walks library roots and builds media entities.
type Scanner struct {
	placeholder string // initial poster path for new entities
	log         *slog.Logger
}

// NewScanner creates a scanner. New entities start with the given
// placeholder poster path until enrichment resolves a real one.
func NewScanner(placeholder string, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		placeholder: placeholder,
		log:         log.With("component", "scanner"),
	}
}

// ScanMovies recursively enumerates video files under the given roots
// and returns one Movie per distinct clean title. Deduplication spans
// the whole pass: the first file to produce a clean title wins,
// regardless of which root it came from. Roots that do not exist are
// skipped silently; enumeration errors inside an existing root are
// returned.
func (s *Scanner) ScanMovies(roots []string) ([]*Movie, error) {
	// Counting pass, so enrichment progress has a fixed total before
	// any task is scheduled.
	total := 0
	for _, root := range roots {
		n, err := s.countVideos(root)
		if err != nil {
			return nil, err
		}
		total += n
	}
	s.log.Debug("movie scan counted files", "roots", len(roots), "files", total)

	movies := make([]*Movie, 0, total)
	seen := make(map[string]bool, total)

	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !IsVideoFile(path) {
				return nil
			}

			raw := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			clean, year := title.Normalize(raw)
			if seen[clean] {
				return nil
			}
			seen[clean] = true

			movies = append(movies, &Movie{
				Title:      clean,
				Year:       year,
				FilePath:   path,
				PosterPath: s.placeholder,
				IsMovie:    true,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan movies %s: %w", root, err)
		}
	}

	s.log.Info("movie scan complete", "files", total, "titles", len(movies))
	return movies, nil
}

// ScanSeries treats each immediate subfolder of a root as a series,
// each subfolder of a series as a season, and each video file inside
// a season folder as an episode. Series are deduplicated by folder
// name across the whole pass; seasons that contribute no episodes are
// dropped.
func (s *Scanner) ScanSeries(roots []string) ([]*Series, error) {
	var series []*Series
	seen := make(map[string]bool)

	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		seriesDirs, err := listDirs(root)
		if err != nil {
			return nil, fmt.Errorf("scan series %s: %w", root, err)
		}

		for _, seriesDir := range seriesDirs {
			name := filepath.Base(seriesDir)
			if seen[name] {
				continue
			}
			seen[name] = true

			sr := &Series{
				Title:      name,
				FolderPath: seriesDir,
				PosterPath: s.placeholder,
			}

			seasonDirs, err := listDirs(seriesDir)
			if err != nil {
				return nil, fmt.Errorf("scan seasons %s: %w", seriesDir, err)
			}

			for _, seasonDir := range seasonDirs {
				season := Season{Number: seasonNumber(seasonDir)}

				entries, err := os.ReadDir(seasonDir)
				if err != nil {
					return nil, fmt.Errorf("scan episodes %s: %w", seasonDir, err)
				}
				for _, entry := range entries {
					if entry.IsDir() || !IsVideoFile(entry.Name()) {
						continue
					}
					epName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
					_, epNumber, _ := title.TagEpisode(epName)
					season.Episodes = append(season.Episodes, Episode{
						Number:   epNumber,
						Title:    epName,
						FilePath: filepath.Join(seasonDir, entry.Name()),
					})
				}

				if len(season.Episodes) > 0 {
					sr.Seasons = append(sr.Seasons, season)
				}
			}

			series = append(series, sr)
		}
	}

	s.log.Info("series scan complete", "roots", len(roots), "series", len(series))
	return series, nil
}

// countVideos counts matching video files under root without building
// entities. A missing root counts as zero.
func (s *Scanner) countVideos(root string) (int, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return 0, nil
	}
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsVideoFile(path) {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count videos %s: %w", root, err)
	}
	return count, nil
}

// seasonNumber extracts the first run of digits in the season
// folder's name, or 0 if there is none. The name, not the full path,
// is used so a digit in a mount point does not leak into every season.
func seasonNumber(dir string) int {
	m := digitRunRegex.FindString(filepath.Base(dir))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// listDirs returns the immediate subdirectories of dir, in directory order.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	return dirs, nil
}
