// Package library builds in-memory media entities from scanned
// folders and evaluates category/search filters over them.
package library

// Movie is one scanned movie file plus its enrichment fields.
// Title, Year, and FilePath are fixed at scan time; PosterPath,
// GenreIDs, CountryCode, and IsMovie are filled in exactly once when
// the enrichment result for this entity arrives.
type Movie struct {
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"` // 0 = unknown
	FilePath    string `json:"file_path"`
	PosterPath  string `json:"poster_path"`
	GenreIDs    []int  `json:"genre_ids,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	IsMovie     bool   `json:"is_movie"`
}

// Series is one scanned series folder with its season tree.
type Series struct {
	Title      string   `json:"title"`
	FolderPath string   `json:"folder_path"`
	PosterPath string   `json:"poster_path"`
	Seasons    []Season `json:"seasons"`
}

// Season groups the episodes found in one season folder.
// Number is 0 when no digits could be extracted from the folder.
type Season struct {
	Number   int       `json:"number"`
	Episodes []Episode `json:"episodes"`
}

// Episode is a single video file inside a season folder.
type Episode struct {
	Number   int    `json:"number"` // 0 when unparsed
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}
