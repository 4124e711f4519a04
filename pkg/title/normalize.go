// Package title recovers clean titles and episode numbers from
// release-style media filenames.
package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// yearRegex matches a 4-digit year between 1900 and 2099.
var yearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// junkTokens is the vocabulary of release-name noise removed during
// normalization. It is a best-effort allow-list, not a grammar:
// tokens not listed here pass through untouched. Multi-word entries
// assume separators have already been replaced with spaces.
var junkTokens = []string{
	// resolution
	"480p", "576p", "720p", "1080p", "1080i", "2160p", "4k", "uhd",
	"hdr", "hdr10", "dolby vision",
	// codec
	"x264", "x265", "h264", "h265", "h 264", "h 265", "hevc", "avc",
	"av1", "xvid", "divx", "10bit", "8bit",
	// source
	"bluray", "blu ray", "brrip", "bdrip", "dvdrip", "dvdscr", "dvd",
	"webrip", "web dl", "webdl", "hdtv", "hdrip", "hdcam", "camrip",
	"telesync", "remux",
	// audio
	"aac", "aac2 0", "ac3", "eac3", "dts", "dts hd", "truehd",
	"atmos", "mp3", "flac", "dd5 1", "ddp5 1",
	// release groups
	"yify", "yts", "rarbg", "evo", "sparks", "amiable", "geckos",
	"fgt", "ettv", "eztv", "group",
	// edition qualifiers
	"extended", "unrated", "uncut", "remastered", "theatrical", "dc",
	"imax", "proper", "repack", "rerip", "limited", "internal",
	// language / subtitles
	"multi", "dual audio", "vostfr", "subbed", "dubbed", "korsub",
	"hc",
}

var junkRegex = buildJunkRegex()

func buildJunkRegex() *regexp.Regexp {
	quoted := make([]string, len(junkTokens))
	for i, tok := range junkTokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// bracketRegex matches leftover bracketed or parenthesized content,
// which usually holds group tags the token list missed.
var bracketRegex = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

var separatorReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ")

// Normalize extracts a clean, human-readable title and an optional
// release year from a raw media filename (without extension).
// A returned year of 0 means no year was found.
//
// Normalization never fails: if anything goes wrong mid-way, the
// result degrades to the input with separators replaced and
// whitespace collapsed.
func Normalize(raw string) (clean string, year int) {
	working := separatorReplacer.Replace(raw)

	defer func() {
		if r := recover(); r != nil {
			clean = collapse(separatorReplacer.Replace(raw))
			year = 0
		}
	}()

	// Year: first match wins, and only that occurrence is removed.
	if loc := yearRegex.FindStringIndex(working); loc != nil {
		year = atoi(working[loc[0]:loc[1]])
		working = working[:loc[0]] + working[loc[1]:]
	}

	working = junkRegex.ReplaceAllString(working, " ")
	working = bracketRegex.ReplaceAllString(working, " ")

	return collapse(working), year
}

// collapse reduces runs of whitespace to single spaces and trims.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// FoldAccents removes diacritical marks ("Léon" -> "Leon") so titles
// with accents produce stable, filesystem-safe cache keys.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
