package title

import (
	"regexp"
	"strconv"
)

// Episode numbering patterns, tried in order.
var (
	seasonEpisodeRegex = regexp.MustCompile(`(?i)s(\d{1,2})\s*e(\d{1,2})`)
	crossRegex         = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{1,2})\b`)
	episodeOnlyRegex   = regexp.MustCompile(`(?i)\bep(?:isode)?\s*\(?(\d{1,3})\)?`)
)

// TagEpisode extracts season and episode numbers from an episode
// filename. Recognizes S01E05 / 1x05 forms, then "Ep 12" or
// "Episode (12)" forms where the season defaults to 1.
// Returns ok=false (and zero values) when no pattern matches; season
// and episode are always either both present or both absent.
func TagEpisode(raw string) (season, episode int, ok bool) {
	if m := seasonEpisodeRegex.FindStringSubmatch(raw); m != nil {
		return mustInt(m[1]), mustInt(m[2]), true
	}
	if m := crossRegex.FindStringSubmatch(raw); m != nil {
		return mustInt(m[1]), mustInt(m[2]), true
	}
	if m := episodeOnlyRegex.FindStringSubmatch(raw); m != nil {
		return 1, mustInt(m[1]), true
	}
	return 0, 0, false
}

// mustInt converts digit-only regex captures.
func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
