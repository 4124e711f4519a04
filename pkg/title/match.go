package title

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult represents the result of a fuzzy title match.
type MatchResult struct {
	Title      string          // The matched candidate title
	Score      float64         // Jaro-Winkler similarity score (0.0-1.0)
	Confidence MatchConfidence // Confidence level based on score
}

// compareForm folds accents and case so "Léon" and "leon" compare
// equal before similarity scoring.
func compareForm(t string) string {
	return strings.ToLower(FoldAccents(t))
}

// Similarity scores two titles with Jaro-Winkler, which favors prefix
// matches (good for media titles), adjusted by sequence number
// agreement so "Rocky II" and "Rocky III" don't score as duplicates.
func Similarity(a, b string) float64 {
	na, nb := compareForm(a), compareForm(b)
	score := float64(edlib.JaroWinklerSimilarity(na, nb))
	return adjustScoreForNumbers(score, extractNumbers(na), extractNumbers(nb))
}

// BestMatch finds the best match for a title against candidate titles.
// Returns the best match with confidence level based on score thresholds.
func BestMatch(query string, candidates []string) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Confidence: ConfidenceNone}
	}

	best := MatchResult{
		Score:      0,
		Confidence: ConfidenceNone,
	}

	for _, candidate := range candidates {
		score := Similarity(query, candidate)
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	// Set confidence level based on score thresholds
	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = "" // Clear title for no-match case
	}

	return best
}

// extractNumbers returns all numeric sequences from a normalized title.
func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers modifies the similarity score based on sequence number matching.
// When the first title has numbers:
// - Matching numbers get a bonus
// - Mismatched numbers get a penalty
// - Missing numbers in the other title also get a penalty
func adjustScoreForNumbers(score float64, aNums, bNums []string) float64 {
	if len(aNums) == 0 {
		return score
	}

	aSet := make(map[string]bool)
	for _, n := range aNums {
		aSet[n] = true
	}

	bSet := make(map[string]bool)
	for _, n := range bNums {
		bSet[n] = true
	}

	// If one title has numbers but the other doesn't, apply penalty
	if len(bNums) == 0 {
		return score * 0.85
	}

	// Check for number matches
	matchFound := false
	for n := range aSet {
		if bSet[n] {
			matchFound = true
			break
		}
	}

	if matchFound {
		// Bonus for matching sequence number, capped at 1.0
		return min(score*1.05, 1.0)
	}

	// Penalty for mismatched numbers
	return score * 0.90
}
