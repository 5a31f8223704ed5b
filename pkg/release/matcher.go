package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles ("2", "3").
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

// MatchResult is the best candidate found by MatchTitle.
type MatchResult struct {
	Title      string  // Matched candidate, empty when Confidence is none
	Score      float64 // Jaro-Winkler similarity (0.0-1.0) after number adjustment
	Confidence MatchConfidence
}

// MatchTitle finds the candidate closest to title using Jaro-Winkler
// similarity on cleaned titles. Matching sequence numbers earn a bonus and
// mismatched ones a penalty, so "Brother 2" scores low against "Brother".
func MatchTitle(title string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	cleaned := CleanTitle(title)
	titleNumbers := numberRegex.FindAllString(cleaned, -1)

	for _, candidate := range candidates {
		cleanedCandidate := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(cleaned, cleanedCandidate))
		score = adjustScoreForNumbers(score, titleNumbers, numberRegex.FindAllString(cleanedCandidate, -1))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Title = ""
	}
	return best
}

// MatchesMovie reports whether a parsed release belongs to a movie known by
// any of titles. When both years are known they may differ by one, since
// trackers often list the festival or local premiere year.
func MatchesMovie(info Info, titles []string, year int) bool {
	if year > 0 && info.Year > 0 && (info.Year < year-1 || info.Year > year+1) {
		return false
	}
	candidates := info.Titles
	if len(candidates) == 0 && info.Title != "" {
		candidates = []string{info.Title}
	}
	for _, title := range titles {
		if MatchTitle(title, candidates).Confidence >= ConfidenceLow {
			return true
		}
	}
	return false
}

// adjustScoreForNumbers rewards matching sequence numbers and penalizes
// missing or different ones.
func adjustScoreForNumbers(score float64, titleNums, candidateNums []string) float64 {
	if len(titleNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range titleNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
