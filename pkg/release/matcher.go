package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRe = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence grades a fuzzy title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // score < 0.70
	ConfidenceLow                           // score >= 0.70
	ConfidenceMedium                        // score >= 0.85
	ConfidenceHigh                          // score >= 0.95
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

func confidenceFor(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// MatchResult is the best candidate for a parsed title.
// Index is -1 when no candidate reached ConfidenceLow.
type MatchResult struct {
	Index      int
	Title      string
	Score      float64
	Confidence MatchConfidence
}

// MatchTitle scores every candidate against the parsed title with Jaro-Winkler on
// cleaned titles, nudged by whether sequel numbers agree, and returns the best one.
func MatchTitle(parsed string, candidates []string) MatchResult {
	best := MatchResult{Index: -1}
	if len(candidates) == 0 {
		return best
	}

	want := CleanTitle(parsed)
	wantNums := numberRe.FindAllString(want, -1)

	for i, candidate := range candidates {
		got := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(want, got))
		score = adjustForNumbers(score, wantNums, numberRe.FindAllString(got, -1))
		if score > best.Score {
			best = MatchResult{Index: i, Title: candidate, Score: score}
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Index = -1
		best.Title = ""
	}
	return best
}

// adjustForNumbers rewards a shared sequel number and penalizes a missing or different one.
func adjustForNumbers(score float64, want, got []string) float64 {
	if len(want) == 0 {
		return score
	}
	if len(got) == 0 {
		return score * 0.85
	}
	seen := make(map[string]bool, len(got))
	for _, n := range got {
		seen[n] = true
	}
	for _, n := range want {
		if seen[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
