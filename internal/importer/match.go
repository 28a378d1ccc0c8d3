package importer

import (
	"regexp"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/whatch/pkg/medianame"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Match is the library series title closest to a parsed one.
type Match struct {
	Title string  // The matched library title; empty when nothing scored
	Score float64 // Jaro-Winkler similarity (0.0-1.0) after number adjustment
}

// MatchSeriesTitle finds the candidate most similar to parsed.
// Titles are compared on their match keys so case, accents, punctuation and
// a leading article do not count. A candidate with an identical key scores
// 1.0 and wins outright.
func MatchSeriesTitle(parsed string, candidates []string) Match {
	key := medianame.MatchKey(parsed)
	if key == "" {
		return Match{}
	}
	parsedNumbers := numberRegex.FindAllString(key, -1)

	var best Match
	for _, candidate := range candidates {
		candidateKey := medianame.MatchKey(candidate)
		if candidateKey == key {
			return Match{Title: candidate, Score: 1}
		}
		score := float64(edlib.JaroWinklerSimilarity(key, candidateKey))
		score = adjustScoreForNumbers(score, parsedNumbers, numberRegex.FindAllString(candidateKey, -1))
		if score > best.Score {
			best = Match{Title: candidate, Score: score}
		}
	}
	return best
}

// adjustScoreForNumbers keeps "Show 2" from folding into "Show".
// When the parsed title has numbers, a shared number earns a bonus and a
// missing or different number a penalty.
func adjustScoreForNumbers(score float64, parsedNums, candidateNums []string) float64 {
	if len(parsedNums) == 0 {
		if len(candidateNums) > 0 {
			return score * 0.85
		}
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range parsedNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
