package mapping

import "strings"

// Confidence constants. Their exact values materially change matching
// outcomes, so they are named here rather than inlined at call sites.
const (
	// ScoreExact is the confidence for two identical normalized keys.
	ScoreExact = 1.0

	// ScoreDisplayName caps an exact display-name match below ScoreExact
	// so a true key match always wins ties.
	ScoreDisplayName = 0.95

	// ScoreSynonym is the fixed confidence when a column and a field fall
	// under the same synonym concept.
	ScoreSynonym = 0.9

	// ScoreSubstring is the confidence when one key contains the other.
	ScoreSubstring = 0.8

	// ScoreAffix is the confidence when one key is a prefix or suffix of
	// the other.
	ScoreAffix = 0.7

	// OverlapScale scales the character-overlap fallback ratio.
	OverlapScale = 0.6

	// MatchFloor is the minimum confidence the matcher accepts; anything
	// below it is discarded as noise to avoid confident-looking false
	// positives on short, generic labels.
	MatchFloor = 0.7
)

// Similarity scores two already-normalized keys in [0,1]. Symmetric.
// Resolution order, first applicable rule wins: exact, substring,
// prefix/suffix, then the character-overlap fallback. The fallback counts
// characters of the shorter key that occur anywhere in the longer key,
// divided by the longer key's length, scaled by OverlapScale. It is
// order-insensitive and intentionally cheap; treat it as a weak signal,
// not edit distance.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return ScoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ScoreSubstring
	}
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) ||
		strings.HasSuffix(a, b) || strings.HasSuffix(b, a) {
		return ScoreAffix
	}
	return overlapRatio(a, b) * OverlapScale
}

func overlapRatio(a, b string) float64 {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	hits := 0
	for _, r := range shorter {
		if strings.ContainsRune(longer, r) {
			hits++
		}
	}
	return float64(hits) / float64(len(longer))
}
