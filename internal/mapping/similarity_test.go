package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityExact(t *testing.T) {
	assert.Equal(t, ScoreExact, Similarity("email", "email"))
}

func TestSimilaritySubstring(t *testing.T) {
	assert.Equal(t, ScoreSubstring, Similarity("email", "emailaddress"))
	assert.Equal(t, ScoreSubstring, Similarity("workphone", "phone"))
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"email", "emailaddress"},
		{"notes", "phone"},
		{"abc", "cab"},
		{"firstname", "fn"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), p[0]+"/"+p[1])
	}
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "email"))
	assert.Equal(t, 0.0, Similarity("email", ""))
	assert.Equal(t, 0.0, Similarity("", ""))
}

// The character-overlap fallback is order-insensitive, so anagram-like
// short labels score the full overlap ratio. These assertions pin the
// current behavior; it is deliberate, not a defect to be fixed.
func TestSimilarityOverlapFallback(t *testing.T) {
	// Anagrams: every char of one occurs in the other.
	assert.InDelta(t, 1.0*OverlapScale, Similarity("abc", "cab"), 1e-9)
	assert.InDelta(t, 1.0*OverlapScale, Similarity("mane", "name"), 1e-9)

	// "notes" vs "phone": n, o, e hit -> 3/5 scaled by 0.6.
	assert.InDelta(t, 0.6*OverlapScale, Similarity("notes", "phone"), 1e-9)

	// "fn" vs "firstname": 2 hits over the longer key's length 9.
	assert.InDelta(t, 2.0/9.0*OverlapScale, Similarity("fn", "firstname"), 1e-9)
}

func TestSimilarityFallbackStaysBelowFloor(t *testing.T) {
	// The fallback tops out at OverlapScale, which is under MatchFloor,
	// so rule-4 scores alone can never produce an auto-match.
	assert.Less(t, OverlapScale, MatchFloor)
	assert.LessOrEqual(t, Similarity("abc", "cab"), OverlapScale)
}

func TestSynonymScore(t *testing.T) {
	assert.Equal(t, ScoreSynonym, SynonymScore("emailaddress", "email"))
	assert.Equal(t, ScoreSynonym, SynonymScore("mail", "emailaddress"))
	assert.Equal(t, ScoreSynonym, SynonymScore("surname", "lastname"))
	assert.Equal(t, ScoreSynonym, SynonymScore("zip", "postalcode"))

	// Different concepts, or unknown keys, never score.
	assert.Equal(t, 0.0, SynonymScore("emailaddress", "phone"))
	assert.Equal(t, 0.0, SynonymScore("notes", "phone"))
	assert.Equal(t, 0.0, SynonymScore("gibberish", "email"))
	assert.Equal(t, 0.0, SynonymScore("", ""))
}
