package mapping

import "strings"

// reservedColumns are import-protocol labels reserved for metadata rather
// than object data. They are never auto-matched, regardless of schema.
var reservedColumns = map[string]bool{
	"id":          true,
	"external_id": true,
	"object_key":  true,
	"created_at":  true,
	"updated_at":  true,
}

// IsReservedColumn reports whether a column label is reserved for import
// metadata. Comparison is trimmed and case-insensitive.
func IsReservedColumn(label string) bool {
	return reservedColumns[strings.ToLower(strings.TrimSpace(label))]
}

// AutoMatch proposes a best-effort one-to-one column-to-field assignment.
// Columns are considered left to right in header order; each takes the
// best-scoring still-unused field at or above MatchFloor, and a field once
// taken is removed from consideration for later columns. Greedy and
// non-backtracking: exact and near-exact matches dominate real inputs, so
// a global bipartite assignment would add complexity without materially
// better outcomes at tens of columns.
//
// Entries produced by a match carry AutoMatched=true; reserved and
// unmatched columns are seeded unassigned with AutoMatched=false.
func AutoMatch(columns []string, fields []Field) Mapping {
	m := NewMapping(columns)
	used := make(map[string]bool, len(fields))

	for _, col := range columns {
		if IsReservedColumn(col) {
			continue
		}
		colKey := Normalize(col)

		best := 0.0
		bestField := ""
		for _, f := range fields {
			if used[f.Key] {
				continue
			}
			if score := matchScore(colKey, f); score > best {
				best = score
				bestField = f.Key
			}
		}

		if bestField != "" && best >= MatchFloor {
			used[bestField] = true
			m.Entries[col] = Entry{FieldKey: bestField, AutoMatched: true}
		}
	}
	return m
}

// matchScore is the strongest signal available for one column/field pair:
// exact key match, exact display-name match (capped at ScoreDisplayName),
// synonym match, or the generic similarity score, whichever is highest.
// The field is matchable via either its key suffix or its display name.
func matchScore(colKey string, f Field) float64 {
	fieldKey := Normalize(f.KeySuffix())
	nameKey := Normalize(f.Name)

	if colKey != "" && colKey == fieldKey {
		return ScoreExact
	}
	if colKey != "" && colKey == nameKey {
		return ScoreDisplayName
	}

	best := SynonymScore(colKey, fieldKey)
	if s := SynonymScore(colKey, nameKey); s > best {
		best = s
	}
	if s := Similarity(colKey, fieldKey); s > best {
		best = s
	}
	if s := Similarity(colKey, nameKey); s > best {
		best = s
	}
	return best
}
