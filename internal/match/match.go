// Package match scores text candidates against a search keyword using four
// discrete relevance buckets. It is not a fuzzy/edit-distance ranker: the
// containment filter that produced the candidates already guaranteed a match,
// and this package only decides how good that match is.
package match

import "strings"

// Relevance bucket classes, ascending from best to worst.
const (
	ClassExact    = 0 // field equals the keyword
	ClassPrefix   = 1 // field starts with the keyword
	ClassContains = 2 // keyword appears mid-field
	ClassSuffix   = 3 // field ends with the keyword
	ClassOther    = 4 // matched only by the upstream containment filter
)

// Class returns the relevance bucket of value against keyword.
// Buckets are checked best-first, so "중구" against keyword "중구" is exact
// even though it also starts with, contains, and ends with it. The same
// rule makes suffix and contains disjoint: an ends-with match always lands
// in the suffix bucket, and ClassContains is reserved for strictly mid-field
// hits, which therefore rank above suffix matches.
func Class(value, keyword string) int {
	switch {
	case value == keyword:
		return ClassExact
	case strings.HasPrefix(value, keyword):
		return ClassPrefix
	case strings.HasSuffix(value, keyword):
		return ClassSuffix
	case strings.Contains(value, keyword):
		return ClassContains
	}
	return ClassOther
}

// Key is a composite ascending sort key: one bucket class per ranked field,
// in priority order. Compare two keys with Less.
type Key []int

// NewKey ranks each field against the keyword in the given priority order
// (e.g. place name, then country, then city, then district).
func NewKey(keyword string, fields ...string) Key {
	k := make(Key, len(fields))
	for i, f := range fields {
		k[i] = Class(f, keyword)
	}
	return k
}

// Less compares two composite keys field by field. Ties fall through to the
// next field; fully equal keys return false, leaving the final ordering to an
// explicit caller-side tie-break (updated-at, id) for deterministic pages.
func (k Key) Less(other Key) bool {
	for i := range k {
		if i >= len(other) {
			break
		}
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

// Equal reports whether two keys rank identically on every field.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}
