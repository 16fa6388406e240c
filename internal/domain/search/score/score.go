// Package score maps engine-native relevance numbers onto the public (0, 1] scale.
package score

import "math"

// FromRaw converts a raw score (non-negative, lower is better) into a relevance
// score in (0, 1] where higher is better. Negative or NaN input is treated as a
// perfect match so the result never leaves the range.
func FromRaw(raw float64) float64 {
	if math.IsNaN(raw) || raw < 0 {
		raw = 0
	}
	s := 1 / (1 + raw)
	if s <= 0 {
		return math.SmallestNonzeroFloat64
	}
	return s
}

// RawFromBM25 converts an FTS5 bm25() value into a raw score.
// bm25() is zero or negative, more negative meaning more relevant; exp maps it
// monotonically onto (0, 1] so that lower still means better.
func RawFromBM25(bm25 float64) float64 {
	if math.IsNaN(bm25) {
		return 1
	}
	return math.Exp(math.Min(bm25, 0))
}

// FromBM25 is FromRaw(RawFromBM25(bm25)).
func FromBM25(bm25 float64) float64 {
	return FromRaw(RawFromBM25(bm25))
}
