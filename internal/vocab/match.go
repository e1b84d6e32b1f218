package vocab

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxDistance is the normalized edit distance below which an OCR string
// is corrected to its nearest vocabulary entry.
const DefaultMaxDistance = 0.45

// Outcome classifies how an OCR string was reconciled.
type Outcome int

const (
	// Exact means the OCR string is a vocabulary member.
	Exact Outcome = iota
	// Corrected means the nearest entry was close enough to replace the OCR string.
	Corrected
	// Unknown means no entry was close enough.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Exact:
		return "exact"
	case Corrected:
		return "corrected"
	default:
		return "unknown"
	}
}

// Match is the result of reconciling one OCR string.
type Match struct {
	Outcome Outcome

	// Raw is the OCR string as given.
	Raw string

	// Value is the resolved entry; empty when Outcome is Unknown.
	Value string

	// Best is the nearest entry, kept for Unknown outcomes so the near miss
	// can be logged.
	Best string

	// Distance is the normalized edit distance between Raw and Best.
	Distance float64
}

// Resolved reports whether the match produced a usable value.
func (m Match) Resolved() bool {
	return m.Outcome != Unknown
}

// Match reconciles raw against the vocabulary.
//
// An exact member is returned unchanged with distance 0. Otherwise the entry
// with the smallest normalized edit distance is selected; among equal
// distances the lexicographically smallest entry wins. That entry is returned
// as Corrected when its distance is strictly below maxDistance, else the
// result is Unknown.
//
// An empty vocabulary always yields Unknown with distance 1.
func (v *Vocabulary) Match(raw string, maxDistance float64) Match {
	if v.Contains(raw) {
		return Match{Outcome: Exact, Raw: raw, Value: raw, Best: raw}
	}

	m := Match{Outcome: Unknown, Raw: raw, Distance: 1}
	first := true
	for _, candidate := range v.entries {
		d := NormalizedDistance(raw, candidate)
		// entries are sorted, so strict < keeps the smallest name on ties
		if first || d < m.Distance {
			m.Best, m.Distance = candidate, d
			first = false
		}
	}

	if !first && m.Distance < maxDistance {
		m.Outcome = Corrected
		m.Value = m.Best
	}
	return m
}

// NormalizedDistance returns the Levenshtein distance between a and b divided
// by the length of the longer string, counted in runes. The result is in
// [0,1]; two empty strings have distance 0.
func NormalizedDistance(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}
