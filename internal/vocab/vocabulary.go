// Package vocab reconciles noisy OCR text against a closed set of known values.
//
// A Vocabulary is loaded once per run and never modified afterwards, so it can
// be shared by every frame worker without locking.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when a vocabulary file holds no usable entries.
var ErrEmptyVocabulary = errors.New("vocabulary is empty")

// Vocabulary is an immutable set of known strings kept in sorted order.
//
// It never contains the empty string.
type Vocabulary struct {
	entries []string
	set     map[string]struct{}
}

// New builds a vocabulary from values. Each value is trimmed of surrounding
// whitespace, empty values are dropped and duplicates collapsed.
func New(values []string) *Vocabulary {
	v := &Vocabulary{set: make(map[string]struct{}, len(values))}
	for _, s := range values {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := v.set[s]; ok {
			continue
		}
		v.set[s] = struct{}{}
		v.entries = append(v.entries, s)
	}
	sort.Strings(v.entries)
	return v
}

// Load reads a newline-delimited vocabulary file. Blank lines are ignored.
//
// # Errors
//
//   - Returns error if the file cannot be opened or read
//   - Returns ErrEmptyVocabulary if no non-blank line remains
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}

	v := New(lines)
	if v.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyVocabulary)
	}
	return v, nil
}

// Contains reports whether s is an exact member.
func (v *Vocabulary) Contains(s string) bool {
	_, ok := v.set[s]
	return ok
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Entries returns a copy of the entries in sorted order.
func (v *Vocabulary) Entries() []string {
	out := make([]string, len(v.entries))
	copy(out, v.entries)
	return out
}
