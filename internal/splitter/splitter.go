// Package splitter tokenizes strings by a set of delimiter characters.
package splitter

import (
	"slices"
	"strings"
)

// DelimiterSet is the union of every rune found in a collection of delimiter strings.
// Multi-character delimiters contribute each of their runes; they are never matched as substrings.
type DelimiterSet map[rune]struct{}

// NewDelimiterSet builds the rune set once from the given delimiter strings
func NewDelimiterSet(delimiters ...string) DelimiterSet {
	set := make(DelimiterSet)
	for _, d := range delimiters {
		for _, r := range d {
			set[r] = struct{}{}
		}
	}
	return set
}

// Contains reports whether r separates tokens
func (s DelimiterSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Split returns the maximal runs of non-delimiter runes in source, in order.
// Runs of delimiters never yield empty tokens.
func (s DelimiterSet) Split(source string) []string {
	return strings.FieldsFunc(source, s.Contains)
}

// String returns the delimiter runes in a stable order
func (s DelimiterSet) String() string {
	runes := make([]rune, 0, len(s))
	for r := range s {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return string(runes)
}

// Split splits source by any rune appearing in any of delimiters
func Split(source string, delimiters []string) []string {
	return NewDelimiterSet(delimiters...).Split(source)
}

// SplitString splits source by any rune of the single delimiters string
func SplitString(source, delimiters string) []string {
	return NewDelimiterSet(delimiters).Split(source)
}
