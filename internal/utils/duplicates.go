package utils

import (
	"strings"
)

// SeenFilter drops repeated words while keeping first-seen order
type SeenFilter struct {
	seenWords map[string]bool
}

// NewSeenFilter creates a filter that already considers the given words seen
func NewSeenFilter(seen ...string) *SeenFilter {
	seenWords := make(map[string]bool, len(seen))
	for _, w := range seen {
		seenWords[strings.ToLower(w)] = true
	}
	return &SeenFilter{seenWords: seenWords}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SeenFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}
