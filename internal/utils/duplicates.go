package utils

import (
	"strings"
)

// DedupFilter drops words already seen, ignoring case. It is not safe for
// concurrent use.
type DedupFilter struct {
	seenWords map[string]bool
}

// NewDedupFilter creates a filter that also rejects the excluded words.
func NewDedupFilter(exclude ...string) *DedupFilter {
	seenWords := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		seenWords[strings.ToLower(w)] = true
	}
	return &DedupFilter{seenWords: seenWords}
}

// ShouldInclude returns true the first time a word is offered.
func (f *DedupFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}
