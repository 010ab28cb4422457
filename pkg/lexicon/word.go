/*
Package lexicon holds the words the pun builders operate on and the lookups
that produce them.

A Word joins a spelling, its ARPAbet pronunciation and the chunk alignment
between the two. Words are created once when a dictionary is loaded and never
modified afterwards, so they may be shared freely between goroutines.

The file-backed sources in this package read tab separated data:

	# aligned dictionary: grapheme chunks, phoneme chunks
	c|o|g|n|a|c	K|OW1|_|N:Y|AE2|K

	# semantic neighbors: seed, comma separated neighbors
	dog	puppy,cat,hound

	# part of speech: grapheme, primary WordNet category
	lean	a
*/
package lexicon

import (
	"strings"

	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// Word is an immutable spelling/pronunciation pair.
type Word struct {
	Grapheme  string
	Phoneme   []string
	Alignment *phonetic.Alignment
}

// NewWord builds a Word from aligned chunk sequences.
func NewWord(graph, phone []phonetic.Chunk) (*Word, error) {
	a, err := phonetic.NewAlignment(graph, phone)
	if err != nil {
		return nil, err
	}
	return &Word{
		Grapheme:  strings.Join(a.Graphemes(), ""),
		Phoneme:   a.Phonemes(),
		Alignment: a,
	}, nil
}

// ParseWord builds a Word from the aligned corpus encoding.
func ParseWord(graphemes, phonemes string) (*Word, error) {
	a, err := phonetic.ParseAlignment(graphemes, phonemes)
	if err != nil {
		return nil, err
	}
	return &Word{
		Grapheme:  strings.Join(a.Graphemes(), ""),
		Phoneme:   a.Phonemes(),
		Alignment: a,
	}, nil
}

// PhoneCount returns the number of phones in the pronunciation.
func (w *Word) PhoneCount() int { return len(w.Phoneme) }

// Subgrapheme returns the letters spelling phones [start, end].
func (w *Word) Subgrapheme(start, end int) (string, error) {
	symbols, err := w.Alignment.ChunkRange(start, end)
	if err != nil {
		return "", err
	}
	return strings.Join(symbols, ""), nil
}

// SubgraphemeIndices returns the inclusive letter range spelling phones [start, end].
func (w *Word) SubgraphemeIndices(start, end int) (int, int, error) {
	return w.Alignment.IndexRange(start, end)
}

// Rendered returns the pronunciation joined for display.
func (w *Word) Rendered() string {
	return phonetic.Render(w.Phoneme)
}

func (w *Word) String() string {
	return w.Grapheme
}
