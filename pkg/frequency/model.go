/*
Package frequency answers how often a spelling or pronunciation fragment
starts, ends or occurs anywhere inside the words of a fixed vocabulary.

Counts are kept per fragment for the two kinds of fragment (grapheme
substrings and phoneme subsequences) and looked up with additive smoothing, so
Frequency never returns less than 1 and Probability is never zero. Fragments
span one to MaxWindow aligned chunks of a word; longer fragments are rare
enough that the smoothing default stands in for them.

A Model is built offline over the whole corpus, stored as a msgpack file or in
Postgres, and narrowed per query with Scope to the fragments a candidate set
can ask for.
*/
package frequency

import (
	"context"
	"fmt"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// MaxWindow is the largest fragment, in aligned chunks, that is counted.
const MaxWindow = 5

// DefaultVocabSize is the number of alignable graphemes in the CMU dictionary.
const DefaultVocabSize = 116002

// Side selects where in a word a fragment is counted.
type Side int

const (
	All Side = iota
	Head
	Tail
)

func (s Side) String() string {
	switch s {
	case Head:
		return "head"
	case Tail:
		return "tail"
	default:
		return "all"
	}
}

// Kind selects the fragment alphabet.
type Kind int

const (
	Grapheme Kind = iota
	Phoneme
)

func (k Kind) String() string {
	if k == Phoneme {
		return "phoneme"
	}
	return "grapheme"
}

// Counts holds raw occurrence counts of one fragment.
type Counts struct {
	_msgpack struct{} `msgpack:",as_array"`

	Head int
	Tail int
	All  int
}

// Get returns the count for side.
func (c Counts) Get(side Side) int {
	switch side {
	case Head:
		return c.Head
	case Tail:
		return c.Tail
	default:
		return c.All
	}
}

// PhonemeKey joins phones into the key used for phoneme fragments.
func PhonemeKey(phones []string) string {
	return strings.Join(phones, " ")
}

// Model is a read-only pair of fragment tables plus the vocabulary size
// they were counted over. Lookups are safe for concurrent use once the
// model is built.
type Model struct {
	vocabSize int
	tables    [2]*patricia.Trie
	sizes     [2]int
}

// NewModel returns an empty model over a vocabulary of vocabSize words.
func NewModel(vocabSize int) *Model {
	if vocabSize < 1 {
		vocabSize = 1
	}
	return &Model{
		vocabSize: vocabSize,
		tables:    [2]*patricia.Trie{patricia.NewTrie(), patricia.NewTrie()},
	}
}

// Set stores the counts of key, replacing any previous value. It must not
// be called once the model is shared.
func (m *Model) Set(kind Kind, key string, c Counts) {
	if key == "" {
		return
	}
	if m.tables[kind].Insert(patricia.Prefix(key), c) {
		m.sizes[kind]++
		return
	}
	m.tables[kind].Set(patricia.Prefix(key), c)
}

// VocabSize returns the number of words the counts were taken over.
func (m *Model) VocabSize() int { return m.vocabSize }

// Len returns the number of fragments stored for kind.
func (m *Model) Len(kind Kind) int { return m.sizes[kind] }

// Lookup returns the raw counts of key, if present.
func (m *Model) Lookup(kind Kind, key string) (Counts, bool) {
	item := m.tables[kind].Get(patricia.Prefix(key))
	if item == nil {
		return Counts{}, false
	}
	c, ok := item.(Counts)
	return c, ok
}

// Frequency returns the smoothed count of key on side, always at least 1.
func (m *Model) Frequency(kind Kind, key string, side Side) int {
	c, _ := m.Lookup(kind, key)
	return c.Get(side) + 1
}

// Probability is Frequency divided by the vocabulary size.
func (m *Model) Probability(kind Kind, key string, side Side) float64 {
	return float64(m.Frequency(kind, key, side)) / float64(m.vocabSize)
}

// PhonemeProbability is Probability over a phone sequence.
func (m *Model) PhonemeProbability(phones []string, side Side) float64 {
	return m.Probability(Phoneme, PhonemeKey(phones), side)
}

// Reconstruction is the chance of guessing a word given that it starts
// (Head) or ends (Tail) with the letters sub: one over the number of words
// sharing that fragment.
func (m *Model) Reconstruction(sub string, side Side) float64 {
	return 1 / float64(m.Frequency(Grapheme, sub, side))
}

// Counts returns the stored counts of every key that is present, which lets
// a Model act as the Store behind Scope.
func (m *Model) Counts(ctx context.Context, kind Kind, keys []string) (map[string]Counts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]Counts, len(keys))
	for _, k := range keys {
		if c, ok := m.Lookup(kind, k); ok {
			out[k] = c
		}
	}
	return out, nil
}

// Visit calls fn for every fragment of kind.
func (m *Model) Visit(kind Kind, fn func(key string, c Counts) error) error {
	return m.tables[kind].Visit(func(p patricia.Prefix, item patricia.Item) error {
		c, ok := item.(Counts)
		if !ok {
			return fmt.Errorf("frequency: unexpected item %T for %q", item, p)
		}
		return fn(string(p), c)
	})
}
