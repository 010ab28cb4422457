package frequency

import (
	"strings"

	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// Window is one fragment of a word: the letters and phones of a run of
// consecutive aligned chunks.
type Window struct {
	Grapheme string
	Phoneme  string
	Head     bool
	Tail     bool
}

// Windows lists every run of 1 to MaxWindow chunks of w.
func Windows(w *lexicon.Word) []Window {
	graph := w.Alignment.GraphemeChunks()
	phone := w.Alignment.PhonemeChunks()
	n := len(graph)

	var out []Window
	for k := 1; k <= MaxWindow && k <= n; k++ {
		for i := 0; i+k <= n; i++ {
			out = append(out, Window{
				Grapheme: strings.Join(phonetic.Flatten(graph[i:i+k]), ""),
				Phoneme:  PhonemeKey(phonetic.Flatten(phone[i : i+k])),
				Head:     i == 0,
				Tail:     i+k == n,
			})
		}
	}
	return out
}

// Counter accumulates fragment counts one word at a time.
type Counter struct {
	words  int
	tables [2]map[string]*Counts
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{tables: [2]map[string]*Counts{{}, {}}}
}

// Add counts every window of w. A fragment repeated inside one word is
// counted once per occurrence.
func (c *Counter) Add(w *lexicon.Word) {
	c.words++
	for _, win := range Windows(w) {
		c.bump(Grapheme, win.Grapheme, win)
		c.bump(Phoneme, win.Phoneme, win)
	}
}

func (c *Counter) bump(kind Kind, key string, win Window) {
	if key == "" {
		return
	}
	counts, ok := c.tables[kind][key]
	if !ok {
		counts = &Counts{}
		c.tables[kind][key] = counts
	}
	counts.All++
	if win.Head {
		counts.Head++
	}
	if win.Tail {
		counts.Tail++
	}
}

// Words returns the number of words added.
func (c *Counter) Words() int { return c.words }

// Model freezes the counts into a Model over the words added so far.
func (c *Counter) Model() *Model {
	m := NewModel(c.words)
	for kind, table := range c.tables {
		for key, counts := range table {
			m.Set(Kind(kind), key, *counts)
		}
	}
	return m
}

// Build counts every window of every word.
func Build(words []*lexicon.Word) *Model {
	c := NewCounter()
	for _, w := range words {
		c.Add(w)
	}
	return c.Model()
}
