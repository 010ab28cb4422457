package frequency

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// Store serves fragment counts, typically from a slower backend.
type Store interface {
	Counts(ctx context.Context, kind Kind, keys []string) (map[string]Counts, error)
	VocabSize() int
}

// ScopeKeys returns the distinct grapheme and phoneme fragments of 1 to
// MaxWindow chunks at the head or tail of each word, sorted.
func ScopeKeys(words []*lexicon.Word) (graphemes, phonemes []string) {
	gs := make(map[string]struct{})
	ps := make(map[string]struct{})
	for _, w := range words {
		graph := w.Alignment.GraphemeChunks()
		phone := w.Alignment.PhonemeChunks()
		n := len(graph)
		for k := 1; k <= MaxWindow && k <= n; k++ {
			for _, i := range []int{0, n - k} {
				gs[strings.Join(phonetic.Flatten(graph[i:i+k]), "")] = struct{}{}
				if p := PhonemeKey(phonetic.Flatten(phone[i : i+k])); p != "" {
					ps[p] = struct{}{}
				}
			}
		}
	}
	return sortedKeys(gs), sortedKeys(ps)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Scope fetches, in one request per kind, the counts of every head and tail
// fragment of words and freezes them into a Model with the store's
// vocabulary size. Lookups of those fragments match the store exactly.
func Scope(ctx context.Context, store Store, words []*lexicon.Word) (*Model, error) {
	graphemes, phonemes := ScopeKeys(words)
	m := NewModel(store.VocabSize())

	for _, q := range []struct {
		kind Kind
		keys []string
	}{{Grapheme, graphemes}, {Phoneme, phonemes}} {
		if len(q.keys) == 0 {
			continue
		}
		counts, err := store.Counts(ctx, q.kind, q.keys)
		if err != nil {
			return nil, fmt.Errorf("scope %s fragments: %w", q.kind, err)
		}
		for k, c := range counts {
			m.Set(q.kind, k, c)
		}
	}
	return m, nil
}
