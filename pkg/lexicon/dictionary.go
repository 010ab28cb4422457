package lexicon

import (
	"context"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	phoneticThreshold = 0.70
	fuzzyThreshold    = 0.85
)

// Dictionary is an in-memory pronunciation dictionary keyed by grapheme.
// It is filled once by a loader and read-only afterwards.
type Dictionary struct {
	trie *patricia.Trie
	size int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{trie: patricia.NewTrie()}
}

// Add inserts w unless its grapheme is already present; the first
// pronunciation of a grapheme wins.
func (d *Dictionary) Add(w *Word) bool {
	if w == nil || w.Grapheme == "" {
		return false
	}
	if !d.trie.Insert(patricia.Prefix(w.Grapheme), w) {
		return false
	}
	d.size++
	return true
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return d.size }

// Lookup returns the word spelled exactly as grapheme.
func (d *Dictionary) Lookup(grapheme string) (*Word, bool) {
	item := d.trie.Get(patricia.Prefix(grapheme))
	if item == nil {
		return nil, false
	}
	w, ok := item.(*Word)
	return w, ok
}

// Resolve looks up every grapheme, trying alternate capitalizations before
// giving up. The result is keyed by the requested grapheme and omits misses.
func (d *Dictionary) Resolve(ctx context.Context, graphemes []string) (map[string]*Word, error) {
	out := make(map[string]*Word, len(graphemes))
	for _, g := range graphemes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, alt := range utils.AlternateCapitalizations(g) {
			if w, ok := d.Lookup(alt); ok {
				out[g] = w
				break
			}
		}
	}
	return out, nil
}

// Words returns every word in grapheme order.
func (d *Dictionary) Words() []*Word {
	words := make([]*Word, 0, d.size)
	err := d.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		if w, ok := item.(*Word); ok {
			words = append(words, w)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary: %v", err)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Grapheme < words[j].Grapheme })
	return words
}

// Suggest proposes up to limit known spellings for an unknown grapheme.
// Candidates share its first letter; those sharing a Double Metaphone code
// need a Jaro-Winkler score of phoneticThreshold, the rest fuzzyThreshold.
func (d *Dictionary) Suggest(grapheme string, limit int) []string {
	g := strings.ToLower(strings.TrimSpace(grapheme))
	if g == "" || limit <= 0 {
		return nil
	}
	codes := metaphoneCodes(g)

	type scored struct {
		word  string
		score float64
	}
	var candidates []scored
	first := string([]rune(g)[:1])
	err := d.trie.VisitSubtree(patricia.Prefix(first), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == g {
			return nil
		}
		score := matchr.JaroWinkler(g, word, false)
		threshold := fuzzyThreshold
		if sharesCode(codes, metaphoneCodes(word)) {
			threshold = phoneticThreshold
		}
		if score >= threshold {
			candidates = append(candidates, scored{word: word, score: score})
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].word < candidates[j].word
	})

	filter := utils.NewDedupFilter(g)
	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		if filter.ShouldInclude(c.word) {
			out = append(out, c.word)
		}
	}
	return out
}

func metaphoneCodes(word string) []string {
	p, s := matchr.DoubleMetaphone(word)
	codes := make([]string, 0, 2)
	if p != "" {
		codes = append(codes, p)
	}
	if s != "" && s != p {
		codes = append(codes, s)
	}
	return codes
}

func sharesCode(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
