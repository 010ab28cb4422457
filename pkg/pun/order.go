package pun

import "github.com/bastiangx/wordplay/pkg/lexicon"

type posPair struct{ first, second lexicon.POS }

// posOrdering says whether a pair in this order reads naturally (true) or
// should be flipped (false). Pairs not listed carry no preference.
var posOrdering = map[posPair]bool{
	{lexicon.Noun, lexicon.Verb}:           true,
	{lexicon.Verb, lexicon.Noun}:           false,
	{lexicon.Adjective, lexicon.Noun}:      true,
	{lexicon.Noun, lexicon.Adjective}:      false,
	{lexicon.AdjSatellite, lexicon.Noun}:   true,
	{lexicon.Noun, lexicon.AdjSatellite}:   false,
	{lexicon.Noun, lexicon.Adverb}:         true,
	{lexicon.Adverb, lexicon.Noun}:         false,
	{lexicon.Adjective, lexicon.Verb}:      true,
	{lexicon.Verb, lexicon.Adjective}:      false,
	{lexicon.Adverb, lexicon.Adjective}:    true,
	{lexicon.Adjective, lexicon.Adverb}:    false,
	{lexicon.AdjSatellite, lexicon.Verb}:   true,
	{lexicon.Verb, lexicon.AdjSatellite}:   false,
	{lexicon.Adverb, lexicon.AdjSatellite}: true,
	{lexicon.AdjSatellite, lexicon.Adverb}: false,
	{lexicon.Adverb, lexicon.Verb}:         true,
	{lexicon.Verb, lexicon.Adverb}:         false,
}

// orderWords puts a rhyming pair in reading order. Parts of speech decide
// when both are known and the table has an opinion; otherwise the word
// with the longer lead-in goes first so the rhyming endings sit together,
// and equal lead-ins fall back to spelling order.
func orderWords(w1, w2 *lexicon.Word, lead1, lead2 int, pos POSLookup) (*lexicon.Word, *lexicon.Word) {
	if pos != nil {
		p1, ok1 := pos.PrimaryPOS(w1.Grapheme)
		p2, ok2 := pos.PrimaryPOS(w2.Grapheme)
		if ok1 && ok2 {
			if keep, ok := posOrdering[posPair{p1, p2}]; ok {
				if keep {
					return w1, w2
				}
				return w2, w1
			}
		}
	}
	switch {
	case lead1 < lead2:
		return w2, w1
	case lead1 == lead2 && w2.Grapheme < w1.Grapheme:
		return w2, w1
	}
	return w1, w2
}
