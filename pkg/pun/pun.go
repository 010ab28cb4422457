/*
Package pun builds portmanteaus and rhymes out of pairs of words.

Both builders scan a window of phones at the edge of each word, accept the
first window that is phonetically close enough and linguistically sound, and
translate it back to letters through the words' chunk alignments. They are
pure functions of their inputs: the words, a read-only frequency model and a
Config. A pair that cannot be combined yields a *BuildFailure describing
every rejected window.

	p, err := pun.BuildPortmanteau(labrador, dormitory, model, pun.DefaultConfig())
	if errors.Is(err, pun.ErrNoOverlap) {
		// nothing to blend
	}
	fmt.Println(p) // labradormitory (labrador/dormitory)
*/
package pun

import (
	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// FrequencyModel is the part of frequency.Model the builders read.
type FrequencyModel interface {
	PhonemeProbability(phones []string, side frequency.Side) float64
	Reconstruction(sub string, side frequency.Side) float64
}

// POSLookup reports the primary part of speech of a word.
type POSLookup interface {
	PrimaryPOS(grapheme string) (lexicon.POS, bool)
}

// Key orders candidates: lower distance first, then lower probability.
type Key struct {
	Distance    int
	Probability float64
}

// Less reports whether k ranks ahead of o.
func (k Key) Less(o Key) bool {
	if k.Distance != o.Distance {
		return k.Distance < o.Distance
	}
	return k.Probability < o.Probability
}

// Overlap describes the matched window shared by two words.
type Overlap struct {
	Vowels     int
	Consonants int
	Phones     int
	Distance   int
	Prob       float64
}

// window is one candidate overlap, already sliced from both words.
type window struct {
	phones1 []string
	phones2 []string
	start1  int
	start2  int
}

// checkOverlap applies the phone class minimums shared by both builders.
func checkOverlap(cfg Config, phones []string) (vowels, consonants int, err error) {
	vowels, consonants = phonetic.CountClasses(phones)
	switch {
	case vowels < cfg.MinOverlapVowelPhones:
		return vowels, consonants, &InsufficientOverlapError{Reason: ReasonVowel, Len: len(phones)}
	case consonants < cfg.MinOverlapConsonantPhones:
		return vowels, consonants, &InsufficientOverlapError{Reason: ReasonConsonant, Len: len(phones)}
	}
	return vowels, consonants, nil
}
