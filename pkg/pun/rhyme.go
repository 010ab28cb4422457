package pun

import (
	"fmt"

	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// Rhyme pairs two words whose endings sound alike, in display order.
type Rhyme struct {
	Word1 *lexicon.Word
	Word2 *lexicon.Word

	Overlap
}

// BuildRhyme tries the longest shared ending first and shrinks it until
// one passes. pos may be nil.
func BuildRhyme(w1, w2 *lexicon.Word, model FrequencyModel, pos POSLookup, cfg Config) (*Rhyme, error) {
	metric := cfg.metric()
	n1, n2 := len(w1.Phoneme), len(w2.Phoneme)
	failure := &BuildFailure{Word1: w1.Grapheme, Word2: w2.Grapheme}

	for size := min(n1, n2) - 1; size > 0; size-- {
		win := window{
			phones1: w1.Phoneme[n1-size:],
			phones2: w2.Phoneme[n2-size:],
			start1:  n1 - size,
			start2:  n2 - size,
		}
		dist := metric.PhonemeDistance(win.phones1, win.phones2)
		if dist > cfg.MaxOverlapDistance {
			continue
		}

		vowels, consonants, err := checkOverlap(cfg, win.phones1)
		if err != nil {
			failure.Reasons = append(failure.Reasons, err)
			continue
		}
		if size < cfg.MinOverlapPhones {
			failure.Reasons = append(failure.Reasons, &InsufficientOverlapError{Reason: ReasonLength, Len: size})
			continue
		}
		if !phonetic.IsVowel(win.phones1[0]) {
			failure.Reasons = append(failure.Reasons, &InsufficientOverlapError{Reason: ReasonOnset, Len: size})
			continue
		}

		if _, _, err := w1.SubgraphemeIndices(win.start1, n1-1); err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w1.Grapheme, err))
			continue
		}
		if _, _, err := w2.SubgraphemeIndices(win.start2, n2-1); err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w2.Grapheme, err))
			continue
		}

		first, second := orderWords(w1, w2, win.start1, win.start2, pos)
		return &Rhyme{
			Word1: first,
			Word2: second,
			Overlap: Overlap{
				Vowels:     vowels,
				Consonants: consonants,
				Phones:     vowels + consonants,
				Distance:   dist,
				Prob: model.PhonemeProbability(win.phones1, frequency.Tail) *
					model.PhonemeProbability(win.phones2, frequency.Tail),
			},
		}, nil
	}
	return nil, failure
}

// Key ranks by distance, then by overlap probability.
func (r *Rhyme) Key() Key {
	return Key{Distance: r.Distance, Probability: r.Prob}
}

// Identity is equal for rhymes over the same ordered words.
func (r *Rhyme) Identity() string {
	return r.Word1.Grapheme + "\x00" + r.Word2.Grapheme
}

func (r *Rhyme) String() string {
	return fmt.Sprintf("%s %s", r.Word1.Grapheme, r.Word2.Grapheme)
}
