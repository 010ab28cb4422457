package pun

import (
	"fmt"
	"math"

	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
)

// Portmanteau blends the tail of Word1 into the head of Word2.
//
// Grapheme and Phoneme hold the primary blend, the one whose dangling
// remainder is harder to guess; AltGrapheme and AltPhoneme hold the other.
type Portmanteau struct {
	Word1 *lexicon.Word
	Word2 *lexicon.Word

	Grapheme    string
	AltGrapheme string
	Phoneme     []string
	AltPhoneme  []string

	// Reconstruction chance of each word from its dangling letters.
	Reconstruct1 float64
	Reconstruct2 float64

	Overlap
}

// BuildPortmanteau tries overlaps from one phone upwards and returns the
// first that passes: the shortest viable overlap wins.
func BuildPortmanteau(w1, w2 *lexicon.Word, model FrequencyModel, cfg Config) (*Portmanteau, error) {
	metric := cfg.metric()
	n1, n2 := len(w1.Phoneme), len(w2.Phoneme)
	failure := &BuildFailure{Word1: w1.Grapheme, Word2: w2.Grapheme}

	for size := 1; size < min(n1, n2); size++ {
		win := window{
			phones1: w1.Phoneme[n1-size:],
			phones2: w2.Phoneme[:size],
			start1:  n1 - size,
			start2:  0,
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
		if n1-size < cfg.MinNonOverlapPhones || n2-size < cfg.MinNonOverlapPhones {
			failure.Reasons = append(failure.Reasons, &InsufficientOverlapError{Reason: ReasonRemainder, Len: size})
			continue
		}

		if _, _, err := w1.SubgraphemeIndices(win.start1, n1-1); err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w1.Grapheme, err))
			continue
		}
		if _, _, err := w2.SubgraphemeIndices(0, size-1); err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w2.Grapheme, err))
			continue
		}

		// Leftovers come from their own phone ranges so silent letters
		// next to the overlap stay with the word they belong to.
		rest1, err := w1.Subgrapheme(0, win.start1-1)
		if err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w1.Grapheme, err))
			continue
		}
		rest2, err := w2.Subgrapheme(size, n2-1)
		if err != nil {
			failure.Reasons = append(failure.Reasons, fmt.Errorf("%s: %w", w2.Grapheme, err))
			continue
		}

		p := &Portmanteau{
			Word1:        w1,
			Word2:        w2,
			Grapheme:     w1.Grapheme + rest2,
			AltGrapheme:  rest1 + w2.Grapheme,
			Phoneme:      concat(w1.Phoneme, w2.Phoneme[size:]),
			AltPhoneme:   concat(w1.Phoneme[:n1-size], w2.Phoneme),
			Reconstruct1: model.Reconstruction(rest1, frequency.Head),
			Reconstruct2: model.Reconstruction(rest2, frequency.Tail),
			Overlap: Overlap{
				Vowels:     vowels,
				Consonants: consonants,
				Phones:     vowels + consonants,
				Distance:   dist,
				Prob: model.PhonemeProbability(win.phones1, frequency.Tail) *
					model.PhonemeProbability(win.phones2, frequency.Head),
			},
		}
		// Truncate whichever word is easier to guess from its leftovers.
		if p.Reconstruct1 > p.Reconstruct2 {
			p.Grapheme, p.AltGrapheme = p.AltGrapheme, p.Grapheme
			p.Phoneme, p.AltPhoneme = p.AltPhoneme, p.Phoneme
		}
		return p, nil
	}
	return nil, failure
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Key ranks by distance, then by log overlap probability.
func (p *Portmanteau) Key() Key {
	return Key{Distance: p.Distance, Probability: math.Log(p.Prob)}
}

// Score folds distance and log probability into one number; lower is better.
func (p *Portmanteau) Score(cfg Config) float64 {
	return cfg.DistanceCoefficient*float64(p.Distance) + cfg.ProbabilityCoefficient*math.Log(p.Prob)
}

// Accept reports whether p clears the configured score cutoff.
func (p *Portmanteau) Accept(cfg Config) bool {
	return !cfg.EnableCutoff || p.Score(cfg) < cfg.PortmanteauCutoff
}

// Identity is equal for portmanteaus with the same words and blends.
func (p *Portmanteau) Identity() string {
	return p.Word1.Grapheme + "\x00" + p.Word2.Grapheme + "\x00" + p.Grapheme + "\x00" + p.AltGrapheme
}

func (p *Portmanteau) String() string {
	return fmt.Sprintf("%s (%s/%s)", p.Grapheme, p.Word1.Grapheme, p.Word2.Grapheme)
}
