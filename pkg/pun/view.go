package pun

import (
	"fmt"

	"github.com/bastiangx/wordplay/pkg/phonetic"
)

// PortmanteauView is the display form of a Portmanteau.
type PortmanteauView struct {
	Grapheme    string  `msgpack:"grapheme_portmanteau"`
	Grapheme1   string  `msgpack:"grapheme1"`
	Grapheme2   string  `msgpack:"grapheme2"`
	Phoneme     string  `msgpack:"phoneme_portmanteau"`
	Phoneme1    string  `msgpack:"phoneme1"`
	Phoneme2    string  `msgpack:"phoneme2"`
	Distance    string  `msgpack:"phonetic_distance"`
	Probability string  `msgpack:"phonetic_probability"`
	RawDistance int     `msgpack:"d"`
	RawProb     float64 `msgpack:"p"`
}

// RhymeView is the display form of a Rhyme.
type RhymeView struct {
	Grapheme1   string  `msgpack:"grapheme1"`
	Grapheme2   string  `msgpack:"grapheme2"`
	Phoneme1    string  `msgpack:"phoneme1"`
	Phoneme2    string  `msgpack:"phoneme2"`
	Distance    string  `msgpack:"phonetic_distance"`
	Probability string  `msgpack:"phonetic_probability"`
	RawDistance int     `msgpack:"d"`
	RawProb     float64 `msgpack:"p"`
}

// View renders p for display.
func (p *Portmanteau) View() PortmanteauView {
	return PortmanteauView{
		Grapheme:    p.Grapheme,
		Grapheme1:   p.Word1.Grapheme,
		Grapheme2:   p.Word2.Grapheme,
		Phoneme:     phonetic.Render(p.Phoneme),
		Phoneme1:    p.Word1.Rendered(),
		Phoneme2:    p.Word2.Rendered(),
		Distance:    fmt.Sprintf("%d", p.Distance),
		Probability: fmt.Sprintf("%.2e", p.Prob),
		RawDistance: p.Distance,
		RawProb:     p.Prob,
	}
}

// View renders r for display.
func (r *Rhyme) View() RhymeView {
	return RhymeView{
		Grapheme1:   r.Word1.Grapheme,
		Grapheme2:   r.Word2.Grapheme,
		Phoneme1:    r.Word1.Rendered(),
		Phoneme2:    r.Word2.Rendered(),
		Distance:    fmt.Sprintf("%d", r.Distance),
		Probability: fmt.Sprintf("%.2e", r.Prob),
		RawDistance: r.Distance,
		RawProb:     r.Prob,
	}
}
