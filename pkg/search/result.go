package search

import "github.com/bastiangx/wordplay/pkg/pun"

// Result is the ranked output of one search.
type Result struct {
	Seed1        string
	Seed2        string
	Portmanteaus []*pun.Portmanteau
	Rhymes       []*pun.Rhyme
	// Pairs is the number of word pairs handed to the builders.
	Pairs int
}

// View is the display form of a Result.
type View struct {
	Portmanteaus []pun.PortmanteauView `msgpack:"portmanteaus"`
	Rhymes       []pun.RhymeView       `msgpack:"rhymes"`
}

// View renders every candidate of r.
func (r *Result) View() View {
	v := View{
		Portmanteaus: make([]pun.PortmanteauView, len(r.Portmanteaus)),
		Rhymes:       make([]pun.RhymeView, len(r.Rhymes)),
	}
	for i, p := range r.Portmanteaus {
		v.Portmanteaus[i] = p.View()
	}
	for i, rh := range r.Rhymes {
		v.Rhymes[i] = rh.View()
	}
	return v
}
