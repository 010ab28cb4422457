package search

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordplay/pkg/lexicon"
)

// UnknownSeedError reports a seed that produced no usable words, with
// spelling suggestions when a dictionary could offer any.
type UnknownSeedError struct {
	Seed        string
	Suggestions []string
}

func (e *UnknownSeedError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown seed %q", e.Seed)
	}
	return fmt.Sprintf("unknown seed %q, did you mean: %s?", e.Seed, strings.Join(e.Suggestions, ", "))
}

func (e *UnknownSeedError) Unwrap() error { return lexicon.ErrUnknownSeed }
