package pun

import (
	"errors"
	"fmt"
)

// ErrNoOverlap means no window of the pair passed every check.
var ErrNoOverlap = errors.New("pun: no overlap within distance threshold")

// Reasons an otherwise close window was rejected.
const (
	ReasonVowel     = "vowel"
	ReasonConsonant = "consonant"
	ReasonLength    = "length"
	ReasonOnset     = "onset"
	ReasonRemainder = "remainder"
)

// InsufficientOverlapError rejects a window that is phonetically close but
// linguistically unusable.
type InsufficientOverlapError struct {
	Reason string
	Len    int
}

func (e *InsufficientOverlapError) Error() string {
	return fmt.Sprintf("pun: %d-phone overlap rejected: not enough %s", e.Len, e.Reason)
}

// BuildFailure is returned when a pair yields no candidate. It unwraps to
// ErrNoOverlap and to every rejection recorded along the way.
type BuildFailure struct {
	Word1   string
	Word2   string
	Reasons []error
}

func (f *BuildFailure) Error() string {
	return fmt.Sprintf("pun: %s/%s: no overlap within distance threshold (%d windows rejected)",
		f.Word1, f.Word2, len(f.Reasons))
}

func (f *BuildFailure) Unwrap() []error {
	return append([]error{ErrNoOverlap}, f.Reasons...)
}
