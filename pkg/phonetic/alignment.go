package phonetic

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBoundary matches every *BoundaryError.
var ErrBoundary = errors.New("phonetic: range does not follow chunk boundaries")

// ErrChunkCount is returned when the two sides of an alignment differ in length.
var ErrChunkCount = errors.New("phonetic: grapheme and phoneme chunk counts differ")

// Edges reported by BoundaryError.
const (
	EdgeStart = "start"
	EdgeEnd   = "end"
)

// BoundaryError reports an index that cuts through a chunk.
type BoundaryError struct {
	Edge  string
	Index int
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("phonetic: %s index %d falls inside a chunk", e.Edge, e.Index)
}

func (e *BoundaryError) Is(target error) bool {
	return target == ErrBoundary
}

// Chunk is an aligned unit of zero or more symbols. An empty phoneme chunk
// marks a silent letter.
type Chunk []string

// Len returns the number of symbols in the chunk.
func (c Chunk) Len() int { return len(c) }

// Flatten concatenates the symbols of chunks in order.
func Flatten(chunks []Chunk) []string {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	out := make([]string, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// bounds caches the first and last symbol index covered by each chunk of one side.
// starts and ends are non-decreasing so both are searchable.
type bounds struct {
	starts []int
	ends   []int
	total  int
}

func newBounds(chunks []Chunk) bounds {
	b := bounds{
		starts: make([]int, len(chunks)),
		ends:   make([]int, len(chunks)),
	}
	cum := 0
	for i, c := range chunks {
		b.starts[i] = cum
		cum += len(c)
		b.ends[i] = cum - 1
	}
	b.total = cum
	return b
}

// startChunk returns the lowest chunk beginning at idx, which pulls in
// silent chunks that sit right before it.
func (b bounds) startChunk(idx int) (int, bool) {
	i := sort.SearchInts(b.starts, idx)
	if i < len(b.starts) && b.starts[i] == idx {
		return i, true
	}
	return 0, false
}

// endChunk returns the highest chunk finishing at idx, which pulls in
// silent chunks that follow it.
func (b bounds) endChunk(idx int) (int, bool) {
	i := sort.SearchInts(b.ends, idx+1) - 1
	if i >= 0 && b.ends[i] == idx {
		return i, true
	}
	return 0, false
}

func (b bounds) chunkSpan(start, end int) (int, int, error) {
	if start < 0 || start > end || end >= b.total {
		return 0, 0, fmt.Errorf("phonetic: range [%d, %d] outside [0, %d): %w", start, end, b.total, ErrBoundary)
	}
	first, ok := b.startChunk(start)
	if !ok {
		return 0, 0, &BoundaryError{Edge: EdgeStart, Index: start}
	}
	last, ok := b.endChunk(end)
	if !ok {
		return 0, 0, &BoundaryError{Edge: EdgeEnd, Index: end}
	}
	return first, last, nil
}

// Alignment pairs grapheme chunks with phoneme chunks of equal count so that
// graph[i] spells phone[i]. It is immutable and safe for concurrent use.
type Alignment struct {
	graph  []Chunk
	phone  []Chunk
	graphB bounds
	phoneB bounds
}

// NewAlignment validates the chunk counts and precomputes boundary tables.
func NewAlignment(graph, phone []Chunk) (*Alignment, error) {
	if len(graph) != len(phone) {
		return nil, fmt.Errorf("%w: %d graphemes, %d phonemes", ErrChunkCount, len(graph), len(phone))
	}
	a := &Alignment{
		graph: cloneChunks(graph),
		phone: cloneChunks(phone),
	}
	a.graphB = newBounds(a.graph)
	a.phoneB = newBounds(a.phone)
	return a, nil
}

func cloneChunks(in []Chunk) []Chunk {
	out := make([]Chunk, len(in))
	for i, c := range in {
		out[i] = append(Chunk(nil), c...)
	}
	return out
}

// Len returns the number of chunk pairs.
func (a *Alignment) Len() int { return len(a.graph) }

// GraphemeChunks returns a copy of the grapheme side.
func (a *Alignment) GraphemeChunks() []Chunk { return cloneChunks(a.graph) }

// PhonemeChunks returns a copy of the phoneme side.
func (a *Alignment) PhonemeChunks() []Chunk { return cloneChunks(a.phone) }

// Graphemes returns the flattened grapheme symbols.
func (a *Alignment) Graphemes() []string { return Flatten(a.graph) }

// Phonemes returns the flattened phone symbols.
func (a *Alignment) Phonemes() []string { return Flatten(a.phone) }

// ChunkRange returns the grapheme symbols spelling the inclusive phone range
// [start, end]. The range has to cover whole phoneme chunks.
func (a *Alignment) ChunkRange(start, end int) ([]string, error) {
	first, last, err := a.phoneB.chunkSpan(start, end)
	if err != nil {
		return nil, err
	}
	return Flatten(a.graph[first : last+1]), nil
}

// IndexRange is ChunkRange returning the inclusive grapheme index range
// instead of the symbols.
func (a *Alignment) IndexRange(start, end int) (int, int, error) {
	first, last, err := a.phoneB.chunkSpan(start, end)
	if err != nil {
		return 0, 0, err
	}
	return a.graphB.starts[first], a.graphB.ends[last], nil
}

// PhoneIndexRange translates the inclusive grapheme range [start, end] back
// into phone indices. The range has to cover whole grapheme chunks.
func (a *Alignment) PhoneIndexRange(start, end int) (int, int, error) {
	first, last, err := a.graphB.chunkSpan(start, end)
	if err != nil {
		return 0, 0, err
	}
	return a.phoneB.starts[first], a.phoneB.ends[last], nil
}
