package phonetic

import (
	"fmt"
	"strings"
)

// Separators of the aligned corpus encoding, e.g. "c|o|g|n|a|c" against
// "K|OW1|_|N:Y|AE2|K".
const (
	ChunkDivider = "|"
	SymbolJoiner = ":"
	SilentMarker = "_"
)

// ParseChunks splits one side of an aligned entry into chunks. A trailing
// divider is ignored and a chunk written as SilentMarker is empty.
func ParseChunks(s string) ([]Chunk, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ChunkDivider)
	if s == "" {
		return nil, fmt.Errorf("phonetic: empty chunk sequence")
	}
	parts := strings.Split(s, ChunkDivider)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("phonetic: empty chunk %d in %q", i, s)
		}
		if part == SilentMarker {
			chunks = append(chunks, Chunk{})
			continue
		}
		symbols := strings.Split(part, SymbolJoiner)
		for _, sym := range symbols {
			if sym == "" {
				return nil, fmt.Errorf("phonetic: empty symbol in chunk %q", part)
			}
		}
		chunks = append(chunks, Chunk(symbols))
	}
	return chunks, nil
}

// FormatChunks is the inverse of ParseChunks.
func FormatChunks(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		if len(c) == 0 {
			parts[i] = SilentMarker
			continue
		}
		parts[i] = strings.Join(c, SymbolJoiner)
	}
	return strings.Join(parts, ChunkDivider)
}

// ParseAlignment parses both sides of an aligned entry.
func ParseAlignment(graphemes, phonemes string) (*Alignment, error) {
	g, err := ParseChunks(graphemes)
	if err != nil {
		return nil, fmt.Errorf("graphemes: %w", err)
	}
	p, err := ParseChunks(phonemes)
	if err != nil {
		return nil, fmt.Errorf("phonemes: %w", err)
	}
	return NewAlignment(g, p)
}
