package lexicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/charmbracelet/log"
)

// ErrUnknownSeed is returned when a seed has no neighbor entry.
var ErrUnknownSeed = errors.New("lexicon: unknown seed")

// NeighborTable maps a seed grapheme to its precomputed semantic neighbors.
type NeighborTable struct {
	rows map[string][]string
}

// NewNeighborTable returns a table holding rows as given.
func NewNeighborTable(rows map[string][]string) *NeighborTable {
	t := &NeighborTable{rows: make(map[string][]string, len(rows))}
	for seed, n := range rows {
		t.rows[seed] = append([]string(nil), n...)
	}
	return t
}

// LoadNeighbors reads "seed<TAB>n1,n2,..." lines.
func LoadNeighbors(r io.Reader) (*NeighborTable, error) {
	t := &NeighborTable{rows: make(map[string][]string)}
	err := scanRecords(r, func(line int, fields []string) error {
		if len(fields) < 2 {
			log.Debugf("Skipping neighbor line %d: expected 2 fields", line)
			return nil
		}
		var neighbors []string
		for _, n := range strings.Split(fields[1], ",") {
			if n = strings.TrimSpace(n); n != "" {
				neighbors = append(neighbors, n)
			}
		}
		t.rows[strings.TrimSpace(fields[0])] = neighbors
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read neighbors: %w", err)
	}
	return t, nil
}

// LoadNeighborsFile validates and loads a neighbor table from disk.
func LoadNeighborsFile(path string) (*NeighborTable, error) {
	if err := ValidateFileFormat(path, FormatNeighbors); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open neighbors %s: %w", path, err)
	}
	defer f.Close()
	return LoadNeighbors(f)
}

// Neighbors returns up to limit neighbors of seed, lower-cased and
// deduplicated, keeping table order. Alternate capitalizations of the seed
// are tried in turn; a seed with no row yields ErrUnknownSeed.
func (t *NeighborTable) Neighbors(ctx context.Context, seed string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, alt := range utils.AlternateCapitalizations(seed) {
		if row, ok := t.rows[alt]; ok {
			return NormalizeNeighbors(row, limit), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSeed, seed)
}

// Rows returns a copy of the table.
func (t *NeighborTable) Rows() map[string][]string {
	out := make(map[string][]string, len(t.rows))
	for seed, n := range t.rows {
		out[seed] = append([]string(nil), n...)
	}
	return out
}

// NormalizeNeighbors lower-cases and deduplicates graphemes, dropping empty
// ones, and truncates to limit when limit is positive.
func NormalizeNeighbors(graphemes []string, limit int) []string {
	filter := utils.NewDedupFilter()
	out := make([]string, 0, len(graphemes))
	for _, g := range graphemes {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" || !filter.ShouldInclude(g) {
			continue
		}
		out = append(out, g)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
