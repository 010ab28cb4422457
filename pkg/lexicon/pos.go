package lexicon

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// POS is a WordNet part of speech.
type POS string

const (
	Noun         POS = "n"
	Verb         POS = "v"
	Adjective    POS = "a"
	AdjSatellite POS = "s"
	Adverb       POS = "r"
)

// Valid reports whether p is one of the WordNet categories.
func (p POS) Valid() bool {
	switch p {
	case Noun, Verb, Adjective, AdjSatellite, Adverb:
		return true
	}
	return false
}

// POSTable maps graphemes to their primary part of speech.
type POSTable struct {
	rows map[string]POS
}

// NewPOSTable returns a table holding rows as given.
func NewPOSTable(rows map[string]POS) *POSTable {
	t := &POSTable{rows: make(map[string]POS, len(rows))}
	for g, p := range rows {
		t.rows[g] = p
	}
	return t
}

// LoadPOS reads "grapheme<TAB>pos" lines; unknown categories are skipped.
func LoadPOS(r io.Reader) (*POSTable, error) {
	t := &POSTable{rows: make(map[string]POS)}
	err := scanRecords(r, func(line int, fields []string) error {
		if len(fields) < 2 {
			log.Debugf("Skipping pos line %d: expected 2 fields", line)
			return nil
		}
		p := POS(strings.ToLower(strings.TrimSpace(fields[1])))
		if !p.Valid() {
			log.Debugf("Skipping pos line %d: unknown category %q", line, fields[1])
			return nil
		}
		t.rows[strings.TrimSpace(fields[0])] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read pos table: %w", err)
	}
	return t, nil
}

// LoadPOSFile validates and loads a part of speech table from disk.
func LoadPOSFile(path string) (*POSTable, error) {
	if err := ValidateFileFormat(path, FormatPOS); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pos table %s: %w", path, err)
	}
	defer f.Close()
	return LoadPOS(f)
}

// PrimaryPOS returns the primary category of grapheme, if known.
func (t *POSTable) PrimaryPOS(grapheme string) (POS, bool) {
	if t == nil {
		return "", false
	}
	p, ok := t.rows[grapheme]
	if !ok {
		p, ok = t.rows[strings.ToLower(grapheme)]
	}
	return p, ok
}
