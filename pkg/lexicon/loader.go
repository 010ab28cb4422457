package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadStats summarizes a load.
type LoadStats struct {
	Lines      int
	Loaded     int
	Skipped    int
	Duplicates int
}

// scanRecords calls fn with the tab separated fields of every data line.
// Blank lines and lines starting with '#' are ignored.
func scanRecords(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, strings.Split(line, "\t")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// LoadAligned reads an aligned dictionary, one "graphemes<TAB>phonemes"
// entry per line. Malformed lines are logged and skipped.
func LoadAligned(r io.Reader) (*Dictionary, LoadStats, error) {
	dict := NewDictionary()
	var stats LoadStats

	err := scanRecords(r, func(line int, fields []string) error {
		stats.Lines++
		if len(fields) < 2 {
			log.Debugf("Skipping line %d: expected 2 fields, got %d", line, len(fields))
			stats.Skipped++
			return nil
		}
		w, err := ParseWord(fields[0], fields[1])
		if err != nil {
			log.Debugf("Skipping line %d: %v", line, err)
			stats.Skipped++
			return nil
		}
		if !dict.Add(w) {
			stats.Duplicates++
			return nil
		}
		stats.Loaded++
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("read aligned dictionary: %w", err)
	}
	if stats.Skipped > 0 {
		log.Warnf("Skipped %d malformed dictionary lines", stats.Skipped)
	}
	return dict, stats, nil
}

// LoadAlignedFile validates and loads an aligned dictionary from disk.
func LoadAlignedFile(path string) (*Dictionary, error) {
	if err := ValidateFileFormat(path, FormatAligned); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	dict, stats, err := LoadAligned(f)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d words from %s (%d lines, %d duplicates)", stats.Loaded, path, stats.Lines, stats.Duplicates)
	return dict, nil
}
