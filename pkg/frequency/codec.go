package frequency

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// fileVersion is bumped whenever the on-disk layout changes.
const fileVersion = 1

// fileTables is the msgpack layout of a .freq file.
type fileTables struct {
	Version   int               `msgpack:"v"`
	VocabSize int               `msgpack:"n"`
	Graphemes map[string]Counts `msgpack:"g"`
	Phonemes  map[string]Counts `msgpack:"p"`
}

// Encode writes m to w as msgpack.
func Encode(w io.Writer, m *Model) error {
	out := fileTables{
		Version:   fileVersion,
		VocabSize: m.vocabSize,
		Graphemes: make(map[string]Counts, m.Len(Grapheme)),
		Phonemes:  make(map[string]Counts, m.Len(Phoneme)),
	}
	for kind, dst := range map[Kind]map[string]Counts{Grapheme: out.Graphemes, Phoneme: out.Phonemes} {
		err := m.Visit(kind, func(key string, c Counts) error {
			dst[key] = c
			return nil
		})
		if err != nil {
			return err
		}
	}

	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(&out)
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (*Model, error) {
	var in fileTables
	if err := msgpack.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode frequency tables: %w", err)
	}
	if in.Version != fileVersion {
		return nil, fmt.Errorf("unsupported frequency file version %d", in.Version)
	}
	m := NewModel(in.VocabSize)
	for k, c := range in.Graphemes {
		m.Set(Grapheme, k, c)
	}
	for k, c := range in.Phonemes {
		m.Set(Phoneme, k, c)
	}
	return m, nil
}

// SaveFile writes m to path.
func SaveFile(path string, m *Model) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	buf := bufio.NewWriter(file)
	if err := Encode(buf, m); err != nil {
		file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadFile reads a model from path.
func LoadFile(path string) (*Model, error) {
	if err := lexicon.ValidateFileFormat(path, lexicon.FormatFrequency); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	m, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded frequency tables from %s: vocab=%d graphemes=%d phonemes=%d",
		path, m.VocabSize(), m.Len(Grapheme), m.Len(Phoneme))
	return m, nil
}
