package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/charmbracelet/log"
)

// allPhases is the canonical execution order.
var allPhases = []string{"freq", "words", "frequencies", "neighbors", "vectors"}

// dbPhases need a database.
var dbPhases = []string{"words", "frequencies", "neighbors", "vectors"}

// progressEvery is how many words pass between progress logs.
const progressEvery = 20000

// copier bulk loads the data files. *postgres.Store implements it.
type copier interface {
	CopyWords(ctx context.Context, words []*lexicon.Word) (int64, error)
	CopyFrequencies(ctx context.Context, m *frequency.Model) (int64, error)
	CopyNeighbors(ctx context.Context, rows map[string][]string) (int64, error)
	CopyVectors(ctx context.Context, vectors map[string][]float32) (int64, error)
}

// builder runs the offline phases.
type builder struct {
	dictPath      string
	freqPath      string
	neighborsPath string
	vectorPath    string
	maxVectors    int
	dims          int
	dryRun        bool
	db            copier

	dict  *lexicon.Dictionary
	model *frequency.Model
}

// plan picks the phases to run. Unnamed database phases are skipped
// without a database, and the vector phase without a vector file.
func (b *builder) plan(requested []string) ([]string, error) {
	if len(requested) == 0 {
		var out []string
		for _, p := range allPhases {
			switch {
			case slices.Contains(dbPhases, p) && b.db == nil:
				log.Debugf("Skipping phase %s: no database", p)
			case p == "vectors" && b.vectorPath == "":
				log.Debugf("Skipping phase %s: no vector file", p)
			default:
				out = append(out, p)
			}
		}
		return out, nil
	}

	var out []string
	for _, p := range allPhases {
		if !slices.Contains(requested, p) {
			continue
		}
		if slices.Contains(dbPhases, p) && b.db == nil && !b.dryRun {
			return nil, fmt.Errorf("phase %s needs postgres.dsn", p)
		}
		out = append(out, p)
	}
	for _, p := range requested {
		if !slices.Contains(allPhases, p) {
			return nil, fmt.Errorf("unknown phase %q (known: %s)", p, strings.Join(allPhases, ", "))
		}
	}
	return out, nil
}

func (b *builder) run(ctx context.Context, requested []string) error {
	phases, err := b.plan(requested)
	if err != nil {
		return err
	}
	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		var n int64
		switch p {
		case "freq":
			n, err = b.freqPhase()
		case "words":
			n, err = b.wordsPhase(ctx)
		case "frequencies":
			n, err = b.frequenciesPhase(ctx)
		case "neighbors":
			n, err = b.neighborsPhase(ctx)
		case "vectors":
			n, err = b.vectorsPhase(ctx)
		}
		if err != nil {
			return fmt.Errorf("phase %s: %w", p, err)
		}
		log.Info("phase done", "phase", p, "rows", utils.FormatWithCommas(int(n)), "took", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func (b *builder) dictionary() (*lexicon.Dictionary, error) {
	if b.dict != nil {
		return b.dict, nil
	}
	dict, err := lexicon.LoadAlignedFile(b.dictPath)
	if err != nil {
		return nil, err
	}
	b.dict = dict
	return dict, nil
}

// frequencies counts the dictionary once per run.
func (b *builder) frequencies() (*frequency.Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	dict, err := b.dictionary()
	if err != nil {
		return nil, err
	}
	counter := frequency.NewCounter()
	for i, w := range dict.Words() {
		counter.Add(w)
		if (i+1)%progressEvery == 0 {
			log.Debugf("Counted %s words", utils.FormatWithCommas(i+1))
		}
	}
	b.model = counter.Model()
	return b.model, nil
}

func (b *builder) freqPhase() (int64, error) {
	m, err := b.frequencies()
	if err != nil {
		return 0, err
	}
	rows := int64(m.Len(frequency.Grapheme) + m.Len(frequency.Phoneme))
	if b.dryRun {
		return rows, nil
	}
	dir := filepath.Dir(b.freqPath)
	if st := utils.CheckDirStatus(dir); !st.Writable {
		if st.Error != nil {
			return 0, st.Error
		}
		return 0, fmt.Errorf("output directory %s is not writable", dir)
	}
	if err := frequency.SaveFile(b.freqPath, m); err != nil {
		return 0, err
	}
	log.Debugf("Wrote %s", b.freqPath)
	return rows, nil
}

func (b *builder) wordsPhase(ctx context.Context) (int64, error) {
	dict, err := b.dictionary()
	if err != nil {
		return 0, err
	}
	if b.dryRun {
		return int64(dict.Len()), nil
	}
	return b.db.CopyWords(ctx, dict.Words())
}

func (b *builder) frequenciesPhase(ctx context.Context) (int64, error) {
	m, err := b.frequencies()
	if err != nil {
		return 0, err
	}
	if b.dryRun {
		return int64(m.Len(frequency.Grapheme) + m.Len(frequency.Phoneme)), nil
	}
	return b.db.CopyFrequencies(ctx, m)
}

func (b *builder) neighborsPhase(ctx context.Context) (int64, error) {
	table, err := lexicon.LoadNeighborsFile(b.neighborsPath)
	if err != nil {
		return 0, err
	}
	rows := table.Rows()
	if b.dryRun {
		return int64(len(rows)), nil
	}
	return b.db.CopyNeighbors(ctx, rows)
}

// vectorsPhase copies the embeddings of dictionary words.
func (b *builder) vectorsPhase(ctx context.Context) (int64, error) {
	dict, err := b.dictionary()
	if err != nil {
		return 0, err
	}
	f, err := os.Open(b.vectorPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open vectors %s: %w", b.vectorPath, err)
	}
	defer f.Close()

	inDict := func(w string) bool {
		_, ok := dict.Lookup(w)
		return ok
	}
	vectors, dims, err := readVectors(f, inDict, b.maxVectors)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", b.vectorPath, err)
	}
	if b.dims > 0 && dims != b.dims {
		return 0, fmt.Errorf("%s has %d dimensions, postgres.dimensions is %d", b.vectorPath, dims, b.dims)
	}
	if b.dryRun {
		return int64(len(vectors)), nil
	}
	return b.db.CopyVectors(ctx, vectors)
}
