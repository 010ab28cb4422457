package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
)

type fakeCopier struct {
	words     int
	freqs     int
	neighbors map[string][]string
	vectors   map[string][]float32
}

func (f *fakeCopier) CopyWords(_ context.Context, words []*lexicon.Word) (int64, error) {
	f.words = len(words)
	return int64(len(words)), nil
}

func (f *fakeCopier) CopyFrequencies(_ context.Context, m *frequency.Model) (int64, error) {
	f.freqs = m.Len(frequency.Grapheme) + m.Len(frequency.Phoneme)
	return int64(f.freqs), nil
}

func (f *fakeCopier) CopyNeighbors(_ context.Context, rows map[string][]string) (int64, error) {
	f.neighbors = rows
	return int64(len(rows)), nil
}

func (f *fakeCopier) CopyVectors(_ context.Context, vectors map[string][]float32) (int64, error) {
	f.vectors = vectors
	return int64(len(vectors)), nil
}

func testBuilder(t *testing.T) *builder {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"dict.tsv":      "c|a|t\tK|AE1|T\nb|a|t\tB|AE1|T\n",
		"neighbors.tsv": "cat\tbat,kitten\n",
		"vectors.vec":   "3 2\ncat 0.1 0.2\nkitten 0.3 0.4\nbat 0.5 0.6\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &builder{
		dictPath:      filepath.Join(dir, "dict.tsv"),
		freqPath:      filepath.Join(dir, "subwords.freq"),
		neighborsPath: filepath.Join(dir, "neighbors.tsv"),
		vectorPath:    filepath.Join(dir, "vectors.vec"),
		dims:          2,
	}
}

func TestPlan(t *testing.T) {
	b := testBuilder(t)
	got, err := b.plan(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"freq"}) {
		t.Errorf("plan without db = %v", got)
	}

	b.db = &fakeCopier{}
	got, _ = b.plan(nil)
	if !reflect.DeepEqual(got, allPhases) {
		t.Errorf("plan with db = %v", got)
	}
	got, _ = b.plan([]string{"vectors", "words"})
	if !reflect.DeepEqual(got, []string{"words", "vectors"}) {
		t.Errorf("requested phases should run in canonical order, got %v", got)
	}
	if _, err := b.plan([]string{"wordz"}); err == nil || !strings.Contains(err.Error(), "unknown phase") {
		t.Errorf("err = %v, want unknown phase", err)
	}

	b.db = nil
	if _, err := b.plan([]string{"words"}); err == nil {
		t.Error("database phase without a database should fail")
	}
}

func TestRunAllPhases(t *testing.T) {
	b := testBuilder(t)
	db := &fakeCopier{}
	b.db = db

	if err := b.run(context.Background(), nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	m, err := frequency.LoadFile(b.freqPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.VocabSize() != 2 {
		t.Errorf("VocabSize = %d, want 2", m.VocabSize())
	}
	if got := m.Frequency(frequency.Grapheme, "at", frequency.Tail); got != 3 {
		t.Errorf("Frequency(at, tail) = %d, want 3", got)
	}
	if db.words != 2 {
		t.Errorf("copied %d words, want 2", db.words)
	}
	if db.freqs != m.Len(frequency.Grapheme)+m.Len(frequency.Phoneme) {
		t.Errorf("copied %d fragments", db.freqs)
	}
	if !reflect.DeepEqual(db.neighbors["cat"], []string{"bat", "kitten"}) {
		t.Errorf("neighbors = %v", db.neighbors)
	}
	if len(db.vectors) != 2 {
		t.Errorf("vectors = %v, want cat and bat only", db.vectors)
	}
	if _, ok := db.vectors["kitten"]; ok {
		t.Error("kitten is not in the dictionary")
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	b := testBuilder(t)
	b.dryRun = true
	if err := b.run(context.Background(), []string{"freq", "words", "vectors"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(b.freqPath); !os.IsNotExist(err) {
		t.Errorf("dry run wrote %s", b.freqPath)
	}
}

func TestRunVectorDimensionMismatch(t *testing.T) {
	b := testBuilder(t)
	b.db = &fakeCopier{}
	b.dims = 300
	err := b.run(context.Background(), []string{"vectors"})
	if err == nil || !strings.Contains(err.Error(), "dimensions") {
		t.Errorf("err = %v, want a dimension mismatch", err)
	}
}

func TestRunCanceled(t *testing.T) {
	b := testBuilder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.run(ctx, nil); err == nil {
		t.Error("expected context error")
	}
}
