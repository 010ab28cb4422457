package lexicon

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordplay/pkg/phonetic"
)

func TestParseWord(t *testing.T) {
	w, err := ParseWord("c|o|g|n|a|c", "K|OW1|_|N:Y|AE2|K")
	if err != nil {
		t.Fatalf("ParseWord: %v", err)
	}
	if w.Grapheme != "cognac" {
		t.Errorf("Grapheme = %q, want cognac", w.Grapheme)
	}
	want := []string{"K", "OW1", "N", "Y", "AE2", "K"}
	if !reflect.DeepEqual(w.Phoneme, want) {
		t.Errorf("Phoneme = %v, want %v", w.Phoneme, want)
	}
	if w.PhoneCount() != 6 {
		t.Errorf("PhoneCount = %d, want 6", w.PhoneCount())
	}

	sub, err := w.Subgrapheme(0, 1)
	if err != nil || sub != "cog" {
		t.Errorf("Subgrapheme(0, 1) = %q, %v; want cog", sub, err)
	}
	if _, err := w.Subgrapheme(0, 2); !errors.Is(err, phonetic.ErrBoundary) {
		t.Errorf("Subgrapheme(0, 2) should cut N:Y, got %v", err)
	}
	if got := w.Rendered(); !strings.HasPrefix(got, "K·OW₁") {
		t.Errorf("Rendered = %q", got)
	}
}

func TestParseWordRejectsMismatch(t *testing.T) {
	if _, err := ParseWord("c|a|t", "K|AE1"); !errors.Is(err, phonetic.ErrChunkCount) {
		t.Errorf("expected ErrChunkCount, got %v", err)
	}
}

const alignedFixture = `# test dictionary
l|a|b|r|a|d|o|r	L|AE1|B|R|AH0|D|AO2|R
d|o|r|m|i|t|o|r|y	D|AO1|R|M|AH0|T|AO2|R|IY0
m|a|s|t|e:r	M|AE1|S|T|ER0|
m|i|s|t|e:r	M|IH1|S|T|ER0
b|l|a|s|t|e:r	B|L|AE1|S|T|ER0
m|a|s|t|e:r	M|AA1|S|T|ER0

broken line without tab
c|a|t	K|AE1
`

func TestLoadAligned(t *testing.T) {
	dict, stats, err := LoadAligned(strings.NewReader(alignedFixture))
	if err != nil {
		t.Fatalf("LoadAligned: %v", err)
	}
	if stats.Loaded != 5 || stats.Duplicates != 1 || stats.Skipped != 2 {
		t.Errorf("stats = %+v, want 5 loaded, 1 duplicate, 2 skipped", stats)
	}
	if dict.Len() != 5 {
		t.Errorf("Len = %d, want 5", dict.Len())
	}
	master, ok := dict.Lookup("master")
	if !ok {
		t.Fatal("master missing")
	}
	if master.Phoneme[1] != "AE1" {
		t.Errorf("first pronunciation should win, got %v", master.Phoneme)
	}
	if _, ok := dict.Lookup("cat"); ok {
		t.Error("cat has mismatched chunks and should be skipped")
	}

	words := dict.Words()
	if len(words) != 5 || words[0].Grapheme != "blaster" {
		t.Errorf("Words() not in grapheme order: %v", words)
	}
}

func TestDictionaryResolve(t *testing.T) {
	dict, _, err := LoadAligned(strings.NewReader(alignedFixture))
	if err != nil {
		t.Fatal(err)
	}
	got, err := dict.Resolve(context.Background(), []string{"Master", "labrador", "unicorn"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Resolve returned %d words, want 2", len(got))
	}
	if got["Master"].Grapheme != "master" {
		t.Errorf("Master should resolve through lowercase, got %v", got["Master"])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := dict.Resolve(ctx, []string{"master"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDictionarySuggest(t *testing.T) {
	dict, _, err := LoadAligned(strings.NewReader(alignedFixture))
	if err != nil {
		t.Fatal(err)
	}
	got := dict.Suggest("mastr", 3)
	if len(got) == 0 || got[0] != "master" {
		t.Fatalf("Suggest(mastr) = %v, want master first", got)
	}
	for _, s := range got {
		if s[0] != 'm' {
			t.Errorf("suggestion %q does not share the first letter", s)
		}
	}
	if got := dict.Suggest("", 3); got != nil {
		t.Errorf("empty input should give no suggestions, got %v", got)
	}
}
