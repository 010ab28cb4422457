package pun

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
)

var fixtures = map[string][2]string{
	"cat":       {"c|a|t", "K|AE1|T"},
	"tuna":      {"t|u|n|a", "T|UW1|N|AH0"},
	"labrador":  {"l|a|b|r|a|d|o|r", "L|AE1|B|R|AH0|D|AO2|R"},
	"dormitory": {"d|o|r|m|i|t|o|r|y", "D|AO1|R|M|AH0|T|AO2|R|IY0"},
	"master":    {"m|a|s|t|e:r", "M|AE1|S|T|ER0"},
	"blaster":   {"b|l|a|s|t|e:r", "B|L|AE1|S|T|ER0"},
	"plaster":   {"p|l|a|s|t|e:r", "P|L|AE1|S|T|ER0"},
	"lean":      {"l|e:a|n", "L|IY1|N"},
	"spleen":    {"s|p|l|e:e|n", "S|P|L|IY1|N"},
	"slab":      {"s|l|a|b", "S|L|AE1|B"},
	"labbel":    {"l|a|b:b|e|l", "L|AE1|B|EH0|L"},
	"foxy":      {"f|o|x|y", "F|AA1|K:S|IY0"},
	"seat":      {"s|e:a|t", "S|IY1|T"},
	"upsi":      {"u|p|s|i", "AH0|P|S|AY1"},
	"sign":      {"s|i|g|n", "S|AY1|_|N"},
	"abkno":     {"a|b|k|n|o", "AE1|B|_|N|OW1"},
	"nose":      {"n|o|s|e", "N|OW1|Z|_"},
}

func word(t *testing.T, g string) *lexicon.Word {
	t.Helper()
	f, ok := fixtures[g]
	if !ok {
		t.Fatalf("no fixture for %q", g)
	}
	w, err := lexicon.ParseWord(f[0], f[1])
	if err != nil {
		t.Fatalf("ParseWord(%q): %v", g, err)
	}
	return w
}

func TestPortmanteauRejectsVowellessOverlap(t *testing.T) {
	_, err := BuildPortmanteau(word(t, "cat"), word(t, "tuna"), frequency.NewModel(100), DefaultConfig())
	if !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}

	var insufficient *InsufficientOverlapError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected an InsufficientOverlapError in %v", err)
	}
	if insufficient.Reason != ReasonVowel || insufficient.Len != 1 {
		t.Errorf("reason = %s/%d, want vowel/1", insufficient.Reason, insufficient.Len)
	}

	var failure *BuildFailure
	if !errors.As(err, &failure) || len(failure.Reasons) != 1 {
		t.Errorf("expected one recorded rejection, got %v", err)
	}
}

func TestPortmanteauLabradormitory(t *testing.T) {
	w1, w2 := word(t, "labrador"), word(t, "dormitory")
	p, err := BuildPortmanteau(w1, w2, frequency.NewModel(1000), DefaultConfig())
	if err != nil {
		t.Fatalf("BuildPortmanteau: %v", err)
	}

	if p.Grapheme != "labradormitory" || p.AltGrapheme != "labradormitory" {
		t.Errorf("blends = %q/%q", p.Grapheme, p.AltGrapheme)
	}
	if !strings.Contains(p.Grapheme, w1.Grapheme) || !strings.Contains(p.AltGrapheme, w2.Grapheme) {
		t.Errorf("blend should contain both words: %q", p.Grapheme)
	}
	if p.Distance != 0 || p.Phones != 3 || p.Vowels != 1 || p.Consonants != 2 {
		t.Errorf("overlap = %+v", p.Overlap)
	}
	if got := strings.Join(p.Phoneme, " "); got != "L AE1 B R AH0 D AO2 R M AH0 T AO2 R IY0" {
		t.Errorf("Phoneme = %s", got)
	}
	if math.Abs(p.Prob-1e-6) > 1e-18 {
		t.Errorf("Prob = %v, want 1e-6", p.Prob)
	}
	if p.Word1 != w1 || p.Word2 != w2 {
		t.Error("words should keep their input order")
	}
	if got := p.String(); got != "labradormitory (labrador/dormitory)" {
		t.Errorf("String = %q", got)
	}
}

func TestPortmanteauKeepsSilentLetters(t *testing.T) {
	tests := []struct {
		w1, w2  string
		blend   string
		phoneme string
	}{
		// silent g after the overlap belongs to the second word's tail
		{"upsi", "sign", "upsign", "AH0 P S AY1 N"},
		// silent k before the overlap belongs to the first word's head
		{"abkno", "nose", "abknose", "AE1 B N OW1 Z"},
	}

	for _, tt := range tests {
		w1, w2 := word(t, tt.w1), word(t, tt.w2)
		p, err := BuildPortmanteau(w1, w2, frequency.NewModel(100), DefaultConfig())
		if err != nil {
			t.Fatalf("BuildPortmanteau(%s, %s): %v", tt.w1, tt.w2, err)
		}
		if p.Grapheme != tt.blend || p.AltGrapheme != tt.blend {
			t.Errorf("%s + %s: blends = %q/%q, want %q", tt.w1, tt.w2, p.Grapheme, p.AltGrapheme, tt.blend)
		}
		for _, blend := range []string{p.Grapheme, p.AltGrapheme} {
			if !strings.Contains(blend, w1.Grapheme) || !strings.Contains(blend, w2.Grapheme) {
				t.Errorf("%q should contain both %q and %q", blend, w1.Grapheme, w2.Grapheme)
			}
		}
		if got := strings.Join(p.Phoneme, " "); got != tt.phoneme {
			t.Errorf("%s + %s: Phoneme = %s, want %s", tt.w1, tt.w2, got, tt.phoneme)
		}
		if p.Phones != 2 || p.Distance != 0 {
			t.Errorf("%s + %s: overlap = %+v", tt.w1, tt.w2, p.Overlap)
		}
	}
}

func TestPortmanteauPrimaryBlend(t *testing.T) {
	w1, w2 := word(t, "slab"), word(t, "labbel")

	p, err := BuildPortmanteau(w1, w2, frequency.NewModel(1000), DefaultConfig())
	if err != nil {
		t.Fatalf("BuildPortmanteau: %v", err)
	}
	if p.Grapheme != "slabel" || p.AltGrapheme != "slabbel" {
		t.Errorf("blends = %q/%q, want slabel/slabbel", p.Grapheme, p.AltGrapheme)
	}

	// "el" ends several words while "s" starts none, so slab is the
	// easier word to rebuild and gets truncated
	model := frequency.NewModel(1000)
	model.Set(frequency.Grapheme, "el", frequency.Counts{Tail: 3, All: 3})
	p, err = BuildPortmanteau(w1, w2, model, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildPortmanteau: %v", err)
	}
	if p.Reconstruct1 != 1 || p.Reconstruct2 != 0.25 {
		t.Errorf("reconstruct = %v/%v, want 1/0.25", p.Reconstruct1, p.Reconstruct2)
	}
	if p.Grapheme != "slabbel" || p.AltGrapheme != "slabel" {
		t.Errorf("blends = %q/%q, want slabbel/slabel", p.Grapheme, p.AltGrapheme)
	}

	model = frequency.NewModel(1000)
	model.Set(frequency.Grapheme, "s", frequency.Counts{Head: 3, All: 3})
	model.Set(frequency.Grapheme, "el", frequency.Counts{Tail: 1, All: 1})
	p, err = BuildPortmanteau(w1, w2, model, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildPortmanteau: %v", err)
	}
	if p.Grapheme != "slabel" || p.AltGrapheme != "slabbel" {
		t.Errorf("blends = %q/%q, want slabel/slabbel", p.Grapheme, p.AltGrapheme)
	}
}

func TestPortmanteauBoundary(t *testing.T) {
	_, err := BuildPortmanteau(word(t, "foxy"), word(t, "seat"), frequency.NewModel(100), DefaultConfig())
	if !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
	if !errors.Is(err, phonetic.ErrBoundary) {
		t.Errorf("expected boundary rejection in %v", err)
	}
}

func TestPortmanteauScore(t *testing.T) {
	cfg := DefaultConfig()
	p := &Portmanteau{Overlap: Overlap{Distance: 2, Prob: 1e-6}}

	want := 0.62*2 + 0.79*math.Log(1e-6)
	if got := p.Score(cfg); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}
	if !p.Accept(cfg) {
		t.Error("rare overlap should clear the cutoff")
	}

	common := &Portmanteau{Overlap: Overlap{Distance: 0, Prob: 1e-2}}
	if common.Accept(cfg) {
		t.Error("common overlap should fall under the cutoff")
	}
	cfg.EnableCutoff = false
	if !common.Accept(cfg) {
		t.Error("disabled cutoff should accept everything")
	}
}

func TestKeyLess(t *testing.T) {
	tests := []struct {
		a, b Key
		want bool
	}{
		{Key{0, -5}, Key{1, -10}, true},
		{Key{1, -10}, Key{0, -5}, false},
		{Key{1, -10}, Key{1, -5}, true},
		{Key{1, -5}, Key{1, -5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRhymeOrderByLeadIn(t *testing.T) {
	r, err := BuildRhyme(word(t, "master"), word(t, "blaster"), frequency.NewModel(100), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	if r.Word1.Grapheme != "blaster" || r.Word2.Grapheme != "master" {
		t.Errorf("order = %s", r)
	}
	if r.Phones != 4 || r.Vowels != 2 || r.Distance != 0 {
		t.Errorf("overlap = %+v", r.Overlap)
	}
}

func TestRhymeRequiresVowelOnset(t *testing.T) {
	r, err := BuildRhyme(word(t, "plaster"), word(t, "blaster"), frequency.NewModel(100), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	if r.Phones != 4 {
		t.Errorf("Phones = %d, want 4", r.Phones)
	}
	if got := r.String(); got != "blaster plaster" {
		t.Errorf("String = %q, want spelling order on equal lead-ins", got)
	}
}

func TestRhymeOrderIgnoresArgumentOrder(t *testing.T) {
	model := frequency.NewModel(100)
	ab, err := BuildRhyme(word(t, "plaster"), word(t, "blaster"), model, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	ba, err := BuildRhyme(word(t, "blaster"), word(t, "plaster"), model, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	if ab.Identity() != ba.Identity() {
		t.Errorf("identities differ: %q vs %q", ab, ba)
	}
}

func TestRhymePartOfSpeechOrder(t *testing.T) {
	pos := lexicon.NewPOSTable(map[string]lexicon.POS{
		"lean":   lexicon.Adjective,
		"spleen": lexicon.Noun,
	})

	r, err := BuildRhyme(word(t, "spleen"), word(t, "lean"), frequency.NewModel(100), pos, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	if r.String() != "lean spleen" {
		t.Errorf("with POS = %q, want adjective first", r)
	}

	r, err = BuildRhyme(word(t, "spleen"), word(t, "lean"), frequency.NewModel(100), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	if r.String() != "spleen lean" {
		t.Errorf("without POS = %q, want longer lead-in first", r)
	}
}

func TestRhymeNoOverlap(t *testing.T) {
	_, err := BuildRhyme(word(t, "cat"), word(t, "tuna"), frequency.NewModel(100), nil, DefaultConfig())
	if !errors.Is(err, ErrNoOverlap) {
		t.Errorf("expected ErrNoOverlap, got %v", err)
	}
}

func TestBuildersHonorConstraints(t *testing.T) {
	model := frequency.NewModel(1000)
	cfg := DefaultConfig()
	for g1 := range fixtures {
		for g2 := range fixtures {
			if g1 == g2 {
				continue
			}
			w1, w2 := word(t, g1), word(t, g2)

			if p, err := BuildPortmanteau(w1, w2, model, cfg); err == nil {
				if p.Vowels < 1 || p.Consonants < 1 {
					t.Errorf("%s: overlap %+v lacks a vowel or consonant", p, p.Overlap)
				}
				if p.Phones >= len(w1.Phoneme) || p.Phones >= len(w2.Phoneme) {
					t.Errorf("%s: overlap swallows a whole word", p)
				}
				if p.Distance > cfg.MaxOverlapDistance {
					t.Errorf("%s: distance %d", p, p.Distance)
				}
			}

			if r, err := BuildRhyme(w1, w2, model, nil, cfg); err == nil {
				for _, w := range []*lexicon.Word{r.Word1, r.Word2} {
					onset := w.Phoneme[len(w.Phoneme)-r.Phones]
					if !phonetic.IsVowel(onset) {
						t.Errorf("%s: rhyme starts on consonant %s", r, onset)
					}
				}
			}
		}
	}
}

func TestViews(t *testing.T) {
	p, err := BuildPortmanteau(word(t, "labrador"), word(t, "dormitory"), frequency.NewModel(1000), DefaultConfig())
	if err != nil {
		t.Fatalf("BuildPortmanteau: %v", err)
	}
	v := p.View()
	if v.Grapheme != "labradormitory" || v.Grapheme1 != "labrador" || v.Grapheme2 != "dormitory" {
		t.Errorf("graphemes = %+v", v)
	}
	if v.Phoneme1 != "L·AE₁·B·R·AH₀·D·AO₂·R" {
		t.Errorf("Phoneme1 = %q", v.Phoneme1)
	}
	if v.Distance != "0" || v.Probability != "1.00e-06" {
		t.Errorf("Distance/Probability = %q/%q", v.Distance, v.Probability)
	}

	r, err := BuildRhyme(word(t, "master"), word(t, "blaster"), frequency.NewModel(100), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRhyme: %v", err)
	}
	rv := r.View()
	if rv.Grapheme1 != "blaster" || rv.Phoneme2 != "M·AE₁·S·T·ER₀" || rv.Probability != "1.00e-04" {
		t.Errorf("rhyme view = %+v", rv)
	}
}

func TestZeroMetricFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metric = phonetic.Metric{}
	if _, err := BuildRhyme(word(t, "master"), word(t, "blaster"), frequency.NewModel(100), nil, cfg); err != nil {
		t.Errorf("zero metric should use defaults: %v", err)
	}
}
