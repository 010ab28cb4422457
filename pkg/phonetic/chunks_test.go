package phonetic

import (
	"reflect"
	"testing"
)

func TestParseChunks(t *testing.T) {
	tests := []struct {
		in      string
		want    []Chunk
		wantErr bool
	}{
		{in: "K|OW1|_|N:Y|AE2|K|", want: []Chunk{{"K"}, {"OW1"}, {}, {"N", "Y"}, {"AE2"}, {"K"}}},
		{in: "e:r", want: []Chunk{{"e", "r"}}},
		{in: "", wantErr: true},
		{in: "a||b", wantErr: true},
		{in: "a|:b", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseChunks(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseChunks(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseChunks(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatChunks(t *testing.T) {
	in := "K|OW1|_|N:Y|AE2|K"
	chunks, err := ParseChunks(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatChunks(chunks); got != in {
		t.Errorf("FormatChunks = %q, want %q", got, in)
	}
}

func TestRender(t *testing.T) {
	got := Render([]string{"L", "AE1", "B", "R", "AH0"})
	want := "L·AE₁·B·R·AH₀"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
