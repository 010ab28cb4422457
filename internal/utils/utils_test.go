package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAlternateCapitalizations(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"robocop", []string{"robocop", "Robocop"}},
		{"NASA", []string{"NASA", "nasa", "Nasa"}},
		{"Dog", []string{"Dog", "dog"}},
		{"a", []string{"a", "A"}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		if got := AlternateCapitalizations(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("AlternateCapitalizations(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		116002:   "116,002",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		if got := FormatWithCommas(in); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestDedupFilter(t *testing.T) {
	f := NewDedupFilter("Dog")
	if f.ShouldInclude("dog") {
		t.Error("excluded word should be rejected")
	}
	if !f.ShouldInclude("Cat") {
		t.Error("first sighting should be accepted")
	}
	if f.ShouldInclude("cat") {
		t.Error("repeat should be rejected regardless of case")
	}
}

func TestIsValidSeed(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   bool
	}{
		{"labrador", 40, true},
		{"o'clock", 40, true},
		{"follow-up", 40, true},
		{"", 40, false},
		{"1234", 40, false},
		{"dog!", 40, false},
		{"two words", 40, false},
		{"zzz", 40, false},
		{"dormitory", 5, false},
		{"dormitory", 0, true},
	}
	for _, tt := range tests {
		if got := IsValidSeed(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("IsValidSeed(%q, %d) = %v, want %v", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestExtractors(t *testing.T) {
	data := map[string]any{
		"coef":      0.62,
		"cutoff":    int64(-7),
		"workers":   int64(8),
		"enabled":   true,
		"dsn":       "postgres://localhost/words",
		"blacklist": []any{"badword", int64(3), "slur"},
	}
	if v, ok := ExtractFloat64(data, "coef"); !ok || v != 0.62 {
		t.Errorf("ExtractFloat64(coef) = %v, %v", v, ok)
	}
	if v, ok := ExtractFloat64(data, "cutoff"); !ok || v != -7 {
		t.Errorf("ExtractFloat64(cutoff) = %v, %v", v, ok)
	}
	if v, ok := ExtractInt64(data, "workers"); !ok || v != 8 {
		t.Errorf("ExtractInt64(workers) = %v, %v", v, ok)
	}
	if v, ok := ExtractBool(data, "enabled"); !ok || !v {
		t.Errorf("ExtractBool(enabled) = %v, %v", v, ok)
	}
	if v, ok := ExtractString(data, "dsn"); !ok || v == "" {
		t.Errorf("ExtractString(dsn) = %v, %v", v, ok)
	}
	if v, ok := ExtractStrings(data, "blacklist"); !ok || len(v) != 2 {
		t.Errorf("ExtractStrings(blacklist) = %v, %v", v, ok)
	}
	if _, ok := ExtractStrings(data, "dsn"); ok {
		t.Error("a string is not an array")
	}
}

func TestParseTOMLWithRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[search]\nworkers = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery: %v", err)
	}
	section, ok := ExtractSection(data, "search")
	if !ok {
		t.Fatal("search section missing")
	}
	if v, _ := ExtractInt64(section, "workers"); v != 4 {
		t.Errorf("workers = %d, want 4", v)
	}
}

func TestIsValidDataDir(t *testing.T) {
	dir := t.TempDir()
	if IsValidDataDir(dir) {
		t.Error("empty dir should not be a data dir")
	}
	if err := os.WriteFile(filepath.Join(dir, "dict_cmu.tsv"), []byte("c|a|t\tK|AE1|T\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !IsValidDataDir(dir) {
		t.Error("dir with a dictionary should be a data dir")
	}
	if IsValidDataDir(filepath.Join(dir, "dict_cmu.tsv")) {
		t.Error("a file is not a data dir")
	}
	if got := ResolveDataFile(dir, "pos.tsv"); got != filepath.Join(dir, "pos.tsv") {
		t.Errorf("ResolveDataFile = %q", got)
	}
	if got := ResolveDataFile(dir, "/abs/pos.tsv"); got != "/abs/pos.tsv" {
		t.Errorf("ResolveDataFile kept absolute path as %q", got)
	}
}

func TestSaveTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	type section struct {
		Workers int `toml:"workers"`
	}
	data := struct {
		Search section `toml:"search"`
	}{section{Workers: 3}}

	if err := SaveTOMLFile(data, path); err != nil {
		t.Fatalf("SaveTOMLFile: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("config file missing")
	}
	parsed, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := ExtractSection(parsed, "search")
	if v, _ := ExtractInt64(s, "workers"); v != 3 {
		t.Errorf("workers = %d, want 3", v)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("left %d files behind, want only the config", len(entries))
	}
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	got := CheckDirStatus(dir)
	if got.Error != nil || !got.Exists || !got.Writable {
		t.Errorf("CheckDirStatus(%s) = %+v", dir, got)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := CheckDirStatus(filepath.Join(file, "sub")); got.Error == nil || got.Exists {
		t.Errorf("directory under a file = %+v, want an error", got)
	}
}

func TestGetAbsolutePath(t *testing.T) {
	if got := GetAbsolutePath(""); got != "unknown" {
		t.Errorf("GetAbsolutePath(\"\") = %q", got)
	}
	if got := GetAbsolutePath("config.toml"); !filepath.IsAbs(got) {
		t.Errorf("GetAbsolutePath(config.toml) = %q, want absolute", got)
	}
}
