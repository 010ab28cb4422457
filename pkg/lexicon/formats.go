package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// FileFormat identifies one of the data files the engine reads.
type FileFormat int

const (
	FormatUnknown   FileFormat = iota
	FormatAligned              // aligned grapheme/phoneme dictionary
	FormatNeighbors            // seed to semantic neighbors
	FormatPOS                  // grapheme to primary part of speech
	FormatFrequency            // msgpack subword frequency tables
)

// FormatInfo contains metadata about a data file format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Prefix      string
	Extensions  []string
	Fields      int   // tab separated fields per line, 0 for binary formats
	MinSize     int64 // minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatAligned: {
		Format:      FormatAligned,
		Description: "Aligned Pronunciation Dictionary",
		Prefix:      "dict",
		Extensions:  []string{".tsv", ".txt", ".m2m"},
		Fields:      2,
		MinSize:     3,
	},
	FormatNeighbors: {
		Format:      FormatNeighbors,
		Description: "Semantic Neighbor Table",
		Prefix:      "neighbors",
		Extensions:  []string{".tsv", ".txt"},
		Fields:      2,
		MinSize:     3,
	},
	FormatPOS: {
		Format:      FormatPOS,
		Description: "Part of Speech Table",
		Prefix:      "pos",
		Extensions:  []string{".tsv", ".txt"},
		Fields:      2,
		MinSize:     3,
	},
	FormatFrequency: {
		Format:      FormatFrequency,
		Description: "Subword Frequency Tables",
		Prefix:      "",
		Extensions:  []string{".freq"},
		MinSize:     1,
	},
}

// ValidateFileFormat checks if a file matches the expected format.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if formatInfo.Fields == 0 {
		return validateBinaryFormat(filename)
	}
	return validateTextFormat(filename, formatInfo.Fields)
}

// validateBinaryFormat checks that a frequency file starts with a msgpack map.
func validateBinaryFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	code, err := msgpack.NewDecoder(bufio.NewReader(file)).PeekCode()
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if !msgpcode.IsFixedMap(code) && code != msgpcode.Map16 && code != msgpcode.Map32 {
		return fmt.Errorf("invalid header in %s: 0x%02x is not a msgpack map", filename, code)
	}

	log.Debugf("Binary file %s validated", filename)
	return nil
}

// validateTextFormat checks the first data line of a tab separated file.
func validateTextFormat(filename string, fields int) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if got := len(strings.Split(line, "\t")); got < fields {
			return fmt.Errorf("file %s: first record has %d fields, want %d", filename, got, fields)
		}
		log.Debugf("Text file %s validated", filename)
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	return fmt.Errorf("file %s has no records", filename)
}

// DetectFileFormat infers the format from the file name and validates it.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if ext == ".freq" {
		if err := ValidateFileFormat(filename, FormatFrequency); err == nil {
			return FormatFrequency, nil
		}
		return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
	}

	for _, f := range []FileFormat{FormatAligned, FormatNeighbors, FormatPOS} {
		info := supportedFormats[f]
		if strings.HasPrefix(basename, info.Prefix) {
			if err := ValidateFileFormat(filename, f); err == nil {
				return f, nil
			}
		}
	}

	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format.
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
