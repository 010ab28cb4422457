package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readVectors reads a fastText .vec stream: a "count dims" header, then one
// "word v1 v2 ..." line per word. Only words accepted by keep are returned;
// limit caps the number kept when positive.
func readVectors(r io.Reader, keep func(string) bool, limit int) (map[string][]float32, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("empty vector file")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, 0, fmt.Errorf("vector header %q: want \"count dims\"", scanner.Text())
	}
	dims, err := strconv.Atoi(header[1])
	if err != nil || dims <= 0 {
		return nil, 0, fmt.Errorf("vector header %q: bad dimension", scanner.Text())
	}

	out := make(map[string][]float32)
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != dims+1 {
			return nil, 0, fmt.Errorf("line %d: %d values, want %d", line, len(fields)-1, dims)
		}
		word := fields[0]
		if _, seen := out[word]; seen || !keep(word) {
			continue
		}
		vec := make([]float32, dims)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %w", line, err)
			}
			vec[i] = float32(v)
		}
		out[word] = vec
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return out, dims, nil
}
