package postgres

import (
	"context"
	"fmt"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/phonetic"
	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
)

// Resolve looks up graphemes in one query, trying alternate capitalizations
// of each. The result is keyed by the requested grapheme and omits misses.
func (s *Store) Resolve(ctx context.Context, graphemes []string) (map[string]*lexicon.Word, error) {
	var candidates []string
	for _, g := range graphemes {
		candidates = append(candidates, utils.AlternateCapitalizations(g)...)
	}
	out := make(map[string]*lexicon.Word, len(graphemes))
	if len(candidates) == 0 {
		return out, nil
	}

	query, args, err := psql.
		Select("grapheme", "grapheme_chunks", "phoneme_chunks").
		From("words").
		Where("grapheme = ANY(?)", candidates).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build word query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	found := make(map[string]*lexicon.Word)
	for rows.Next() {
		var grapheme, graph, phone string
		if err := rows.Scan(&grapheme, &graph, &phone); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w, err := lexicon.ParseWord(graph, phone)
		if err != nil {
			log.Warnf("Skipping malformed word %q: %v", grapheme, err)
			continue
		}
		found[grapheme] = w
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}

	for _, g := range graphemes {
		for _, alt := range utils.AlternateCapitalizations(g) {
			if w, ok := found[alt]; ok {
				out[g] = w
				break
			}
		}
	}
	return out, nil
}

// CopyWords bulk loads words into an empty words table.
func (s *Store) CopyWords(ctx context.Context, words []*lexicon.Word) (int64, error) {
	n, err := s.q.CopyFrom(ctx,
		pgx.Identifier{"words"},
		[]string{"grapheme", "grapheme_chunks", "phoneme_chunks"},
		pgx.CopyFromSlice(len(words), func(i int) ([]any, error) {
			w := words[i]
			return []any{
				w.Grapheme,
				phonetic.FormatChunks(w.Alignment.GraphemeChunks()),
				phonetic.FormatChunks(w.Alignment.PhonemeChunks()),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy words: %w", err)
	}
	return n, nil
}
