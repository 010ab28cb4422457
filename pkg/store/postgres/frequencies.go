package postgres

import (
	"context"
	"fmt"

	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/jackc/pgx/v5"
)

// Counts fetches the stored counts of keys in one query. Keys without a
// row are left out, which the model reads as zero.
func (s *Store) Counts(ctx context.Context, kind frequency.Kind, keys []string) (map[string]frequency.Counts, error) {
	out := make(map[string]frequency.Counts, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := psql.
		Select("fragment", "head", "tail", "total").
		From("subword_frequencies").
		Where("kind = ?", int16(kind)).
		Where("fragment = ANY(?)", keys).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build frequency query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s frequencies: %w", kind, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			fragment string
			c        frequency.Counts
		)
		if err := rows.Scan(&fragment, &c.Head, &c.Tail, &c.All); err != nil {
			return nil, fmt.Errorf("scan %s frequency: %w", kind, err)
		}
		out[fragment] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s frequencies: %w", kind, err)
	}
	return out, nil
}

type frequencyRow struct {
	kind     frequency.Kind
	fragment string
	counts   frequency.Counts
}

// CopyFrequencies bulk loads every fragment of m.
func (s *Store) CopyFrequencies(ctx context.Context, m *frequency.Model) (int64, error) {
	rows := make([]frequencyRow, 0, m.Len(frequency.Grapheme)+m.Len(frequency.Phoneme))
	for _, kind := range []frequency.Kind{frequency.Grapheme, frequency.Phoneme} {
		err := m.Visit(kind, func(key string, c frequency.Counts) error {
			rows = append(rows, frequencyRow{kind: kind, fragment: key, counts: c})
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	n, err := s.q.CopyFrom(ctx,
		pgx.Identifier{"subword_frequencies"},
		[]string{"kind", "fragment", "head", "tail", "total"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{int16(r.kind), r.fragment, r.counts.Head, r.counts.Tail, r.counts.All}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy frequencies: %w", err)
	}
	return n, nil
}
