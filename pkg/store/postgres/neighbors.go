package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
)

// Neighbors returns the precomputed neighbors of seed. Seeds without a
// precomputed row fall back to a cosine nearest-neighbor search over
// word_vectors; seeds with neither yield lexicon.ErrUnknownSeed.
func (s *Store) Neighbors(ctx context.Context, seed string, limit int) ([]string, error) {
	alts := utils.AlternateCapitalizations(seed)
	for _, alt := range alts {
		query, args, err := psql.
			Select("neighbors").
			From("fasttext_neighbors").
			Where("grapheme = ?", alt).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build neighbor query: %w", err)
		}

		var neighbors []string
		err = s.q.QueryRow(ctx, query, args...).Scan(&neighbors)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query neighbors of %q: %w", alt, err)
		}
		return lexicon.NormalizeNeighbors(neighbors, limit), nil
	}

	for _, alt := range alts {
		neighbors, err := s.nearest(ctx, alt, limit)
		if err != nil {
			return nil, err
		}
		if len(neighbors) > 0 {
			log.Debugf("Using vector neighbors for %q", alt)
			return lexicon.NormalizeNeighbors(neighbors, limit), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", lexicon.ErrUnknownSeed, seed)
}

// nearest ranks word_vectors by cosine distance to the vector of grapheme.
func (s *Store) nearest(ctx context.Context, grapheme string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 100
	}
	query, args, err := psql.
		Select("v.grapheme").
		From("word_vectors v").
		Join("word_vectors s ON s.grapheme = ?", grapheme).
		Where("v.grapheme <> s.grapheme").
		OrderBy("v.embedding <=> s.embedding").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vector query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query vector neighbors of %q: %w", grapheme, err)
	}
	neighbors, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("read vector neighbors of %q: %w", grapheme, err)
	}
	return neighbors, nil
}

// CopyNeighbors bulk loads precomputed neighbor rows, in seed order.
func (s *Store) CopyNeighbors(ctx context.Context, rows map[string][]string) (int64, error) {
	seeds := make([]string, 0, len(rows))
	for seed := range rows {
		seeds = append(seeds, seed)
	}
	sort.Strings(seeds)

	n, err := s.q.CopyFrom(ctx,
		pgx.Identifier{"fasttext_neighbors"},
		[]string{"grapheme", "neighbors"},
		pgx.CopyFromSlice(len(seeds), func(i int) ([]any, error) {
			return []any{seeds[i], rows[seeds[i]]}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy neighbors: %w", err)
	}
	return n, nil
}

// CopyVectors bulk loads word embeddings, in grapheme order.
func (s *Store) CopyVectors(ctx context.Context, vectors map[string][]float32) (int64, error) {
	graphemes := make([]string, 0, len(vectors))
	for g := range vectors {
		graphemes = append(graphemes, g)
	}
	sort.Strings(graphemes)

	n, err := s.q.CopyFrom(ctx,
		pgx.Identifier{"word_vectors"},
		[]string{"grapheme", "embedding"},
		pgx.CopyFromSlice(len(graphemes), func(i int) ([]any, error) {
			return []any{graphemes[i], pgvector.NewVector(vectors[graphemes[i]])}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy vectors: %w", err)
	}
	return n, nil
}
