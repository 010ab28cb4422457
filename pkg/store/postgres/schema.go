package postgres

import (
	"context"
	"fmt"
)

const ddlWords = `
CREATE TABLE IF NOT EXISTS words (
    grapheme        TEXT  PRIMARY KEY,
    grapheme_chunks TEXT  NOT NULL,
    phoneme_chunks  TEXT  NOT NULL
);

CREATE TABLE IF NOT EXISTS fasttext_neighbors (
    grapheme   TEXT    PRIMARY KEY,
    neighbors  TEXT[]  NOT NULL
);

CREATE TABLE IF NOT EXISTS subword_frequencies (
    kind      SMALLINT  NOT NULL,
    fragment  TEXT      NOT NULL,
    head      INTEGER   NOT NULL DEFAULT 0,
    tail      INTEGER   NOT NULL DEFAULT 0,
    total     INTEGER   NOT NULL DEFAULT 0,
    PRIMARY KEY (kind, fragment)
);
`

const ddlVectors = `
CREATE TABLE IF NOT EXISTS word_vectors (
    grapheme   TEXT        PRIMARY KEY,
    embedding  vector(%d)  NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_word_vectors_embedding
    ON word_vectors USING hnsw (embedding vector_cosine_ops);
`

// Migrate creates the extension, tables and indexes if they are missing.
func Migrate(ctx context.Context, q Querier, dims int) error {
	if dims < 1 {
		return fmt.Errorf("postgres store: embedding dimensions must be positive, got %d", dims)
	}
	steps := []struct {
		name string
		sql  string
	}{
		{"vector extension", "CREATE EXTENSION IF NOT EXISTS vector"},
		{"word tables", ddlWords},
		{"vector table", fmt.Sprintf(ddlVectors, dims)},
	}
	for _, step := range steps {
		if _, err := q.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("migrate %s: %w", step.name, err)
		}
	}
	return nil
}
