// Package postgres serves words, semantic neighbors and fragment counts from
// PostgreSQL, and bulk loads them with COPY.
//
// The pgvector extension must be available; [Migrate] installs it with
// CREATE EXTENSION IF NOT EXISTS. A *Store satisfies the resolver, neighbor
// source and frequency store the search engine consumes:
//
//	store, err := postgres.Open(ctx, dsn, 300, frequency.DefaultVocabSize)
//	if err != nil { … }
//	defer store.Close()
//	engine := search.New(store, store, store, cfg)
package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

// Querier is the subset of *pgxpool.Pool the stores use.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store reads and writes every wordplay table through one Querier.
// All methods are safe for concurrent use.
type Store struct {
	q         Querier
	vocabSize int
	close     func()
}

// New wraps q. vocabSize is the vocabulary the stored counts were taken over.
func New(q Querier, vocabSize int) *Store {
	if vocabSize < 1 {
		vocabSize = 1
	}
	return &Store{q: q, vocabSize: vocabSize, close: func() {}}
}

// Open migrates the schema at dsn, then opens a pool that registers the
// pgvector types on every connection. dims is the embedding width of word_vectors.
func Open(ctx context.Context, dsn string, dims, vocabSize int) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: parse dsn: %w", err)
	}

	// The vector type must exist before pooled connections register it.
	conn, err := pgx.ConnectConfig(ctx, cfg.ConnConfig.Copy())
	if err != nil {
		return nil, fmt.Errorf("postgres store: connect: %w", err)
	}
	err = Migrate(ctx, conn, dims)
	conn.Close(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres store: migrate: %w", err)
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres store: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}

	s := New(pool, vocabSize)
	s.close = pool.Close
	return s, nil
}

// Close releases the connection pool, if the store owns one.
func (s *Store) Close() { s.close() }

// VocabSize returns the vocabulary size used to turn counts into probabilities.
func (s *Store) VocabSize() int { return s.vocabSize }
