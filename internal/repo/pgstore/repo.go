// Package pgstore хранит коллекцию покупок в Postgres поверх pgxpool.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/dforst25/week9-docker/internal/repo/migrations"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver for goose
)

const insertChunk = 1000

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGStore сохраняет коллекцию в Postgres.
type PGStore struct {
	pool   *pgxpool.Pool
	dsn    string
	logger *log.Logger
}

// NewPGStore создаёт пул подключений к Postgres. Таблица создаётся в EnsureExists.
func NewPGStore(ctx context.Context, dsn string, logger *log.Logger) (*PGStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("db dsn is empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return &PGStore{
		pool:   pool,
		dsn:    dsn,
		logger: logger,
	}, nil
}

// EnsureExists накатывает goose-миграции; повторный вызов ничего не меняет.
func (s *PGStore) EnsureExists(ctx context.Context) error {
	db, err := sql.Open("pgx", s.dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	return migrations.Apply(ctx, db, migrations.DialectPostgres, s.logger)
}

// Close освобождает подключения пула.
func (s *PGStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
