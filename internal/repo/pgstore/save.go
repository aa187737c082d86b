package pgstore

import (
	"context"
	"fmt"

	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo/migrations"
)

// Save заменяет содержимое таблицы переданной коллекцией в одной транзакции.
func (s *PGStore) Save(ctx context.Context, records []models.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// Rollback после Commit возвращает ErrTxClosed, его игнорируем.
	defer func() { _ = tx.Rollback(ctx) }()

	delSQL, delArgs, err := psql.Delete(migrations.ItemsTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("exec delete: %w", err)
	}

	for start := 0; start < len(records); start += insertChunk {
		end := min(start+insertChunk, len(records))
		ins := psql.Insert(migrations.ItemsTable).Columns("position", "payload")
		for i := start; i < end; i++ {
			ins = ins.Values(i, string(records[i]))
		}

		sqlStr, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert sql: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("exec insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
