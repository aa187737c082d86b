package pgstore

import (
	"context"
	"fmt"

	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo/migrations"
	"github.com/jackc/pgx/v5"
)

// Load возвращает коллекцию в порядке вставки.
func (s *PGStore) Load(ctx context.Context) ([]models.Record, error) {
	sqlStr, args, err := psql.
		Select("payload").
		From(migrations.ItemsTable).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	payloads, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan item rows: %w", err)
	}

	records := make([]models.Record, len(payloads))
	for i, p := range payloads {
		records[i] = models.Record(p)
	}

	return records, nil
}
