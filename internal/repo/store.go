// Package repo содержит реализации хранилища коллекции покупок: JSON-файл,
// память процесса и SQLite; Postgres вынесен в подпакет pgstore.
package repo

import (
	"context"
	"fmt"
	"log"

	"github.com/dforst25/week9-docker/internal/config"
	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo/pgstore"
)

// Store читает и перезаписывает коллекцию целиком. Записи хранятся как есть.
type Store interface {
	EnsureExists(ctx context.Context) error
	Load(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, records []models.Record) error
	Close() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*pgstore.PGStore)(nil)
)

// Open выбирает реализацию хранилища по store_driver из конфигурации.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	switch cfg.StoreDriver {
	case config.DriverJSONFile, "":
		return NewFileStore(cfg.DBPath), nil
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.DBPath, logger)
	case config.DriverPostgres:
		return pgstore.NewPGStore(ctx, cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
