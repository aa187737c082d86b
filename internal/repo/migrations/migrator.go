// Package migrations хранит SQL-схему таблицы списка покупок и применяет её через goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"sync"

	"github.com/pressly/goose/v3"
)

// Диалекты goose и одноимённые каталоги со скриптами.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// ItemsTable: таблица, в которой SQL-хранилища держат коллекцию.
const ItemsTable = "shopping_items"

//go:embed postgres/*.sql sqlite/*.sql
var migrationFiles embed.FS

var dirs = map[string]string{
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite",
}

// goose настраивается глобально, поэтому параллельные прогоны сериализуем.
var gooseMu sync.Mutex

// Apply запускает goose-миграции для указанного диалекта, используя встроенные SQL файлы.
func Apply(ctx context.Context, db *sql.DB, dialect string, logger *log.Logger) error {
	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if db == nil {
		return fmt.Errorf("migrations: db is nil")
	}
	if logger == nil {
		logger = log.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(logger)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dialect, err)
	}

	return nil
}
