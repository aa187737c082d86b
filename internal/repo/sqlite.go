package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo/migrations"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// sqliteInsertChunk ограничивает число строк в одном INSERT, чтобы не упереться в лимит параметров SQLite.
const sqliteInsertChunk = 500

// Читатели не должны падать с SQLITE_BUSY, пока писатель коммитит.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

var sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// SQLiteStore хранит коллекцию во встроенной SQLite-базе: запись целиком лежит в payload,
// порядок задаёт колонка position.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// OpenSQLite открывает (или создаёт) файл базы. Схема накатывается в EnsureExists.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// DB отдаёт *sql.DB для тестов и миграций.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) EnsureExists(ctx context.Context) error {
	return migrations.Apply(ctx, s.db, migrations.DialectSQLite, s.logger)
}

func (s *SQLiteStore) Load(ctx context.Context) ([]models.Record, error) {
	sqlStr, args, err := sqliteBuilder.
		Select("payload").
		From(migrations.ItemsTable).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []models.Record{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		records = append(records, models.Record(payload))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) Save(ctx context.Context, records []models.Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	delSQL, delArgs, err := sqliteBuilder.Delete(migrations.ItemsTable).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	for start := 0; start < len(records); start += sqliteInsertChunk {
		end := min(start+sqliteInsertChunk, len(records))
		ins := sqliteBuilder.Insert(migrations.ItemsTable).Columns("position", "payload")
		for i := start; i < end; i++ {
			ins = ins.Values(i, string(records[i]))
		}
		insSQL, insArgs, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
