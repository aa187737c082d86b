package repo

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/dforst25/week9-docker/internal/models"
	"github.com/dforst25/week9-docker/internal/repo/migrations"
)

func newSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(path, log.New(io.Discard, "", 0))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureExists(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	return s
}

func TestSQLiteStore_EmptyAfterEnsure(t *testing.T) {
	s := newSQLiteStore(t, filepath.Join(t.TempDir(), "list.db"))

	items, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty collection, got %#v", items)
	}

	var name string
	err = s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", migrations.ItemsTable).Scan(&name)
	if err != nil {
		t.Fatalf("lookup items table: %v", err)
	}
}

func TestSQLiteStore_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.db")
	ctx := context.Background()
	s := newSQLiteStore(t, path)

	// Больше одного чанка INSERT, порядок не по id.
	want := make([]models.Record, 0, sqliteInsertChunk+7)
	for i := sqliteInsertChunk + 7; i > 0; i-- {
		want = append(want, models.Record(fmt.Sprintf(`{"id":"%d","name":"item-%d","quantity":%d}`, i, i, i%5)))
	}
	// Записи нестандартной формы хранятся без изменений.
	want[1] = models.Record(`{"id":1,"name":"bread","note":"x"}`)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, want[:3]); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_ = s.Close()

	reloaded := newSQLiteStore(t, path)
	got, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d items after overwrite, want 3", len(got))
	}
	for i := range got {
		if string(got[i]) != string(want[i]) {
			t.Fatalf("item %d = %s, want %s", i, got[i], want[i])
		}
	}
}
