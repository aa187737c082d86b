package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dforst25/week9-docker/internal/models"
)

// FileStore хранит всю коллекцию одним JSON-массивом в файле.
// Каждая операция читает или перезаписывает файл целиком.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore создаёт хранилище поверх файла path. Сам файл не создаётся до EnsureExists.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path возвращает путь к файлу коллекции.
func (s *FileStore) Path() string { return s.path }

// EnsureExists создаёт файл с пустым массивом, если его ещё нет. Существующий файл не трогаем.
func (s *FileStore) EnsureExists(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return writeFileAtomic(s.path, []byte("[]"))
}

// Load читает коллекцию с диска. Записи не разбираются, поэтому их содержимое
// отдаётся и перезаписывается без изменений. Невалидный JSON (или документ,
// который не является массивом) не чинится, а возвращается как ErrDataCorruption.
func (s *FileStore) Load(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrStoreMissing, s.path)
		}
		return nil, err
	}

	var records []models.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataCorruption, s.path, err)
	}
	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}

// Save перезаписывает файл полной коллекцией.
func (s *FileStore) Save(ctx context.Context, records []models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return err
	}
	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFileAtomic(s.path, b)
}

// Close ничего не делает: файл открывается только на время операции.
func (s *FileStore) Close() error { return nil }

// writeFileAtomic пишет во временный файл рядом с целевым и переименовывает его,
// так что читатели видят либо старое, либо новое содержимое.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
