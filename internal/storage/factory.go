package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/cristianoliveira/catbot/internal/config"
	"github.com/cristianoliveira/catbot/internal/storage/bolt"
	"github.com/cristianoliveira/catbot/internal/storage/sqlite"
)

const (
	// BackendTSV selects file-based TSV storage.
	BackendTSV = "tsv"
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendBolt selects BoltDB-backed storage.
	BackendBolt = "bolt"

	tsvFileName = "tasks.tsv"
)

var (
	_ Storage = (*sqlite.SQLiteStorage)(nil)
	_ Storage = (*bolt.Storage)(nil)
)

// NewFromConfig creates the storage named by storage_backend at data_file.
// config.Load must have been called.
func NewFromConfig() (Storage, error) {
	return NewForBackend(config.Get("storage_backend", BackendTSV), config.Get("data_file", ""))
}

// NewForBackend creates a storage backend at path. A database backend that
// cannot be opened falls back to the TSV file next to it. A new database is
// seeded from that TSV file when it has tasks.
func NewForBackend(backend, path string) (Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage: data file path cannot be empty")
	}
	backend = strings.ToLower(strings.TrimSpace(backend))
	tsvPath := filepath.Join(filepath.Dir(path), tsvFileName)

	var open func(string) (Storage, error)
	switch backend {
	case "", BackendTSV:
		return NewFileStorage(path)
	case BackendSQLite:
		open = func(p string) (Storage, error) { return sqlite.NewSQLiteStorage(p) }
	case BackendBolt:
		open = func(p string) (Storage, error) { return bolt.New(p) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	isNew, err := fileMissing(path)
	if err != nil {
		return nil, fmt.Errorf("storage: check %s: %w", path, err)
	}
	store, err := open(path)
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to initialize %s backend, falling back to tsv: %v", backend, err))
		return NewFileStorage(tsvPath)
	}
	if isNew && path != tsvPath {
		if err := seedFromTSV(store, tsvPath); err != nil {
			colors.Warning(fmt.Sprintf("could not import %s into %s: %v", tsvPath, backend, err))
		}
	}
	return store, nil
}

// seedFromTSV copies the tasks of an existing TSV file into store.
func seedFromTSV(store Storage, tsvPath string) error {
	hasData, err := fileHasContent(tsvPath)
	if err != nil || !hasData {
		return err
	}
	source, err := NewFileStorage(tsvPath)
	if err != nil {
		return err
	}
	tasks, err := source.Load()
	if err != nil {
		return err
	}
	if err := store.Save(tasks); err != nil {
		return err
	}
	colors.Success(fmt.Sprintf("Imported %d tasks from %s", len(tasks), tsvPath))
	return nil
}

func fileMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

func fileHasContent(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("expected file but found directory: %s", path)
	}
	return info.Size() > 0, nil
}
