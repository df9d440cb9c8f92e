// Package storage persists the task list. The TSV file backend lives here;
// sqlite and bolt backends live in subpackages.
package storage

import (
	"errors"
	"os"

	"github.com/cristianoliveira/catbot/internal/task"
)

// Storage loads and saves the whole task list in order.
type Storage interface {
	// Load returns the stored tasks. A store that does not exist yet is empty.
	Load() ([]task.Task, error)
	// Save replaces the stored tasks with tasks.
	Save(tasks []task.Task) error
	Close() error
}

const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644
)

// ErrUnknownBackend indicates a storage_backend value with no implementation.
var ErrUnknownBackend = errors.New("unknown storage backend")
