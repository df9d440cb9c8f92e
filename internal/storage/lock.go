package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 100 * time.Millisecond
)

// Lock is a directory-based lock: whoever creates the directory holds it.
type Lock struct {
	dir     string
	timeout time.Duration
}

// NewLock creates a new lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir, timeout: lockTimeout}
}

// Acquire creates the lock directory, retrying while another process holds
// it until the timeout passes.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.dir), FileModeDir); err != nil {
		return fmt.Errorf("create lock parent: %w", err)
	}
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, FileModeDir)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("lock %s still held after %s", l.dir, l.timeout)
		}
		time.Sleep(lockRetry)
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock.
func WithLock(dir string, fn func() error) error {
	return withLock(NewLock(dir), fn)
}

func withLock(lock *Lock, fn func() error) error {
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
