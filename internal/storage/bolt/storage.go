// Package bolt provides a BoltDB-backed task store.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/catbot/internal/storage/record"
	"github.com/cristianoliveira/catbot/internal/task"
	bolt "go.etcd.io/bbolt"
)

var bucketTasks = []byte("tasks")

// Storage keeps one JSON record per task, keyed by big-endian position so
// that cursor order is list order.
type Storage struct {
	db *bolt.DB
}

// New opens (or creates) the database at the given path.
func New(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bolt storage: create directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt storage: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTasks)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt storage: create bucket: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close releases the underlying DB handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) Load() ([]task.Task, error) {
	var records []record.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(k, v []byte) error {
			var r record.Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decode task at %d: %w", binary.BigEndian.Uint64(k), err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt storage: load: %w", err)
	}
	return record.ToTasks(records)
}

// Save replaces the bucket contents in one transaction.
func (s *Storage) Save(tasks []task.Task) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketTasks); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketTasks)
		if err != nil {
			return err
		}
		for i, r := range record.FromTasks(tasks) {
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := b.Put(positionKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt storage: save: %w", err)
	}
	return nil
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
