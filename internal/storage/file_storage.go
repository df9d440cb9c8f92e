package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cristianoliveira/catbot/internal/storage/record"
	"github.com/cristianoliveira/catbot/internal/task"
)

// Field indices of a TSV line: id, kind, done, description, by, from, to.
const (
	fieldID = iota
	fieldKind
	fieldDone
	fieldDescription
	fieldBy
	fieldFrom
	fieldTo
	numFields
)

// FileStorage keeps the list in a tab-separated file, one task per line.
// Writes go to a temporary file that replaces the data file under a
// directory lock.
type FileStorage struct {
	path    string
	lockDir string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a FileStorage for path, creating its directory.
func NewFileStorage(path string) (*FileStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file storage: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &FileStorage{path: path, lockDir: path + ".lock"}, nil
}

// Path returns the data file path.
func (fs *FileStorage) Path() string {
	return fs.path
}

func (fs *FileStorage) Load() ([]task.Task, error) {
	f, err := os.Open(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file storage: open: %w", err)
	}
	defer f.Close()

	records, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("file storage: %s: %w", fs.path, err)
	}
	return record.ToTasks(records)
}

func (fs *FileStorage) Save(tasks []task.Task) error {
	return WithLock(fs.lockDir, func() error {
		tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("file storage: create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if err := WriteTSV(tmp, record.FromTasks(tasks)); err != nil {
			tmp.Close()
			return fmt.Errorf("file storage: write: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("file storage: close temp file: %w", err)
		}
		if err := os.Chmod(tmp.Name(), FileModeFile); err != nil {
			return fmt.Errorf("file storage: chmod: %w", err)
		}
		if err := os.Rename(tmp.Name(), fs.path); err != nil {
			return fmt.Errorf("file storage: replace data file: %w", err)
		}
		return nil
	})
}

func (fs *FileStorage) Close() error {
	return nil
}

// WriteTSV writes one line per record.
func WriteTSV(w io.Writer, records []record.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		fields := make([]string, numFields)
		fields[fieldID] = r.ID
		fields[fieldKind] = r.Kind
		fields[fieldDone] = strconv.FormatBool(r.Done)
		fields[fieldDescription] = escapeField(r.Description)
		fields[fieldBy] = r.By
		fields[fieldFrom] = r.From
		fields[fieldTo] = r.To
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTSV parses lines written by WriteTSV. Blank lines are skipped.
func ReadTSV(r io.Reader) ([]record.Record, error) {
	var records []record.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != numFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, numFields, len(fields))
		}
		done, err := strconv.ParseBool(fields[fieldDone])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid done flag %q", line, fields[fieldDone])
		}
		records = append(records, record.Record{
			ID:          fields[fieldID],
			Kind:        fields[fieldKind],
			Done:        done,
			Description: unescapeField(fields[fieldDescription]),
			By:          fields[fieldBy],
			From:        fields[fieldFrom],
			To:          fields[fieldTo],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func escapeField(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func unescapeField(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
