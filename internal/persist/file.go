// Package persist stores the full event collection in a single JSON file.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/youmna-rabie/eventease/internal/types"
)

var (
	ErrNotExist = errors.New("data file does not exist")
	ErrCorrupt  = errors.New("data file is corrupt")
	ErrIO       = errors.New("data file i/o failure")
)

// Persister loads and saves the whole event collection.
type Persister interface {
	// Load returns the stored collection. It returns an error matching
	// ErrNotExist when nothing has been saved yet and ErrCorrupt when the
	// stored content cannot be decoded.
	Load() ([]types.Event, error)

	// Save replaces the stored collection. Readers never observe a partial write.
	Save(events []types.Event) error
}

// JSONFile is a Persister backed by an indented JSON array on disk.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSONFile that reads and writes path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the canonical file location.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads and decodes the file.
func (f *JSONFile) Load() ([]types.Event, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, f.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, f.path, err)
	}
	return Decode(data)
}

// Save encodes events and atomically replaces the file. The new content is
// written to a temporary file in the same directory, synced, then renamed
// over the target.
func (f *JSONFile) Save(events []types.Event) error {
	if events == nil {
		events = []types.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding events: %w", ErrIO, err)
	}
	if err := WriteAtomic(f.path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Decode parses a serialized collection.
func Decode(data []byte) ([]types.Event, error) {
	var events []types.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if events == nil {
		events = []types.Event{}
	}
	return events, nil
}

// WriteAtomic writes data to path via a temporary sibling file and rename,
// creating the parent directory if needed.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	committed = true
	return nil
}
