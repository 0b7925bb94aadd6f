package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danieljhkim/nameswap/internal/fsops"
)

// ErrInvalidID indicates a journal ID that is not a UUID.
var ErrInvalidID = errors.New("invalid journal id")

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}

// Store persists exchange records.
type Store interface {
	// Save writes the record atomically.
	Save(record *Record) error

	// Load loads the record with the given ID.
	// Returns os.ErrNotExist if it doesn't exist.
	Load(id string) (*Record, error)

	// List returns all records, newest first.
	List() ([]*Record, error)
}

// FileStore implements Store using one JSON file per record.
type FileStore struct {
	fs  fsops.FS
	dir string
}

// NewFileStore creates a new FileStore rooted at dir.
func NewFileStore(fs fsops.FS, dir string) *FileStore {
	return &FileStore{
		fs:  fs,
		dir: dir,
	}
}

func (s *FileStore) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Save writes the record atomically.
func (s *FileStore) Save(record *Record) error {
	path, err := s.path(record.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal record: %w", err)
	}

	return nil
}

// Load loads the record with the given ID.
func (s *FileStore) Load(id string) (*Record, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read journal record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal record: %w", err)
	}

	return &record, nil
}

// List returns all records, newest first. Unreadable files are skipped.
func (s *FileStore) List() ([]*Record, error) {
	names, err := s.fs.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Record{}, nil
		}
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	records := make([]*Record, 0, len(names))
	for _, name := range names {
		id, ok := strings.CutSuffix(name, ".json")
		if !ok {
			continue
		}
		record, err := s.Load(id)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}
