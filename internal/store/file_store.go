package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// FileStore persists the booking set as a single JSON file.  Writes go to
// a temporary file in the same directory followed by a rename, so a failed
// write can never leave a truncated set behind.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path.  The file
// is created on first SaveAll; a missing file loads as an empty set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the whole booking set.
func (s *FileStore) Load(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Booking{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return bookings, nil
}

// SaveAll encodes the set and replaces the file atomically.
func (s *FileStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
