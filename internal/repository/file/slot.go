package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SlotRepo implements repository.SlotRepository with one JSON file per key
type SlotRepo struct {
	dir string
}

// NewSlotRepo creates a slot repository rooted at dir, creating it if needed
func NewSlotRepo(dir string) (*SlotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &SlotRepo{dir: dir}, nil
}

func (r *SlotRepo) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

// Get returns the contents of the file for key
func (r *SlotRepo) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return data, true, nil
}

// Set writes value to a temp file and renames it over the slot file
func (r *SlotRepo) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for slot %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close slot %q: %w", key, err)
	}

	if err := os.Rename(tmpName, r.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace slot %q: %w", key, err)
	}
	return nil
}
