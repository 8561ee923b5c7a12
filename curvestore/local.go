package curvestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/zcurve"
)

// LocalStore implements Store using a directory of JSON files, one per curve.
// Writes go through a temp file and rename, so readers never observe a
// partially written curve.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at the given directory,
// creating it if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("curvestore: create root: %w", err)
	}

	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, name+".json")
}

// Put writes a curve under the given name.
func (s *LocalStore) Put(_ context.Context, name string, c *zcurve.SurrogateCurve) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, name+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(name))
}

// Get reads the curve stored under the given name.
func (s *LocalStore) Get(_ context.Context, name string) (*zcurve.SurrogateCurve, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	var c zcurve.SurrogateCurve
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	return &c, nil
}
