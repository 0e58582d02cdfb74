package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
)

// FileStore keeps one JSON family file per id in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file store in dir, creating the directory if needed.
// If dir is empty, defaults to ~/.config/famlayout/families/.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "famlayout", "families")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path validates id before turning it into a file name.
func (s *FileStore) path(id string) (string, error) {
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) Get(_ context.Context, id string) (graph.FamilyFile, error) {
	path, err := s.path(id)
	if err != nil {
		return graph.FamilyFile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return graph.FamilyFile{}, ErrNotFound
	}
	if err != nil {
		return graph.FamilyFile{}, fmt.Errorf("read family %s: %w", id, err)
	}
	return graph.UnmarshalFamily(data)
}

func (s *FileStore) Put(_ context.Context, id string, f graph.FamilyFile) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	data, err := graph.MarshalFamily(f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Write then rename so readers never see a partial file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write family %s: %w", id, err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

func (s *FileStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			ids = append(ids, name)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
