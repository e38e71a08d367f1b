// Package pathstore manages named directory shortcuts persisted in the
// configuration document.
package pathstore

import (
	"os"
	"path/filepath"
	"sort"

	"tiedye/internal/config"
	"tiedye/internal/errors"
)

// Shortcut is one saved name -> directory mapping.
type Shortcut struct {
	Name string
	Path string
}

// Store reads and mutates the `paths` section of the config document through
// a load-modify-save transaction.
type Store struct {
	store *config.Store
}

// New creates a path store over the given config store.
func New(store *config.Store) *Store {
	return &Store{store: store}
}

// Save records a shortcut. The path must be an existing directory; it is
// expanded and resolved to an absolute path before being stored.
func (s *Store) Save(name, path string) (string, error) {
	resolved, err := filepath.Abs(config.ExpandUser(path))
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", errors.NewFileError("path is not a directory", resolved, errors.NotADirectory, err)
	}

	err = s.store.Update(func(cfg *config.Config) error {
		if cfg.Paths == nil {
			cfg.Paths = map[string]string{}
		}
		cfg.Paths[name] = resolved
		return nil
	})
	return resolved, err
}

// Remove deletes a shortcut. Removing an unknown name is an error.
func (s *Store) Remove(name string) error {
	return s.store.Update(func(cfg *config.Config) error {
		if _, ok := cfg.Paths[name]; !ok {
			return errors.Newf("shortcut %q not found", name)
		}
		delete(cfg.Paths, name)
		return nil
	})
}

// Get returns the directory a shortcut points at.
func (s *Store) Get(name string) (string, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return "", err
	}
	path, ok := cfg.Paths[name]
	if !ok {
		return "", errors.Newf("shortcut %q not found", name)
	}
	return path, nil
}

// List returns all shortcuts sorted by name.
func (s *Store) List() ([]Shortcut, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	shortcuts := make([]Shortcut, 0, len(cfg.Paths))
	for name, path := range cfg.Paths {
		shortcuts = append(shortcuts, Shortcut{Name: name, Path: path})
	}
	sort.Slice(shortcuts, func(i, j int) bool { return shortcuts[i].Name < shortcuts[j].Name })
	return shortcuts, nil
}
