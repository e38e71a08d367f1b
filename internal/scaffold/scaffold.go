// Package scaffold implements the directory-template scaffolder: directory
// trees saved as named templates and instantiated as new projects.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"tiedye/internal/config"
	"tiedye/internal/errors"
	"tiedye/internal/log"
)

// Scaffolder manages templates under the configured templates directory.
// Favorites are persisted through the config store.
type Scaffolder struct {
	cfg   config.ScaffolderSection
	store *config.Store
}

// New creates a scaffolder from the scaffolder config section.
func New(cfg config.ScaffolderSection, store *config.Store) *Scaffolder {
	return &Scaffolder{cfg: cfg, store: store}
}

func (s *Scaffolder) templatesDir() (string, error) {
	if s.cfg.TemplatesDir == "" {
		return "", errors.NewConfigError("scaffolder.templates_dir is not defined", "scaffolder.templates_dir", errors.MissingSection, nil)
	}
	return config.ExpandUser(s.cfg.TemplatesDir), nil
}

// SaveTemplate stores the directory at source as a new template. Overwriting
// an existing template is not allowed.
func (s *Scaffolder) SaveTemplate(name, source string) (string, error) {
	templatesDir, err := s.templatesDir()
	if err != nil {
		return "", err
	}

	source = config.ExpandUser(source)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return "", errors.NewFileError("template source is not a directory", source, errors.NotADirectory, err)
	}

	dest := filepath.Join(templatesDir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", errors.Newf("template %q already exists", name)
	}

	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create templates directory")
	}
	if err := copyTree(source, dest); err != nil {
		return "", err
	}

	log.Info("saved template %q from %s", name, source)
	return dest, nil
}

// CreateProject instantiates a template as a new project directory. The
// destination defaults to the configured project destination, falling back to
// the current directory.
func (s *Scaffolder) CreateProject(template, project string) (string, error) {
	templatesDir, err := s.templatesDir()
	if err != nil {
		return "", err
	}

	source := filepath.Join(templatesDir, template)
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return "", errors.NewFileError(fmt.Sprintf("template %q not found", template), source, errors.FileNotFound, err)
	}

	destDir := s.cfg.DefaultProjectDestination
	if destDir == "" {
		destDir = "."
	}
	destDir = config.ExpandUser(destDir)

	dest := filepath.Join(destDir, project)
	if _, err := os.Stat(dest); err == nil {
		return "", errors.Newf("directory %q already exists at that location", project)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create project destination")
	}
	if err := copyTree(source, dest); err != nil {
		return "", err
	}

	log.Info("created project %q from template %q", project, template)
	return dest, nil
}

// ListTemplates returns saved template names, favorites separated out.
// Both lists are sorted.
func (s *Scaffolder) ListTemplates() (favorites, others []string, err error) {
	templatesDir, err := s.templatesDir()
	if err != nil {
		return nil, nil, err
	}

	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrap(err, "failed to read templates directory")
	}

	fav := make(map[string]bool, len(s.cfg.Favorites))
	for _, name := range s.cfg.Favorites {
		fav[name] = true
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if fav[entry.Name()] {
			favorites = append(favorites, entry.Name())
		} else {
			others = append(others, entry.Name())
		}
	}
	sort.Strings(favorites)
	sort.Strings(others)
	return favorites, others, nil
}

// Favorite marks a template as a favorite. Adding twice is a no-op.
func (s *Scaffolder) Favorite(name string) error {
	return s.store.Update(func(cfg *config.Config) error {
		for _, existing := range cfg.Scaffolder.Favorites {
			if existing == name {
				return nil
			}
		}
		cfg.Scaffolder.Favorites = append(cfg.Scaffolder.Favorites, name)
		return nil
	})
}

// Unfavorite removes a template from the favorites list.
func (s *Scaffolder) Unfavorite(name string) error {
	return s.store.Update(func(cfg *config.Config) error {
		kept := cfg.Scaffolder.Favorites[:0]
		for _, existing := range cfg.Scaffolder.Favorites {
			if existing != name {
				kept = append(kept, existing)
			}
		}
		cfg.Scaffolder.Favorites = kept
		return nil
	})
}

// copyTree recursively copies a directory tree, preserving file modes.
func copyTree(source, dest string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(source, dest string, mode os.FileMode) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
