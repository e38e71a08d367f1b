package sort

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tiedye/internal/errors"
	"tiedye/pkg/types"

	"github.com/gobwas/glob"
)

// Scanner enumerates candidate files under a root directory. The full list is
// materialized before the engine mutates anything: the directory tree must not
// change while it is being enumerated, so a moved file is never re-visited and
// a freshly created target folder is never re-scanned as a source.
type Scanner struct {
	recursive bool
	ignore    []glob.Glob
}

// NewScanner builds a scanner for one sort run. Ignore patterns are matched
// against base names; plain filenames match themselves.
func NewScanner(recursive bool, ignorePatterns []string) (*Scanner, error) {
	s := &Scanner{recursive: recursive}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", pattern, errors.InvalidConfig, err)
		}
		s.ignore = append(s.ignore, g)
	}
	return s, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, g := range s.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Scan returns the complete, static list of regular files under root.
// Recursive mode walks all descendants; otherwise only direct children are
// considered. Fails when root does not exist or is not a directory.
func (s *Scanner) Scan(root string) ([]types.CandidateFile, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.NewFileError("source is not a directory", abs, errors.NotADirectory, err)
	}

	if s.recursive {
		return s.scanTree(abs)
	}
	return s.scanFlat(abs)
}

func (s *Scanner) scanFlat(root string) ([]types.CandidateFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading directory %s", root)
	}

	var files []types.CandidateFile
	for _, entry := range entries {
		if s.ignored(entry.Name()) || !entry.Type().IsRegular() {
			continue
		}
		files = append(files, newCandidate(filepath.Join(root, entry.Name())))
	}
	return files, nil
}

func (s *Scanner) scanTree(root string) ([]types.CandidateFile, error) {
	var files []types.CandidateFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if s.ignored(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, newCandidate(path))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error walking directory %s", root)
	}
	return files, nil
}

func newCandidate(path string) types.CandidateFile {
	name := filepath.Base(path)
	return types.CandidateFile{
		Path:   path,
		Name:   name,
		Suffix: strings.ToLower(filepath.Ext(name)),
	}
}
