package sort

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"tiedye/internal/config"
	"tiedye/internal/errors"
	"tiedye/internal/log"
	"tiedye/pkg/types"
)

// Engine runs one sort pass: scan, classify, resolve, move, report.
// Configuration is read once at construction and treated as immutable for the
// run's duration.
type Engine struct {
	cfg      *types.SorterConfig
	scanner  *Scanner
	resolver *Resolver
}

// NewEngine creates an engine for the given sorter configuration.
func NewEngine(cfg *types.SorterConfig) (*Engine, error) {
	scanner, err := NewScanner(cfg.Recursive, cfg.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		scanner:  scanner,
		resolver: NewResolver(cfg.CollisionPolicy),
	}, nil
}

// Run sorts every candidate file under root and returns the per-file report.
// Root-level failures (root missing, unreadable) abort before any mutation;
// per-file failures are recorded as outcomes and never stop the run.
func (e *Engine) Run(root string) (*Report, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	files, err := e.scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	log.Debug("scan of %s found %d candidate files", root, len(files))

	report := NewReport()
	for _, file := range files {
		report.Add(e.sortOne(root, file))
	}
	return report, nil
}

// SortPath classifies and moves a single file, using root to anchor relative
// rule targets. Used by watch mode to process files as they appear.
func (e *Engine) SortPath(root, path string) types.MoveOutcome {
	return e.sortOne(root, newCandidate(path))
}

func (e *Engine) sortOne(root string, file types.CandidateFile) types.MoveOutcome {
	rule, ok := Match(e.cfg.Rules, file)
	if !ok {
		log.Debug("no rule for %s", file.Name)
		return types.MoveOutcome{Source: file.Path, Status: types.StatusSkippedNoRule}
	}

	dest, status, err := e.resolver.Resolve(file.Path, targetDir(root, rule.TargetFolder))
	if err != nil {
		return types.MoveOutcome{Source: file.Path, Status: types.StatusFailed, Err: err}
	}
	if status != "" {
		return types.MoveOutcome{Source: file.Path, Status: status}
	}

	if err := moveFile(file.Path, dest); err != nil {
		log.Warn("move failed for %s: %v", file.Path, err)
		return types.MoveOutcome{Source: file.Path, Destination: dest, Status: types.StatusFailed, Err: err}
	}

	log.Debug("moved %s -> %s", file.Path, dest)
	return types.MoveOutcome{Source: file.Path, Destination: dest, Status: types.StatusMoved}
}

// targetDir expands ~ in a rule target and anchors relative targets at the
// scan root.
func targetDir(root, target string) string {
	target = config.ExpandUser(target)
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(root, target)
}

// moveFile relocates src to dest, creating the destination's parent first.
// Rename is used when possible; across filesystems it falls back to
// copy+delete without ever leaving a partial destination file. One attempt,
// no retries.
func moveFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return classify("failed to create destination directory", dest, err)
	}

	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EXDEV) {
		return copyAndRemove(src, dest)
	}
	return classify("failed to move file", src, err)
}

// copyAndRemove copies src over dest via a temporary sibling file so a failed
// copy never leaves a truncated destination, then deletes the source.
func copyAndRemove(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return classify("failed to open source file", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return classify("failed to stat source file", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return classify("failed to create destination file", dest, err)
	}

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return classify("failed to copy file contents", src, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return classify("failed to flush destination file", dest, err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		os.Remove(tmp.Name())
		return classify("failed to set destination mode", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return classify("failed to move file", src, err)
	}

	if err := os.Remove(src); err != nil {
		return classify("failed to remove source after copy", src, err)
	}
	return nil
}

// classify tags permission failures so callers can report the detail; other
// I/O failures carry the underlying message.
func classify(msg, path string, err error) error {
	if os.IsPermission(err) {
		return errors.NewFileError(fmt.Sprintf("%s: permission denied", msg), path, errors.FileAccessDenied, err)
	}
	return errors.NewFileError(msg, path, errors.FileOperationFailed, err)
}
