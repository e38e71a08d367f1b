package sort_test

import (
	"os"
	"path/filepath"
	"testing"

	"tiedye/internal/sort"
	"tiedye/pkg/testutils"
	"tiedye/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, cfg *types.SorterConfig) *sort.Engine {
	t.Helper()
	engine, err := sort.NewEngine(cfg)
	require.NoError(t, err)
	return engine
}

func outcomeByName(report *sort.Report, name string) (types.MoveOutcome, bool) {
	for _, o := range report.Outcomes() {
		if filepath.Base(o.Source) == name {
			return o, true
		}
	}
	return types.MoveOutcome{}, false
}

// The end-to-end scenario: pdf and jpg are routed, txt has no rule.
func TestSortEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"report.pdf": "pdf content",
		"photo.jpg":  "jpg content",
		"notes.txt":  "txt content",
	})

	engine := newEngine(t, &types.SorterConfig{
		Rules: []types.SortRule{
			{Extensions: []string{".pdf"}, TargetFolder: "Docs"},
			{Extensions: []string{".jpg"}, TargetFolder: "Images"},
		},
		CollisionPolicy: types.CollisionSkip,
		Recursive:       false,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 2, report.Count(types.StatusMoved))
	assert.Equal(t, 1, report.Count(types.StatusSkippedNoRule))

	assert.FileExists(t, filepath.Join(tmpDir, "Docs", "report.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "Images", "photo.jpg"))
	assert.FileExists(t, filepath.Join(tmpDir, "notes.txt"), "unmatched file must be left untouched")
	assert.NoFileExists(t, filepath.Join(tmpDir, "report.pdf"))

	outcome, ok := outcomeByName(report, "notes.txt")
	require.True(t, ok)
	assert.Equal(t, types.StatusSkippedNoRule, outcome.Status)
}

// Two-pass isolation: a recursive run must not re-classify files it just
// moved into a target folder inside the scan root.
func TestSortTwoPassIsolation(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"one.pdf": "1",
		"two.pdf": "2",
	})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionRename,
		Recursive:       true,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err)

	// Exactly the two original files are processed; the freshly created
	// Docs folder is never re-scanned as a source.
	assert.Equal(t, 2, report.Total())
	assert.Equal(t, 2, report.Count(types.StatusMoved))
	assert.FileExists(t, filepath.Join(tmpDir, "Docs", "one.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "Docs", "two.pdf"))
	assert.NoFileExists(t, filepath.Join(tmpDir, "Docs", "one(1).pdf"))
}

func TestSortIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{"a.pdf": "a"})

	cfg := &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionSkip,
		Recursive:       true,
	}

	engine := newEngine(t, cfg)
	first, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count(types.StatusMoved))

	// Second run: the file already sits in its target folder.
	second, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count(types.StatusMoved))
	assert.Equal(t, 1, second.Count(types.StatusSkippedSameLocation))
	assert.Equal(t, "a", testutils.ReadFile(t, filepath.Join(tmpDir, "Docs", "a.pdf")))
}

func TestSortSkipPolicyLeavesBothFiles(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.pdf":      "incoming",
		"Docs/a.pdf": "existing",
	})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionSkip,
		Recursive:       false,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.StatusSkippedCollision))

	assert.Equal(t, "incoming", testutils.ReadFile(t, filepath.Join(tmpDir, "a.pdf")))
	assert.Equal(t, "existing", testutils.ReadFile(t, filepath.Join(tmpDir, "Docs", "a.pdf")))
}

func TestSortOverwritePolicy(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.pdf":      "incoming",
		"Docs/a.pdf": "existing",
	})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionOverwrite,
		Recursive:       false,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.StatusMoved))
	assert.Equal(t, "incoming", testutils.ReadFile(t, filepath.Join(tmpDir, "Docs", "a.pdf")))
	assert.NoFileExists(t, filepath.Join(tmpDir, "a.pdf"))
}

func TestSortRenamePolicy(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.pdf":      "third",
		"Docs/a.pdf": "first",
	})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionRename,
		Recursive:       false,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.StatusMoved))
	assert.Equal(t, "first", testutils.ReadFile(t, filepath.Join(tmpDir, "Docs", "a.pdf")))
	assert.Equal(t, "third", testutils.ReadFile(t, filepath.Join(tmpDir, "Docs", "a(1).pdf")))
}

func TestSortAbsoluteTarget(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	testutils.WriteFiles(t, srcDir, map[string]string{"a.pdf": "a"})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: filepath.Join(destDir, "Docs")}},
		CollisionPolicy: types.CollisionSkip,
		Recursive:       false,
	})

	report, err := engine.Run(srcDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(types.StatusMoved))
	assert.FileExists(t, filepath.Join(destDir, "Docs", "a.pdf"))
}

// Per-file failures are isolated: the run continues past them.
func TestSortPerFileFailureIsolation(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{
		"a.pdf": "a",
		"b.jpg": "b",
	})
	// Occupy the Docs path with a file so the pdf's destination directory
	// cannot be created.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Docs"), []byte("in the way"), 0644))

	engine := newEngine(t, &types.SorterConfig{
		Rules: []types.SortRule{
			{Extensions: []string{".pdf"}, TargetFolder: "Docs"},
			{Extensions: []string{".jpg"}, TargetFolder: "Images"},
		},
		CollisionPolicy: types.CollisionSkip,
		Recursive:       false,
	})

	report, err := engine.Run(tmpDir)
	require.NoError(t, err, "per-file errors must not abort the run")

	assert.Equal(t, 1, report.Count(types.StatusFailed))
	assert.Equal(t, 1, report.Count(types.StatusMoved))
	assert.FileExists(t, filepath.Join(tmpDir, "Images", "b.jpg"))

	outcome, ok := outcomeByName(report, "a.pdf")
	require.True(t, ok)
	assert.Equal(t, types.StatusFailed, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestSortRootErrors(t *testing.T) {
	engine := newEngine(t, &types.SorterConfig{CollisionPolicy: types.CollisionSkip})

	_, err := engine.Run(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSortPath(t *testing.T) {
	tmpDir := t.TempDir()
	testutils.WriteFiles(t, tmpDir, map[string]string{"a.pdf": "a"})

	engine := newEngine(t, &types.SorterConfig{
		Rules:           []types.SortRule{{Extensions: []string{".pdf"}, TargetFolder: "Docs"}},
		CollisionPolicy: types.CollisionSkip,
	})

	outcome := engine.SortPath(tmpDir, filepath.Join(tmpDir, "a.pdf"))
	assert.Equal(t, types.StatusMoved, outcome.Status)
	assert.FileExists(t, filepath.Join(tmpDir, "Docs", "a.pdf"))
}
