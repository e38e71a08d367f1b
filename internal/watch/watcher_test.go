package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tiedye/internal/sort"
	"tiedye/internal/watch"
	"tiedye/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *sort.Engine {
	t.Helper()
	engine, err := sort.NewEngine(&types.SorterConfig{
		Rules: []types.SortRule{
			{Extensions: []string{".pdf"}, TargetFolder: "Docs"},
		},
		CollisionPolicy: types.CollisionSkip,
	})
	require.NoError(t, err)
	return engine
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []types.MoveOutcome
}

func (r *outcomeRecorder) record(o types.MoveOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *outcomeRecorder) snapshot() []types.MoveOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.MoveOutcome(nil), r.outcomes...)
}

func TestWatcherSortsNewFiles(t *testing.T) {
	dir := t.TempDir()
	recorder := &outcomeRecorder{}

	watcher, err := watch.New(dir, newTestEngine(t), recorder.record)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("pdf"), 0644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "Docs", "report.pdf"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "file should be sorted into Docs")

	require.Eventually(t, func() bool {
		return len(recorder.snapshot()) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, types.StatusMoved, recorder.snapshot()[0].Status)
}

func TestWatcherIgnoresHiddenAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	recorder := &outcomeRecorder{}

	watcher, err := watch.New(dir, newTestEngine(t), recorder.record)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.pdf"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.pdf~"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.pdf"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "Docs", "real.pdf"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	for _, o := range recorder.snapshot() {
		assert.NotContains(t, o.Source, ".hidden")
		assert.NotContains(t, o.Source, "~")
	}
	assert.FileExists(t, filepath.Join(dir, ".hidden.pdf"))
	assert.FileExists(t, filepath.Join(dir, "draft.pdf~"))
}

func TestWatcherRejectsMissingDirectory(t *testing.T) {
	_, err := watch.New(filepath.Join(t.TempDir(), "nope"), newTestEngine(t), nil)
	require.Error(t, err)
}

func TestWatcherStopsOnCancel(t *testing.T) {
	watcher, err := watch.New(t.TempDir(), newTestEngine(t), nil)
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
