package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
)

func TestPromptWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, dir := newTestPromptStore(t)
	_, err := store.Load(driven.PromptReading)
	require.NoError(t, err)

	var reloads atomic.Int32
	watcher := NewPromptWatcher(store, dir, func(string) { reloads.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// The watch is registered asynchronously; keep writing until it is seen.
	path := filepath.Join(dir, "reading.tmpl")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("edited {{.Day}}"), 0600)
		return reloads.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	prompt, err := store.Load(driven.PromptReading)
	require.NoError(t, err)
	assert.Equal(t, "edited {{.Day}}", prompt)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestPromptWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, dir := newTestPromptStore(t)
	var reloads atomic.Int32
	watcher := NewPromptWatcher(store, dir, func(string) { reloads.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0600))
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, reloads.Load())
}

func TestPromptWatcher_BadDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	watcher := NewPromptWatcher(nil, filepath.Join(blocker, "prompts"), nil)

	assert.Error(t, watcher.Run(context.Background()))
}
