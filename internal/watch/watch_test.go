package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_RunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact_list")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w, err := NewFileWatcher(path, func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileWatcher_PendingDebounceDoesNotFireAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact_list")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	var calls atomic.Int32
	w, err := NewFileWatcher(path, func() { calls.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 在去抖窗口内写入并立刻取消：回调不得在退出后触发
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"agent_1":"a","agent_2":"b"}]`), 0o644))
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
	time.Sleep(2 * debounceInterval)
	assert.Zero(t, calls.Load())
}
