package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/watcher"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// nextEvent waits for an event on path, restricted to ops when given.
func nextEvent(t *testing.T, events <-chan ports.WatchEvent, path string, ops ...ports.WatchOp) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if ev.Path == path && (len(ops) == 0 || slices.Contains(ops, ev.Operation)) {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o750))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))
	t.Cleanup(func() { _ = w.Stop() })

	events := make(chan ports.WatchEvent, 100)
	go func() {
		defer close(events)
		for ev := range w.Events() {
			events <- ev
		}
	}()

	file := filepath.Join(root, "main.js")
	require.NoError(t, os.WriteFile(file, []byte("console.log(1)"), 0o600))
	nextEvent(t, events, file)

	// Directories created after Start are watched too.
	sub := filepath.Join(root, "lib")
	require.NoError(t, os.Mkdir(sub, 0o750))
	nextEvent(t, events, sub)

	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	nested := filepath.Join(sub, "util.js")
	require.NoError(t, os.WriteFile(nested, []byte("module.exports = 1"), 0o600))
	nextEvent(t, events, nested)

	require.NoError(t, os.Remove(file))
	nextEvent(t, events, file, ports.OpRemove)
}

func TestWatchOp_String(t *testing.T) {
	require.Equal(t, "create", ports.OpCreate.String())
	require.Equal(t, "write", ports.OpWrite.String())
	require.Equal(t, "remove", ports.OpRemove.String())
	require.Equal(t, "rename", ports.OpRename.String())
	require.Equal(t, "unknown", ports.WatchOp(42).String())
}
