package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prunelock/internal/adapters/watcher"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/prunelock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, files ...string) <-chan ports.WatchEvent {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	require.NoError(t, w.Start(ctx, files))

	events := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(events)
		for event := range w.Events() {
			events <- event
		}
	}()
	return events
}

func waitEvent(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event stream closed")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return ports.WatchEvent{}
	}
}

func TestWatcher_ReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "meta.json")
	require.NoError(t, os.WriteFile(meta, []byte("{}"), 0o600))

	events := startWatcher(t, meta)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.js"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(meta, []byte(`{"outputs":{}}`), 0o600))

	event := waitEvent(t, events)
	assert.Equal(t, meta, event.Path)
}

func TestWatcher_ReportsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	lock := filepath.Join(dir, "package-lock.json")
	require.NoError(t, os.WriteFile(lock, []byte("{}"), 0o600))

	events := startWatcher(t, lock)

	tmp := filepath.Join(dir, ".package-lock.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"name":"shop"}`), 0o600))
	require.NoError(t, os.Rename(tmp, lock))

	event := waitEvent(t, events)
	assert.Equal(t, lock, event.Path)
	assert.Equal(t, ports.OpCreate, event.Operation)
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	err = w.Start(context.Background(), []string{filepath.Join(t.TempDir(), "missing", "meta.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch files")
}

func TestWatcher_EventsEndOnCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, []string{filepath.Join(dir, "meta.json")}))
	cancel()

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end")
	}
}
