package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCallback(t *testing.T) {
	_, err := New(time.Millisecond, nil, nil)
	assert.ErrorIs(t, err, os.ErrInvalid)
}

func TestScheduleCoalescesChanges(t *testing.T) {
	batches := make(chan []string, 4)
	w, err := New(30*time.Millisecond, nil, func(paths []string) { batches <- paths })
	require.NoError(t, err)
	defer w.Close()

	w.schedule("b.jbind")
	w.schedule("a.jbind")
	w.schedule("b.jbind")

	select {
	case paths := <-batches:
		assert.Equal(t, []string{"a.jbind", "b.jbind"}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}

	select {
	case paths := <-batches:
		t.Fatalf("unexpected second batch: %v", paths)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunReportsMatchingWrites(t *testing.T) {
	dir := t.TempDir()
	batches := make(chan []string, 8)
	onlyBindings := func(path string) bool { return strings.HasSuffix(path, ".jbind") }

	w, err := New(50*time.Millisecond, onlyBindings, func(paths []string) { batches <- paths })
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "counter.jbind")
	require.NoError(t, os.WriteFile(target, []byte("class Counter {}"), 0o644))

	select {
	case paths := <-batches:
		assert.Equal(t, []string{target}, paths)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestAddMissingRoot(t *testing.T) {
	w, err := New(time.Millisecond, nil, func([]string) {})
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}
