package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRejectsMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), 50*time.Millisecond); err == nil {
		t.Fatal("New() error = nil for a missing directory")
	}
}

func TestWatcherDeliversChangeEvent(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "main.dl")
	if err := os.WriteFile(path, []byte("fn main() -> i32 {\nreturn 0;\n}"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case got := <-w.Events():
		if filepath.Clean(got) != filepath.Clean(path) {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestWatcherCoalescesEventBurst(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "main.dl")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("fn"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the coalesced event")
	}

	// The burst fits inside one debounce window; no second
	// notification should follow.
	select {
	case got := <-w.Events():
		t.Fatalf("unexpected second event for %q", got)
	case <-time.After(500 * time.Millisecond):
	}
}
