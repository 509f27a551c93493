package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchPaths(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git", "refs", "heads"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(repo, ".git"), filepath.Join(repo, ".git", "refs", "heads")}
	if got := watchPaths(repo); !slices.Equal(got, want) {
		t.Fatalf("watchPaths() = %q, want %q", got, want)
	}

	linked := t.TempDir()
	if err := os.WriteFile(filepath.Join(linked, ".git"), []byte("gitdir: /elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := watchPaths(linked); !slices.Equal(got, []string{linked}) {
		t.Fatalf("watchPaths(linked) = %q", got)
	}
	if got := watchPaths(""); got != nil {
		t.Fatalf("watchPaths(\"\") = %q", got)
	}
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{ev: fsnotify.Event{Name: "/r/.git/HEAD", Op: fsnotify.Write}, want: true},
		{ev: fsnotify.Event{Name: "/r/.git/refs/heads/main", Op: fsnotify.Create}, want: true},
		{ev: fsnotify.Event{Name: "/r/.git/index.lock", Op: fsnotify.Create}, want: false},
		{ev: fsnotify.Event{Name: "/r/.git/fsmonitor.IPC", Op: fsnotify.Write}, want: false},
		{ev: fsnotify.Event{Name: "/r/.git/HEAD", Op: fsnotify.Chmod}, want: false},
	}
	for _, tt := range tests {
		if got := relevant(tt.ev); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestRunReportsSettledChanges(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	gitDir := filepath.Join(repo, ".git")
	if err := os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- New(repo, Options{Delay: 20 * time.Millisecond}).Run(ctx, func() {
			changed <- struct{}{}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(gitDir, "index.lock"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Fatal("lock file reported as a change")
	case <-time.After(150 * time.Millisecond):
	}

	for i := range 3 {
		ref := filepath.Join(gitDir, "refs", "heads", "main")
		if err := os.WriteFile(ref, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("change not reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestNewDefaultsDelay(t *testing.T) {
	t.Parallel()

	if w := New("/r", Options{}); w.delay != DefaultDelay {
		t.Fatalf("delay = %v, want %v", w.delay, DefaultDelay)
	}
}
