// Package watch reports changes to a repository's refs, index and working
// tree metadata by watching its git directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of writes a single git command makes.
const DefaultDelay = 350 * time.Millisecond

type Options struct {
	// Delay is how long the repository must stay quiet before a change is
	// reported. Zero means DefaultDelay.
	Delay time.Duration
}

type Watcher struct {
	root  string
	delay time.Duration
}

func New(root string, opts Options) *Watcher {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Watcher{root: root, delay: delay}
}

// Run calls onChange after every settled burst of changes until ctx is
// done. onChange runs on the goroutine calling Run, so a slow callback
// delays but never overlaps the next one.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	paths := watchPaths(w.root)
	if len(paths) == 0 {
		return fmt.Errorf("watch %s: nothing to watch", w.root)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	for _, p := range paths {
		slog.Debug("adding path to FS watcher", slog.String("path", p))
		if err := fsw.Add(p); err != nil {
			err := errors.Join(err, fsw.Close())
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	changes := make(chan struct{}, 1)
	d := newDebouncer(w.delay, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := fsw.Close(); err != nil {
				slog.Error("watcher close", slog.Any("error", err))
			}
			return nil
		case <-changes:
			slog.Debug("repository changed", slog.String("root", w.root))
			onChange()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			d.Trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return !shouldIgnorePath(ev.Name)
}

// watchPaths lists the git directory and its local branch refs, or the root
// itself when .git is not a directory (linked worktrees, submodules).
func watchPaths(root string) []string {
	if root == "" {
		return nil
	}
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return []string{root}
	}
	paths := []string{gitDir}
	heads := filepath.Join(gitDir, "refs", "heads")
	if info, err := os.Stat(heads); err == nil && info.IsDir() {
		paths = append(paths, heads)
	}
	return paths
}

func shouldIgnorePath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
