package git

import (
	"context"
	"testing"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	f := newFakeCaller().on(command.Status(true), fakeResponse{out: "" +
		" M main.go\n" +
		"R  old.txt -> new.txt\n" +
		"?? notes -> todo.md\n" +
		"!! build/\n"})
	entries, err := newTestRepo(f).Status(context.Background(), StatusOptions{Ignored: true})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	want := []object.StatusEntry{
		{Index: object.StatusUnmodified, Worktree: object.StatusModified, Path: "main.go"},
		{Index: object.StatusRenamed, Worktree: object.StatusUnmodified, Path: "new.txt", OriginalPath: "old.txt"},
		{Index: object.StatusUntracked, Worktree: object.StatusUntracked, Path: "notes -> todo.md"},
		{Index: object.StatusIgnored, Worktree: object.StatusIgnored, Path: "build/"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Status() = %+v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  string
		want bool
	}{
		{name: "clean", out: "", want: true},
		{name: "untracked", out: "?? new.txt\n", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeCaller().on(command.Status(false), fakeResponse{out: tt.out})
			got, err := newTestRepo(f).Clean(context.Background())
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Clean() = %v, want %v", got, tt.want)
			}
		})
	}
}
