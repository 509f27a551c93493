package git

import (
	"context"
	"errors"
	"testing"

	"github.com/thiagokokada/gitrepo/internal/git/command"
)

func TestTreeRoot(t *testing.T) {
	t.Parallel()

	f := newFakeCaller().
		on(mustCmd(command.RevParse("HEAD^{tree}")), fakeResponse{out: shaT + "\n"}).
		on(mustCmd(command.LsTree("HEAD", "", false)), fakeResponse{out: "" +
			"100644 blob " + shaA + "       2\t3\n" +
			"040000 tree " + shaB + "       -\ttest\n"})
	repo := newTestRepo(f)

	tree, err := repo.Tree(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree.Sha.String() != shaT || !tree.IsRoot() {
		t.Fatalf("Tree() = %+v", tree)
	}
	if len(tree.Entries) != 2 || tree.Entries[0].Name != "test" || tree.Entries[1].Name != "3" {
		t.Fatalf("Tree() entries = %+v", tree.Entries)
	}
}

func TestTreeBlobPath(t *testing.T) {
	t.Parallel()

	f := newFakeCaller().on(mustCmd(command.LsTree("master", "docs/a.md", false)), fakeResponse{
		out: "100644 blob " + shaA + "      10\tdocs/a.md\n",
	})
	tree, err := newTestRepo(f).Tree(context.Background(), "master", "docs/a.md")
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if !tree.IsBlob() || tree.Blob.Size != 10 {
		t.Fatalf("Tree() = %+v", tree)
	}
	if len(f.calls) != 1 {
		t.Fatalf("calls = %q, want only the single entry listing", f.calls)
	}
}

func TestTreeDirectoryPath(t *testing.T) {
	t.Parallel()

	f := newFakeCaller().
		on(mustCmd(command.LsTree("HEAD", "src", false)), fakeResponse{
			out: "040000 tree " + shaB + "       -\tsrc\n",
		}).
		on(mustCmd(command.LsTree("HEAD", "src", true)), fakeResponse{out: "" +
			"040000 tree " + shaB + "       -\tsrc\n" +
			"100644 blob " + shaA + "       1\tsrc/main.go\n" +
			"040000 tree " + shaC + "       -\tsrc/pkg\n" +
			"100644 blob " + shaA + "       1\tsrc/pkg/x.go\n"})
	tree, err := newTestRepo(f).Tree(context.Background(), "HEAD", "src")
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree.Sha.String() != shaB || len(tree.Entries) != 2 || tree.Entries[0].Name != "pkg" {
		t.Fatalf("Tree() = %+v", tree)
	}
}

func TestTreeMissingPath(t *testing.T) {
	t.Parallel()

	f := newFakeCaller().on(mustCmd(command.LsTree("HEAD", "nope", false)), fakeResponse{})
	_, err := newTestRepo(f).Tree(context.Background(), "HEAD", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Tree() error = %v, want ErrNotFound", err)
	}
}
