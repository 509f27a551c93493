package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

// Tree returns the directory or file at path in ref. Directories list their
// direct children; files come back with Blob set. An empty ref means HEAD
// and an empty path the root.
func (r *Repository) Tree(ctx context.Context, ref, path string) (object.Tree, error) {
	if ref == "" {
		ref = "HEAD"
	}
	p, err := command.CleanPath(path)
	if err != nil {
		return object.Tree{}, err
	}
	if p == "" {
		return r.rootTree(ctx, ref)
	}

	single, err := command.LsTree(ref, p, false)
	if err != nil {
		return object.Tree{}, err
	}
	res, err := r.run(ctx, single)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, classify(err))
	}
	if len(res.Lines) == 0 {
		return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, ErrNotFound)
	}
	entry, err := parse.ParseTreeEntry(res.Lines[0])
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, err)
	}
	if !entry.IsTree() {
		tree, err := parse.ParseTree(res.Lines, ref, p)
		if err != nil {
			return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, err)
		}
		return tree, nil
	}

	recursive, err := command.LsTree(ref, p, true)
	if err != nil {
		return object.Tree{}, err
	}
	res, err = r.run(ctx, recursive)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, classify(err))
	}
	tree, err := parse.ParseTree(res.Lines, ref, p)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s:%s: %w", ref, p, err)
	}
	return tree, nil
}

func (r *Repository) rootTree(ctx context.Context, ref string) (object.Tree, error) {
	verify, err := command.RevParse(ref + "^{tree}")
	if err != nil {
		return object.Tree{}, err
	}
	res, err := r.run(ctx, verify, 0, 1)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s: %w", ref, err)
	}
	if res.ExitCode == 1 {
		return object.Tree{}, fmt.Errorf("get tree %s: %w", ref, ErrNotFound)
	}
	sha, err := parse.ParseHash(res.Lines)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s: %w", ref, err)
	}

	// The root listing holds only direct children, no recursion needed.
	list, err := command.LsTree(ref, "", false)
	if err != nil {
		return object.Tree{}, err
	}
	res, err = r.run(ctx, list)
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s: %w", ref, classify(err))
	}
	tree, err := parse.ParseTree(res.Lines, ref, "")
	if err != nil {
		return object.Tree{}, fmt.Errorf("get tree %s: %w", ref, err)
	}
	tree.Sha = sha
	return tree, nil
}
