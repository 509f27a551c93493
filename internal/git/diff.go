package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

type DiffOptions struct {
	// From is the old side. When empty the first parent of To is used, or
	// the empty tree for a root commit.
	From string
	// To defaults to HEAD.
	To string
	// Path restricts the diff to one file or directory.
	Path string
}

// Diff resolves both sides to commits and diffs them.
func (r *Repository) Diff(ctx context.Context, opts DiffOptions) (object.Diff, error) {
	to, err := r.GetCommit(ctx, opts.To)
	if err != nil {
		return object.Diff{}, err
	}
	if opts.From == "" {
		return r.DiffCommits(ctx, nil, to, opts.Path)
	}
	from, err := r.GetCommit(ctx, opts.From)
	if err != nil {
		return object.Diff{}, err
	}
	return r.DiffCommits(ctx, &from, to, opts.Path)
}

// DiffCommits diffs from against to. A nil from means the first parent of
// to; a root commit then shows every file it adds.
func (r *Repository) DiffCommits(ctx context.Context, from *object.Commit, to object.Commit, path string) (object.Diff, error) {
	var (
		cmd command.Command
		err error
	)
	switch {
	case from != nil:
		cmd, err = command.Diff(from.Sha.String(), to.Sha.String(), path)
	case to.IsRoot():
		cmd, err = command.RootDiff(to.Sha.String(), path)
	default:
		cmd, err = command.Diff(to.Parents[0].String(), to.Sha.String(), path)
	}
	if err != nil {
		return object.Diff{}, err
	}
	return r.diff(ctx, cmd, "diff "+to.Sha.String())
}

// WorktreeDiff diffs the working tree against the index, or the index
// against HEAD when staged is set.
func (r *Repository) WorktreeDiff(ctx context.Context, staged bool, path string) (object.Diff, error) {
	cmd, err := command.WorktreeDiff(staged, path)
	if err != nil {
		return object.Diff{}, err
	}
	return r.diff(ctx, cmd, "worktree diff")
}

func (r *Repository) diff(ctx context.Context, cmd command.Command, what string) (object.Diff, error) {
	// Exit code 1 only signals differences.
	res, err := r.run(ctx, cmd, 0, 1)
	if err != nil {
		return object.Diff{}, fmt.Errorf("%s: %w", what, classify(err))
	}
	d, err := parse.ParseDiff(res.Lines)
	if err != nil {
		return object.Diff{}, fmt.Errorf("%s: %w", what, err)
	}
	return d, nil
}
