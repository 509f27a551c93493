package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

type BranchOptions struct {
	IncludeRemote bool
}

// Branches lists branches with primary branches first and the rest by name.
// A detached HEAD is not a branch and is left out.
func (r *Repository) Branches(ctx context.Context, opts BranchOptions) ([]object.Branch, error) {
	all, err := r.listBranches(ctx, opts.IncludeRemote)
	if err != nil {
		return nil, err
	}
	branches := slices.DeleteFunc(all, func(b object.Branch) bool { return b.Detached })
	r.sortBranches(branches)
	return branches, nil
}

func (r *Repository) BranchNames(ctx context.Context, includeRemote bool) ([]string, error) {
	branches, err := r.Branches(ctx, BranchOptions{IncludeRemote: includeRemote})
	if err != nil {
		return nil, err
	}
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	return names, nil
}

// Branch looks a local or remote branch up by its listing name, e.g.
// "feature" or "remotes/origin/main".
func (r *Repository) Branch(ctx context.Context, name string) (object.Branch, bool, error) {
	branches, err := r.listBranches(ctx, true)
	if err != nil {
		return object.Branch{}, false, err
	}
	for _, b := range branches {
		if !b.Detached && b.Name == name {
			return b, true, nil
		}
	}
	return object.Branch{}, false, nil
}

// CurrentBranch returns the checked out branch. It fails with ErrNotFound
// when HEAD is detached or no branch has a commit yet.
func (r *Repository) CurrentBranch(ctx context.Context) (object.Branch, error) {
	head, err := r.head(ctx)
	if err != nil {
		return object.Branch{}, err
	}
	if head.Detached {
		return object.Branch{}, fmt.Errorf("current branch: HEAD is detached at %s: %w", head.Sha, ErrNotFound)
	}
	return head, nil
}

// head returns the current entry of the local listing, which is the
// detached pseudo-branch when HEAD is detached.
func (r *Repository) head(ctx context.Context) (object.Branch, error) {
	branches, err := r.listBranches(ctx, false)
	if err != nil {
		return object.Branch{}, err
	}
	for _, b := range branches {
		if b.Current {
			return b, nil
		}
	}
	return object.Branch{}, fmt.Errorf("current branch: %w", ErrNotFound)
}

func (r *Repository) CreateBranch(ctx context.Context, name, startPoint string) error {
	cmd, err := command.CreateBranch(name, startPoint)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("create branch %s: %w", name, classify(err))
	}
	return nil
}

func (r *Repository) DeleteBranch(ctx context.Context, name string, force bool) error {
	cmd, err := command.DeleteBranch(name, force)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("delete branch %s: %w", name, classify(err))
	}
	return nil
}

func (r *Repository) listBranches(ctx context.Context, includeRemote bool) ([]object.Branch, error) {
	res, err := r.run(ctx, command.BranchList(includeRemote))
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	branches, err := parse.ParseBranches(res.Lines)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

func (r *Repository) sortBranches(branches []object.Branch) {
	rank := func(b object.Branch) int {
		if b.Remote {
			return len(r.primaryBranches) + 1
		}
		if i := slices.Index(r.primaryBranches, b.Name); i >= 0 {
			return i
		}
		return len(r.primaryBranches)
	}
	slices.SortStableFunc(branches, func(a, b object.Branch) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Name, b.Name)
	})
}
