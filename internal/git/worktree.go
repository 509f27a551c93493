package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
)

type CommitOptions struct {
	// StageAll stages every change before committing.
	StageAll bool
	// Ref commits on another branch: it is checked out first and the
	// previous HEAD is restored afterwards, even when committing fails.
	Ref        string
	AllowEmpty bool
}

type RemoveOptions = command.RemoveOptions

// Stage adds every change under path to the index; an empty path stages the
// whole working tree.
func (r *Repository) Stage(ctx context.Context, path string) error {
	cmd, err := command.Add(path)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("stage %q: %w", path, classify(err))
	}
	return nil
}

func (r *Repository) Commit(ctx context.Context, message string, opts CommitOptions) (err error) {
	cmd, err := command.Commit(message, command.CommitOptions{AllowEmpty: opts.AllowEmpty})
	if err != nil {
		return err
	}

	if opts.Ref != "" {
		var (
			restore  string
			switched bool
		)
		restore, switched, err = r.switchTo(ctx, opts.Ref)
		if err != nil {
			return err
		}
		if switched {
			defer func() {
				// The restore outlives a cancelled ctx; Exec's own timeout bounds it.
				if rerr := r.Checkout(context.WithoutCancel(ctx), restore); rerr != nil {
					err = errors.Join(err, fmt.Errorf("restore %s: %w", restore, rerr))
				}
			}()
		}
	}

	if opts.StageAll {
		if err := r.Stage(ctx, ""); err != nil {
			return err
		}
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// switchTo checks ref out unless it is already the current branch. It
// returns what to check out to get back: the branch name, or the sha when
// HEAD was detached.
func (r *Repository) switchTo(ctx context.Context, ref string) (string, bool, error) {
	head, err := r.head(ctx)
	if err != nil {
		return "", false, fmt.Errorf("commit on %s: %w", ref, err)
	}
	restore := head.Name
	if head.Detached {
		restore = head.Sha.String()
	} else if head.Name == ref {
		return restore, false, nil
	}
	if err := r.Checkout(ctx, ref); err != nil {
		return "", false, err
	}
	return restore, true, nil
}

func (r *Repository) Checkout(ctx context.Context, ref string) error {
	cmd, err := command.Checkout(ref)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("checkout %s: %w", ref, classify(err))
	}
	return nil
}

// Move renames a tracked file or directory and stages the rename.
func (r *Repository) Move(ctx context.Context, from, to string) error {
	cmd, err := command.Move(from, to)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("move %q to %q: %w", from, to, classify(err))
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, path string, opts RemoveOptions) error {
	cmd, err := command.Remove(path, opts)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, cmd); err != nil {
		return fmt.Errorf("remove %q: %w", path, classify(err))
	}
	return nil
}
