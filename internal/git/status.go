package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

type StatusOptions struct {
	// Ignored also reports ignored files with the "!!" code.
	Ignored bool
}

// Status reports every changed, untracked and optionally ignored path.
// Untracked directories are expanded to their files.
func (r *Repository) Status(ctx context.Context, opts StatusOptions) ([]object.StatusEntry, error) {
	lines, err := r.StatusLines(ctx, opts)
	if err != nil {
		return nil, err
	}
	entries, err := parse.ParseStatus(lines)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	return entries, nil
}

// StatusLines returns the raw porcelain lines.
func (r *Repository) StatusLines(ctx context.Context, opts StatusOptions) ([]string, error) {
	res, err := r.run(ctx, command.Status(opts.Ignored))
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	return res.Lines, nil
}

// Clean reports whether the working tree has no staged, unstaged or
// untracked changes.
func (r *Repository) Clean(ctx context.Context) (bool, error) {
	lines, err := r.StatusLines(ctx, StatusOptions{})
	if err != nil {
		return false, err
	}
	return len(lines) == 0, nil
}
