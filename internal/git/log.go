package git

import (
	"context"
	"fmt"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
)

// LogOptions selects commits for Log and LogRange. Ref defaults to HEAD.
type LogOptions = command.LogOptions

// GetCommit returns the commit ref resolves to. An empty ref means HEAD.
func (r *Repository) GetCommit(ctx context.Context, ref string) (object.Commit, error) {
	if ref == "" {
		ref = "HEAD"
	}
	cmd, err := command.Show(ref)
	if err != nil {
		return object.Commit{}, err
	}
	res, err := r.run(ctx, cmd)
	if err != nil {
		return object.Commit{}, fmt.Errorf("get commit %s: %w", ref, classify(err))
	}
	c, err := parse.ParseCommit(res.Lines)
	if err != nil {
		return object.Commit{}, fmt.Errorf("get commit %s: %w", ref, err)
	}
	return c, nil
}

// CountCommits counts the commits reachable from ref, ref included.
func (r *Repository) CountCommits(ctx context.Context, ref string) (int, error) {
	if ref == "" {
		ref = "HEAD"
	}
	cmd, err := command.CountCommits(ref)
	if err != nil {
		return 0, err
	}
	res, err := r.run(ctx, cmd)
	if err != nil {
		return 0, fmt.Errorf("count commits %s: %w", ref, classify(err))
	}
	n, err := parse.ParseCount(res.Lines)
	if err != nil {
		return 0, fmt.Errorf("count commits %s: %w", ref, err)
	}
	return n, nil
}

// Log lists commits reachable from opts.Ref, newest first.
func (r *Repository) Log(ctx context.Context, opts LogOptions) ([]object.Commit, error) {
	cmd, err := command.Log(opts)
	if err != nil {
		return nil, err
	}
	return r.log(ctx, cmd)
}

// LogRange lists commits reachable from end and not from start. An all-zero
// start or end, as passed to hooks for created or deleted refs, is dropped
// and the other side is logged on its own.
func (r *Repository) LogRange(ctx context.Context, start, end string, opts LogOptions) ([]object.Commit, error) {
	switch {
	case parse.IsZeroRef(start) && parse.IsZeroRef(end):
		opts.Ref = ""
		return r.Log(ctx, opts)
	case parse.IsZeroRef(start):
		opts.Ref = end
		return r.Log(ctx, opts)
	case parse.IsZeroRef(end):
		opts.Ref = start
		return r.Log(ctx, opts)
	}
	cmd, err := command.LogRange(start, end, opts)
	if err != nil {
		return nil, err
	}
	return r.log(ctx, cmd)
}

func (r *Repository) log(ctx context.Context, cmd command.Command) ([]object.Commit, error) {
	res, err := r.run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", classify(err))
	}
	commits, err := parse.ParseLog(res.Lines)
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	return commits, nil
}
