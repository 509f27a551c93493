// Package git exposes a repository as typed values by running the git
// executable and parsing its output.
//
// Every method builds one or more commands with package command, runs them
// through a process.Caller and parses the output with package parse before
// returning. Nothing is cached between calls.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/process"
)

// DefaultPrimaryBranches sort ahead of every other branch.
var DefaultPrimaryBranches = []string{"master", "main"}

// Repository is a working directory driven through git. It is not safe for
// concurrent mutation; callers serialize writes.
type Repository struct {
	path            string
	caller          process.Caller
	primaryBranches []string
}

type options struct {
	caller          process.Caller
	primaryBranches []string
	timeout         time.Duration
	binary          string
}

type Option func(*options)

// WithCaller replaces the process caller. The git version check is skipped.
func WithCaller(c process.Caller) Option {
	return func(o *options) { o.caller = c }
}

func WithPrimaryBranches(names ...string) Option {
	return func(o *options) { o.primaryBranches = append([]string(nil), names...) }
}

// WithTimeout bounds every git invocation. Ignored with WithCaller.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithGitBinary runs the given executable instead of "git". Ignored with
// WithCaller.
func WithGitBinary(path string) Option {
	return func(o *options) { o.binary = path }
}

func newOptions(opts []Option) options {
	o := options{primaryBranches: DefaultPrimaryBranches}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolveCaller returns the configured caller, or an Exec after checking the git
// version.
func (o options) resolveCaller(ctx context.Context) (process.Caller, error) {
	if o.caller != nil {
		return o.caller, nil
	}
	exec := &process.Exec{Binary: o.binary, Timeout: o.timeout}
	binary := o.binary
	if binary == "" {
		binary = process.DefaultBinary
	}
	if err := process.EnsureGitVersion(ctx, binary, exec); err != nil {
		return nil, err
	}
	return exec, nil
}

// Open resolves the top level of the working tree containing path.
func Open(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	o := newOptions(opts)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	caller, err := o.resolveCaller(ctx)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	res, err := caller.Execute(ctx, process.Request{
		Args:   command.Toplevel().Args(),
		UseGit: true,
		Dir:    abs,
	})
	if err != nil {
		var perr *process.Error
		if errors.As(err, &perr) && perr.ExitCode > 0 {
			return nil, fmt.Errorf("open repository %s: %w: %s", abs, ErrNotARepository, strings.TrimSpace(perr.Stderr))
		}
		return nil, fmt.Errorf("open repository %s: %w", abs, err)
	}
	root := strings.TrimSpace(res.Output)
	if root == "" {
		return nil, fmt.Errorf("open repository %s: %w: git rev-parse returned empty root", abs, ErrNotARepository)
	}
	return &Repository{path: root, caller: caller, primaryBranches: o.primaryBranches}, nil
}

type InitOptions struct {
	// InitialBranch names the unborn branch; git's default applies when empty.
	InitialBranch string
}

// Init creates path when needed, runs "git init" in it and opens the result.
func Init(ctx context.Context, path string, init InitOptions, opts ...Option) (*Repository, error) {
	cmd, err := command.Init(init.InitialBranch)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}
	o := newOptions(opts)
	caller, err := o.resolveCaller(ctx)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}
	if _, err := caller.Execute(ctx, process.Request{Args: cmd.Args(), UseGit: true, Dir: abs}); err != nil {
		return nil, fmt.Errorf("init repository %s: %w", abs, err)
	}
	return Open(ctx, abs, append(opts, WithCaller(caller))...)
}

// NewWithCaller wraps an already resolved top level directory without
// running anything.
func NewWithCaller(path string, caller process.Caller, opts ...Option) *Repository {
	o := newOptions(opts)
	return &Repository{path: path, caller: caller, primaryBranches: o.primaryBranches}
}

// Path is the top level of the working tree.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) run(ctx context.Context, cmd command.Command, accepted ...int) (*process.Result, error) {
	return r.caller.Execute(ctx, process.Request{
		Args:              cmd.Args(),
		UseGit:            true,
		Dir:               r.path,
		AcceptedExitCodes: accepted,
	})
}
