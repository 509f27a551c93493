package command

import (
	"fmt"
	"strings"
)

// Init creates a repository in the working directory of the caller.
func Init(initialBranch string) (Command, error) {
	b := New("init").Arg("-q")
	if initialBranch != "" {
		name, err := requireName("branch", initialBranch)
		if err != nil {
			return Command{}, err
		}
		b.Arg("--initial-branch=" + name)
	}
	return b.Build(), nil
}

func Toplevel() Command {
	return New("rev-parse").Arg("--show-toplevel").Build()
}

func Version() Command {
	return New("version").Build()
}

// Status prints porcelain v1 entries. Untracked directories are expanded to
// the files inside them.
func Status(ignored bool) Command {
	return New("status").
		Arg("--porcelain", "--untracked-files=all").
		ArgIf(ignored, "--ignored").
		Build()
}

// LsTree lists the entries of ref under path with their sizes. With
// recursive set, subtrees are both listed and descended into.
func LsTree(ref, path string, recursive bool) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	p, err := CleanPath(path)
	if err != nil {
		return Command{}, err
	}
	return New("ls-tree").
		Arg("-l").
		ArgIf(recursive, "-r", "-t").
		Subject(ref).
		Path(p).
		Build(), nil
}

// Add stages every change under path, deletions included. An empty path
// stages the whole working tree.
func Add(path string) (Command, error) {
	p, err := CleanPath(path)
	if err != nil {
		return Command{}, err
	}
	if p == "" {
		p = "."
	}
	return New("add").Arg("--all").Path(p).Build(), nil
}

type CommitOptions struct {
	AllowEmpty bool
}

func Commit(message string, opts CommitOptions) (Command, error) {
	if strings.TrimSpace(message) == "" {
		return Command{}, fmt.Errorf("%w: empty commit message", ErrInvalidInput)
	}
	return New("commit").
		Arg("-q").
		ArgIf(opts.AllowEmpty, "--allow-empty").
		Arg("-m", message).
		Build(), nil
}

func Checkout(ref string) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return New("checkout").Arg("-q").Subject(ref).Build(), nil
}

// Move renames a tracked file or directory.
func Move(from, to string) (Command, error) {
	from, err := requirePath(from)
	if err != nil {
		return Command{}, err
	}
	to, err = requirePath(to)
	if err != nil {
		return Command{}, err
	}
	return New("mv").Subject(operand(from), operand(to)).Build(), nil
}

type RemoveOptions struct {
	Recursive bool
	// Cached keeps the file in the working tree.
	Cached bool
}

func Remove(path string, opts RemoveOptions) (Command, error) {
	p, err := requirePath(path)
	if err != nil {
		return Command{}, err
	}
	return New("rm").
		Arg("-q").
		ArgIf(opts.Recursive, "-r").
		ArgIf(opts.Cached, "--cached").
		Path(p).
		Build(), nil
}
