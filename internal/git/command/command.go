// Package command builds git invocations. Every specialized constructor
// forces the output format its parser expects, so user configuration such as
// color.ui or log.decorate cannot change the text shape.
package command

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrInvalidInput is returned for arguments rejected before anything runs.
var ErrInvalidInput = errors.New("invalid input")

// Command is an immutable git invocation without the binary name.
type Command struct {
	name     string
	args     []string
	subjects []string
	paths    []string
}

func (c Command) Name() string {
	return c.name
}

// Args returns the argv following the git binary: the subcommand, its flags,
// the subjects and, after "--", the paths.
func (c Command) Args() []string {
	out := make([]string, 0, 2+len(c.args)+len(c.subjects)+len(c.paths))
	if c.name != "" {
		out = append(out, c.name)
	}
	out = append(out, c.args...)
	out = append(out, c.subjects...)
	if len(c.paths) > 0 {
		out = append(out, "--")
		out = append(out, c.paths...)
	}
	return out
}

// String renders the command line with every argument quoted on its own.
func (c Command) String() string {
	return "git " + shellquote.Join(c.Args()...)
}

// Builder accumulates one command. The zero value is ready to use.
type Builder struct {
	cmd Command
}

func New(name string) *Builder {
	return new(Builder).Name(name)
}

func (b *Builder) Reset() *Builder {
	b.cmd = Command{}
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.Reset()
	b.cmd.name = name
	return b
}

// Arg appends flags or flag values in order.
func (b *Builder) Arg(args ...string) *Builder {
	b.cmd.args = append(b.cmd.args, args...)
	return b
}

// ArgIf appends args only when cond holds.
func (b *Builder) ArgIf(cond bool, args ...string) *Builder {
	if cond {
		b.Arg(args...)
	}
	return b
}

// Subject appends operands that are not flags, typically references.
// Empty subjects are skipped.
func (b *Builder) Subject(subjects ...string) *Builder {
	for _, s := range subjects {
		if s == "" {
			continue
		}
		b.cmd.subjects = append(b.cmd.subjects, s)
	}
	return b
}

// Path appends pathspecs, emitted after "--". Empty paths are skipped.
func (b *Builder) Path(paths ...string) *Builder {
	for _, p := range paths {
		if p == "" {
			continue
		}
		b.cmd.paths = append(b.cmd.paths, p)
	}
	return b
}

func (b *Builder) Build() Command {
	c := b.cmd
	c.args = append([]string(nil), c.args...)
	c.subjects = append([]string(nil), c.subjects...)
	c.paths = append([]string(nil), c.paths...)
	return c
}

// CleanPath normalizes a repository relative path. It rejects absolute paths
// and ".." segments; the repository root is returned as "".
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || p == "." || p == "/" {
		return "", nil
	}
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidInput, p)
	}
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: path %q escapes the repository", ErrInvalidInput, p)
		}
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", nil
	}
	return cleaned, nil
}

// requirePath is CleanPath for operations that cannot act on the root.
func requirePath(p string) (string, error) {
	cleaned, err := CleanPath(p)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", fmt.Errorf("%w: path required", ErrInvalidInput)
	}
	return cleaned, nil
}

// operand protects a path used as a subject (not after "--") from being read
// as a flag.
func operand(p string) string {
	if strings.HasPrefix(p, "-") {
		return "./" + p
	}
	return p
}

func requireRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: reference required", ErrInvalidInput)
	}
	if strings.HasPrefix(ref, "-") {
		return "", fmt.Errorf("%w: reference %q looks like a flag", ErrInvalidInput, ref)
	}
	return ref, nil
}
