package command

import (
	"fmt"
	"strconv"
)

// rawFormat are the flags every commit producing command carries so the
// commit parser always sees "commit/tree/parent/author/committer" headers and
// a 4-space indented message.
var rawFormat = []string{"--no-color", "--no-decorate", "--pretty=raw"}

// Show prints a single commit in raw format without its patch.
func Show(ref string) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return New("show").Arg("-s").Arg(rawFormat...).Subject(ref).Build(), nil
}

type LogOptions struct {
	// Ref defaults to HEAD.
	Ref string
	// Path restricts the log to commits touching it.
	Path string
	// Limit is the maximum number of commits; 0 means unlimited.
	Limit int
	// Offset skips that many commits first.
	Offset      int
	FirstParent bool
}

func Log(opts LogOptions) (Command, error) {
	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return logCommand(ref, opts)
}

// LogRange lists the commits reachable from end but not from start.
func LogRange(start, end string, opts LogOptions) (Command, error) {
	start, err := requireRef(start)
	if err != nil {
		return Command{}, err
	}
	end, err = requireRef(end)
	if err != nil {
		return Command{}, err
	}
	return logCommand(start+".."+end, opts)
}

func logCommand(subject string, opts LogOptions) (Command, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return Command{}, fmt.Errorf("%w: negative limit or offset", ErrInvalidInput)
	}
	p, err := CleanPath(opts.Path)
	if err != nil {
		return Command{}, err
	}
	b := New("log").Arg(rawFormat...).
		ArgIf(opts.FirstParent, "--first-parent").
		ArgIf(opts.Limit > 0, "--max-count="+strconv.Itoa(opts.Limit)).
		ArgIf(opts.Offset > 0, "--skip="+strconv.Itoa(opts.Offset)).
		Subject(subject).
		Path(p)
	return b.Build(), nil
}

// RevListOne resolves ref to the commit it points at, peeling annotated tags.
func RevListOne(ref string) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return New("rev-list").Arg("-n", "1").Subject(ref).Build(), nil
}

// RevParse verifies ref and prints the object name it resolves to.
func RevParse(ref string) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return New("rev-parse").Arg("--verify", "--quiet").Subject(ref).Build(), nil
}

// CountCommits counts the commits reachable from ref, ref included.
func CountCommits(ref string) (Command, error) {
	ref, err := requireRef(ref)
	if err != nil {
		return Command{}, err
	}
	return New("rev-list").Arg("--count").Subject(ref).Build(), nil
}
