package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/parse"
	"github.com/thiagokokada/gitrepo/internal/git/process"
)

var (
	// ErrInvalidInput is returned before running anything when an argument
	// is rejected, e.g. an empty commit message or a path escaping the
	// repository.
	ErrInvalidInput = command.ErrInvalidInput
	// ErrNotFound is returned by operations that require a reference, tree
	// path or branch that does not exist. Lookups report absence with a
	// boolean instead.
	ErrNotFound       = errors.New("not found")
	ErrNotARepository = errors.New("not a git repository")
)

// ProcessError is a git invocation that failed or exited with an
// unexpected code.
type ProcessError = process.Error

// FormatError is git output that did not have the expected shape.
type FormatError = parse.FormatError

// missingObjectHints are stderr fragments git prints when a revision or path
// does not resolve.
var missingObjectHints = []string{
	"unknown revision",
	"bad revision",
	"bad object",
	"ambiguous argument",
	"not a valid object name",
	"invalid object name",
	"does not have any commits yet",
	"not a tree object",
	"did not match any",
	"not a valid ref",
	"not found",
}

// classify marks process failures caused by missing objects with ErrNotFound.
func classify(err error) error {
	var perr *process.Error
	if !errors.As(err, &perr) || perr.ExitCode <= 0 {
		return err
	}
	stderr := strings.ToLower(perr.Stderr)
	for _, hint := range missingObjectHints {
		if strings.Contains(stderr, hint) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return err
}
