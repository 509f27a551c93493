// Package process runs external commands on behalf of the repository facade.
package process

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Caller executes one process and collects its output. Exec is the real
// implementation; tests substitute fakes.
type Caller interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}

type Request struct {
	// Args is the argv. With UseGit it is the git argv without the binary.
	Args []string
	// UseGit prefixes the git binary and the global flags that pin the
	// output format.
	UseGit bool
	// Dir is the working directory; empty means the current one.
	Dir string
	// AcceptedExitCodes defaults to {0}.
	AcceptedExitCodes []int
}

func (r Request) accepts(code int) bool {
	if len(r.AcceptedExitCodes) == 0 {
		return code == 0
	}
	return slices.Contains(r.AcceptedExitCodes, code)
}

type Result struct {
	// Lines is Output split on newlines, each right-trimmed, without the
	// empty line produced by a trailing newline.
	Lines    []string
	Output   string
	ExitCode int
}

// Error reports a process that could not be started, timed out or exited
// with a code outside the accepted set. ExitCode is -1 when the process did
// not exit on its own.
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
	Stdout   string
	Err      error
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	switch {
	case e.ExitCode < 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	case msg != "":
		return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, msg)
	default:
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SplitLines splits process output the way Result.Lines is built.
func SplitLines(out string) []string {
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
