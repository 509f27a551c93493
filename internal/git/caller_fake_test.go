package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/process"
)

type fakeResponse struct {
	out    string
	exit   int
	stderr string
	// before runs when the call is matched, ahead of the context check.
	before func()
}

// fakeCaller answers git invocations from a table keyed by the argv joined
// with spaces and records every call.
type fakeCaller struct {
	responses map[string]fakeResponse

	calls    [][]string
	lastDir  string
	lastUseG bool
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{responses: map[string]fakeResponse{}}
}

func (f *fakeCaller) on(cmd command.Command, resp fakeResponse) *fakeCaller {
	f.responses[strings.Join(cmd.Args(), " ")] = resp
	return f
}

func (f *fakeCaller) Execute(ctx context.Context, req process.Request) (*process.Result, error) {
	f.calls = append(f.calls, req.Args)
	f.lastDir = req.Dir
	f.lastUseG = req.UseGit
	key := strings.Join(req.Args, " ")
	resp, ok := f.responses[key]
	if !ok {
		return nil, fmt.Errorf("unexpected git call: %q", key)
	}
	if resp.before != nil {
		resp.before()
	}
	if err := ctx.Err(); err != nil {
		return nil, &process.Error{Command: "git " + key, ExitCode: -1, Err: err}
	}
	accepted := req.AcceptedExitCodes
	if len(accepted) == 0 {
		accepted = []int{0}
	}
	if !slices.Contains(accepted, resp.exit) {
		return nil, &process.Error{
			Command:  "git " + key,
			ExitCode: resp.exit,
			Stderr:   resp.stderr,
			Stdout:   resp.out,
		}
	}
	return &process.Result{Lines: process.SplitLines(resp.out), Output: resp.out, ExitCode: resp.exit}, nil
}

// subcommands lists the git subcommand of every recorded call.
func (f *fakeCaller) subcommands() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = strings.Join(c[:min(len(c), 2)], " ")
	}
	return out
}

// mustCmd unwraps a command constructor result in test tables.
func mustCmd(c command.Command, err error) command.Command {
	if err != nil {
		panic(err)
	}
	return c
}

func newTestRepo(f *fakeCaller, opts ...Option) *Repository {
	return NewWithCaller("/repo", f, opts...)
}

const (
	shaA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	shaB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	shaC = "cccccccccccccccccccccccccccccccccccccccc"
	shaT = "dddddddddddddddddddddddddddddddddddddddd"
)

func rawCommit(sha, msg string, parents ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\ntree %s\n", sha, shaT)
	for _, p := range parents {
		fmt.Fprintf(&b, "parent %s\n", p)
	}
	b.WriteString("author Jane Doe <jane@example.com> 1700000000 +0000\n")
	b.WriteString("committer Jane Doe <jane@example.com> 1700000000 +0000\n\n")
	fmt.Fprintf(&b, "    %s\n", msg)
	return b.String()
}
