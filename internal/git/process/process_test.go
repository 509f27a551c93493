package process

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "single_newline", in: "\n", want: []string{}},
		{name: "no_trailing_newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "rtrim", in: "a  \nb\t\r\n", want: []string{"a", "b"}},
		{name: "keeps_inner_blank", in: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "drops_only_one_trailing", in: "a\n\n", want: []string{"a", ""}},
		{name: "keeps_leading_space", in: "    message\n", want: []string{"    message"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SplitLines(tt.in); !slices.Equal(got, tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExecCollectsOutput(t *testing.T) {
	t.Parallel()
	requireShell(t)

	e := &Exec{}
	res, err := e.Execute(context.Background(), Request{Args: []string{"sh", "-c", "printf 'one  \\ntwo\\n'"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", res.ExitCode)
	}
	if want := []string{"one", "two"}; !slices.Equal(res.Lines, want) {
		t.Fatalf("Lines = %q, want %q", res.Lines, want)
	}
	if res.Output != "one  \ntwo\n" {
		t.Fatalf("Output = %q", res.Output)
	}
}

func TestExecAcceptedExitCodes(t *testing.T) {
	t.Parallel()
	requireShell(t)

	e := &Exec{}
	ctx := context.Background()

	res, err := e.Execute(ctx, Request{Args: []string{"sh", "-c", "exit 3"}, AcceptedExitCodes: []int{0, 3}})
	if err != nil {
		t.Fatalf("Execute() with accepted code error = %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", res.ExitCode)
	}

	_, err = e.Execute(ctx, Request{Args: []string{"sh", "-c", "echo boom >&2; exit 3"}})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("Execute() error = %v, want *Error", err)
	}
	if perr.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", perr.ExitCode)
	}
	if strings.TrimSpace(perr.Stderr) != "boom" {
		t.Fatalf("Stderr = %q, want boom", perr.Stderr)
	}
	if !strings.Contains(perr.Error(), "exit status 3: boom") {
		t.Fatalf("Error() = %q", perr.Error())
	}
}

func TestExecTimeout(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	e := &Exec{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := e.Execute(context.Background(), Request{Args: []string{"sleep", "5"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Execute() error = %v, want deadline exceeded", err)
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.ExitCode != -1 {
		t.Fatalf("Execute() error = %#v, want *Error with exit code -1", err)
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestExecSpawnFailure(t *testing.T) {
	t.Parallel()

	e := &Exec{}
	_, err := e.Execute(context.Background(), Request{Args: []string{"definitely-not-a-real-binary-xyz"}})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("Execute() error = %v, want *Error", err)
	}
	if perr.ExitCode != -1 {
		t.Fatalf("ExitCode = %d, want -1", perr.ExitCode)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("Execute() error = %v, want exec.ErrNotFound", err)
	}
}

func TestExecGitEnvironment(t *testing.T) {
	t.Parallel()
	requireShell(t)

	e := &Exec{Env: []string{"GITREPO_TEST=1"}}
	res, err := e.Execute(context.Background(), Request{Args: []string{"sh", "-c", "echo $LC_ALL $GIT_PAGER $GITREPO_TEST"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := []string{"C cat 1"}; !slices.Equal(res.Lines, want) {
		t.Fatalf("Lines = %q, want %q", res.Lines, want)
	}
}

func TestExecUseGit(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	v, out, err := GitVersion(context.Background(), &Exec{})
	if err != nil {
		t.Fatalf("GitVersion() error = %v", err)
	}
	if !strings.HasPrefix(out, "git version") {
		t.Fatalf("GitVersion() output = %q", out)
	}
	if v.Major() < 2 {
		t.Fatalf("GitVersion() = %s", v)
	}
}
