package process

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
)

const (
	DefaultBinary  = "git"
	DefaultTimeout = 30 * time.Second
)

// globalFlags precede every git subcommand. Paths stay unescaped and colors
// off whatever the user configuration says.
var globalFlags = []string{
	"--no-pager",
	"-c", "core.quotepath=false",
	"-c", "color.ui=false",
}

var gitEnv = []string{
	"LC_ALL=C",
	"LANG=C",
	"GIT_TERMINAL_PROMPT=0",
	"GIT_PAGER=cat",
}

// Exec runs processes with os/exec. The zero value runs "git" with the
// default timeout.
type Exec struct {
	Binary  string
	Timeout time.Duration
	// Env is appended after the inherited environment and the fixed git
	// variables.
	Env []string
}

func (e *Exec) binary() string {
	if e == nil || e.Binary == "" {
		return DefaultBinary
	}
	return e.Binary
}

func (e *Exec) timeout() time.Duration {
	if e == nil || e.Timeout <= 0 {
		return DefaultTimeout
	}
	return e.Timeout
}

func (e *Exec) Execute(ctx context.Context, req Request) (*Result, error) {
	if len(req.Args) == 0 && !req.UseGit {
		return nil, &Error{ExitCode: -1, Err: errors.New("empty command")}
	}
	name, args := "", []string(nil)
	if req.UseGit {
		name = e.binary()
		args = append(append(args, globalFlags...), req.Args...)
	} else {
		name, args = req.Args[0], req.Args[1:]
	}
	cmdline := shellquote.Join(append([]string{name}, args...)...)

	ctx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = req.Dir
	cmd.Env = append(append(os.Environ(), gitEnv...), e.envExtra()...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			slog.Debug("process interrupted",
				slog.String("cmd", cmdline),
				slog.String("dir", req.Dir),
				slog.Duration("elapsed", elapsed),
				slog.Any("err", ctx.Err()),
			)
			return nil, &Error{
				Command:  cmdline,
				ExitCode: -1,
				Stderr:   stderr.String(),
				Stdout:   stdout.String(),
				Err:      ctx.Err(),
			}
		case errors.As(err, &exitErr):
			exitCode = exitErr.ExitCode()
		default:
			return nil, &Error{Command: cmdline, ExitCode: -1, Stderr: stderr.String(), Err: err}
		}
	}

	slog.Debug("process",
		slog.String("cmd", cmdline),
		slog.String("dir", req.Dir),
		slog.Int("exit", exitCode),
		slog.Int("stdout_bytes", stdout.Len()),
		slog.Duration("elapsed", elapsed),
	)

	if !req.accepts(exitCode) {
		return nil, &Error{
			Command:  cmdline,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Stdout:   stdout.String(),
			Err:      err,
		}
	}
	out := stdout.String()
	return &Result{Lines: SplitLines(out), Output: out, ExitCode: exitCode}, nil
}

func (e *Exec) envExtra() []string {
	if e == nil {
		return nil
	}
	return e.Env
}
