package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	dir := t.TempDir()
	gitCmd := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	gitCmd("init", "-q", "--initial-branch=master")
	gitCmd("config", "user.name", "Jane Doe")
	gitCmd("config", "user.email", "jane@example.com")
	gitCmd("config", "commit.gpgsign", "false")
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gitCmd("add", "main.go")
	gitCmd("commit", "-q", "-m", "initial import")
	gitCmd("tag", "v0.1.0")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("--help error = %v", err)
	}
	for _, sub := range []string{"log", "show", "tree", "diff", "status", "branches", "tags", "watch", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q", sub)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "gitrepo ") || !strings.Contains(out, "git:") {
		t.Fatalf("version output = %q", out)
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	if _, err := execute(t, "-C", t.TempDir(), "--output", "json", "status"); err == nil {
		t.Fatal("expected error for unknown output format")
	}
}

func TestOutputFlagOverridesInvalidEnv(t *testing.T) {
	dir := gitRepo(t)
	t.Setenv("GITREPO_OUTPUT", "bogus")

	if _, err := execute(t, "-C", dir, "tags"); err == nil {
		t.Fatal("expected error for invalid GITREPO_OUTPUT")
	}
	out, err := execute(t, "-C", dir, "--output", "yaml", "tags")
	if err != nil {
		t.Fatalf("tags error = %v", err)
	}
	if !strings.Contains(out, "v0.1.0") {
		t.Fatalf("tags output = %q", out)
	}
}

func TestLogShowAndTags(t *testing.T) {
	dir := gitRepo(t)

	out, err := execute(t, "-C", dir, "log")
	if err != nil {
		t.Fatalf("log error = %v", err)
	}
	if !strings.Contains(out, "initial import") {
		t.Fatalf("log output = %q", out)
	}

	out, err = execute(t, "-C", dir, "show", "-p")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "Author: Jane Doe <jane@example.com>") || !strings.Contains(out, "+package main") {
		t.Fatalf("show output = %q", out)
	}

	out, err = execute(t, "-C", dir, "tags")
	if err != nil {
		t.Fatalf("tags error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "v0.1.0") {
		t.Fatalf("tags output = %q", out)
	}
}

func TestYAMLOutput(t *testing.T) {
	dir := gitRepo(t)

	out, err := execute(t, "-C", dir, "-o", "yaml", "branches")
	if err != nil {
		t.Fatalf("branches error = %v", err)
	}
	var branches []struct {
		Name    string `yaml:"name"`
		Current bool   `yaml:"current"`
	}
	if err := yaml.Unmarshal([]byte(out), &branches); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, out)
	}
	if len(branches) != 1 || branches[0].Name != "master" || !branches[0].Current {
		t.Fatalf("branches = %+v", branches)
	}
}

func TestStatusAndWorktreeDiff(t *testing.T) {
	dir := gitRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "-C", dir, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if out != " M main.go\n" {
		t.Fatalf("status output = %q", out)
	}

	out, err = execute(t, "-C", dir, "diff", "--worktree")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if !strings.Contains(out, "+func main() {}") {
		t.Fatalf("diff output = %q", out)
	}
}

func TestTreeNotFound(t *testing.T) {
	dir := gitRepo(t)
	if _, err := execute(t, "-C", dir, "tree", "HEAD", "missing.go"); err == nil {
		t.Fatal("expected error for a missing path")
	}
}
