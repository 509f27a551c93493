package process

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// MinGitVersion is the oldest git the command constructors are written for
// ("init --initial-branch" appeared in 2.28).
var MinGitVersion = semver.MustParse("2.28.0")

// ParseGitVersion extracts the version from "git --version" output. Vendor
// suffixes such as "(Apple Git-146)" or ".windows.1" are dropped.
func ParseGitVersion(out string) (*semver.Version, error) {
	s := strings.TrimSpace(out)
	if idx := strings.Index(s, "git version"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("git version"):])
	}
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return nil, fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	s = s[start:]
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	parts := strings.Split(strings.Trim(s[:end], "."), ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, fmt.Errorf("unable to parse git version output: %q: %w", strings.TrimSpace(out), err)
	}
	return v, nil
}

// CheckGitVersion rejects versions older than MinGitVersion.
func CheckGitVersion(v *semver.Version) error {
	if v.LessThan(MinGitVersion) {
		return fmt.Errorf("git %s is too old; gitrepo requires git >= %s", v, MinGitVersion)
	}
	return nil
}

// GitVersion asks the caller's git for its version.
func GitVersion(ctx context.Context, caller Caller) (*semver.Version, string, error) {
	res, err := caller.Execute(ctx, Request{Args: []string{"version"}, UseGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("git version: %w", err)
	}
	out := strings.TrimSpace(res.Output)
	v, err := ParseGitVersion(out)
	if err != nil {
		return nil, out, err
	}
	return v, out, nil
}

type versionResult struct{ err error }

var versionChecks sync.Map // binary name -> versionResult

// EnsureGitVersion checks the binary's version and remembers the verdict.
// Failures to run git at all are returned without being cached.
func EnsureGitVersion(ctx context.Context, binary string, caller Caller) error {
	if cached, ok := versionChecks.Load(binary); ok {
		return cached.(versionResult).err
	}
	v, _, err := GitVersion(ctx, caller)
	if err != nil {
		return err
	}
	err = CheckGitVersion(v)
	versionChecks.Store(binary, versionResult{err: err})
	return err
}
