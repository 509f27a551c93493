package parse

import (
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ParseHash reads the single object name printed by rev-parse or rev-list.
func ParseHash(lines []string) (plumbing.Hash, error) {
	if len(lines) != 1 {
		return plumbing.ZeroHash, formatErr("hash", 0, strings.Join(lines, "\n"), "expected exactly one line")
	}
	text := strings.TrimSpace(lines[0])
	sha, ok := parseSha(text)
	if !ok {
		return plumbing.ZeroHash, formatErr("hash", 1, lines[0], "not a 40 character object name")
	}
	return sha, nil
}

// ParseCount reads the single number printed by "rev-list --count".
func ParseCount(lines []string) (int, error) {
	if len(lines) != 1 {
		return 0, formatErr("count", 0, strings.Join(lines, "\n"), "expected exactly one line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || n < 0 {
		return 0, formatErr("count", 1, lines[0], "not a count")
	}
	return n, nil
}

// IsZeroRef reports whether ref is the all-zero object name hooks pass for a
// missing side of an update.
func IsZeroRef(ref string) bool {
	return strings.TrimSpace(ref) == plumbing.ZeroHash.String()
}
