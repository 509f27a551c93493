package parse

import (
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const renameSeparator = " -> "

// ParseStatusLine parses one porcelain v1 line: "XY <path>" or, for renames
// and copies, "XY <orig> -> <path>". Paths may be quoted.
func ParseStatusLine(line string) (object.StatusEntry, error) {
	return parseStatusLine(line, 1)
}

func parseStatusLine(line string, lineNo int) (object.StatusEntry, error) {
	if len(line) < 4 || line[2] != ' ' {
		return object.StatusEntry{}, formatErr("status", lineNo, line, "expected \"XY <path>\"")
	}
	entry := object.StatusEntry{
		Index:    object.StatusCode(line[0]),
		Worktree: object.StatusCode(line[1]),
	}
	if !entry.Index.Valid() || !entry.Worktree.Valid() {
		return object.StatusEntry{}, formatErr("status", lineNo, line, "unknown status code")
	}
	first, after, ok := statusPath(line[3:], renamed(entry))
	if !ok {
		return object.StatusEntry{}, formatErr("status", lineNo, line, "invalid quoted path")
	}
	entry.Path = first
	if renamed(entry) {
		second, ok := strings.CutPrefix(after, renameSeparator)
		if !ok {
			return object.StatusEntry{}, formatErr("status", lineNo, line, "rename without target path")
		}
		target, ok := unquotePath(second)
		if !ok || target == "" {
			return object.StatusEntry{}, formatErr("status", lineNo, line, "invalid quoted path")
		}
		entry.OriginalPath, entry.Path = first, target
	} else if after != "" {
		return object.StatusEntry{}, formatErr("status", lineNo, line, "trailing text after path")
	}
	return entry, nil
}

// statusPath reads the first path of a status line. An unquoted path runs to
// the rename separator when split is set, or to the end of the line.
func statusPath(s string, split bool) (string, string, bool) {
	if strings.HasPrefix(s, `"`) {
		return readQuoted(s)
	}
	if i := strings.Index(s, renameSeparator); split && i >= 0 {
		return s[:i], s[i:], true
	}
	return s, "", true
}

func renamed(e object.StatusEntry) bool {
	return e.Index == object.StatusRenamed || e.Index == object.StatusCopied ||
		e.Worktree == object.StatusRenamed || e.Worktree == object.StatusCopied
}

// ParseStatus parses porcelain v1 output, skipping blank lines.
func ParseStatus(lines []string) ([]object.StatusEntry, error) {
	entries := make([]object.StatusEntry, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseStatusLine(line, i+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
