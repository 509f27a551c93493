package parse

import (
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

// branchPattern matches "branch -v --no-abbrev" lines: a marker column
// ("*" for HEAD, "+" for other worktrees), the name or a parenthesized
// detached HEAD description, the full sha and the subject.
var branchPattern = regexp.MustCompile(`^([*+ ]) (\([^)]*\)|\S+)\s+([0-9a-f]{40})(?:\s+(.*))?$`)

// aliasPattern matches symbolic remote heads such as
// "remotes/origin/HEAD -> origin/master".
var aliasPattern = regexp.MustCompile(`^[*+ ] \S+ -> \S+$`)

// ParseBranchLine parses one branch listing line.
func ParseBranchLine(line string) (object.Branch, error) {
	return parseBranchLine(line, 1)
}

func parseBranchLine(line string, lineNo int) (object.Branch, error) {
	m := branchPattern.FindStringSubmatch(line)
	if m == nil {
		return object.Branch{}, formatErr("branch", lineNo, line, "expected \"[*] <name> <sha> <comment>\"")
	}
	b := object.NewBranch(m[2], plumbing.NewHash(m[3]), m[4])
	b.Current = m[1] == "*"
	return b, nil
}

// ParseBranches parses a branch listing, skipping blank and alias lines.
func ParseBranches(lines []string) ([]object.Branch, error) {
	branches := make([]object.Branch, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || aliasPattern.MatchString(line) {
			continue
		}
		b, err := parseBranchLine(line, i+1)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, nil
}
