package parse

import (
	"regexp"
	"strings"

	gitobject "github.com/go-git/go-git/v5/plumbing/object"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const messageIndent = "    "

var signaturePattern = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-]\d{4})$`)

// ParseCommit parses one commit in "--pretty=raw" format.
func ParseCommit(lines []string) (object.Commit, error) {
	return parseCommit(newCursor(lines, 0))
}

// ParseLog parses a sequence of raw commits, each starting at a
// "commit <sha>" line.
func ParseLog(lines []string) ([]object.Commit, error) {
	commits := []object.Commit{}
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "commit ") {
			if start >= 0 {
				c, err := parseCommit(newCursor(lines[start:i], start))
				if err != nil {
					return nil, err
				}
				commits = append(commits, c)
			}
			start = i
			continue
		}
		if start < 0 && strings.TrimSpace(line) != "" {
			return nil, formatErr("commit", i+1, line, "expected commit header")
		}
	}
	if start >= 0 {
		c, err := parseCommit(newCursor(lines[start:], start))
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseCommit(cur *cursor) (object.Commit, error) {
	var (
		c        object.Commit
		haveSha  bool
		haveTree bool
		headers  = true
	)
	first := cur.offset + 1
	for !cur.done() {
		line := cur.next()
		if headers {
			// gpgsig and mergetag values continue on space-indented lines.
			// Their blank lines arrive trimmed, so an empty line followed
			// by another continuation line stays in the header.
			if line == "" {
				if cur.done() || !isContinuation(cur.peek()) {
					headers = false
				}
				continue
			}
			if strings.HasPrefix(line, " ") {
				continue
			}
			key, value, _ := strings.Cut(line, " ")
			switch key {
			case "commit":
				if haveSha {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "second commit header")
				}
				fields := strings.Fields(value)
				if len(fields) == 0 {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "missing commit sha")
				}
				sha, ok := parseSha(fields[0])
				if !ok {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "invalid commit sha")
				}
				c.Sha, haveSha = sha, true
			case "tree":
				sha, ok := parseSha(value)
				if !ok {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "invalid tree sha")
				}
				c.Tree, haveTree = sha, true
			case "parent":
				sha, ok := parseSha(value)
				if !ok {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "invalid parent sha")
				}
				c.Parents = append(c.Parents, sha)
			case "author", "committer":
				who, ok := parseSignature(value)
				if !ok {
					return object.Commit{}, formatErr("commit", cur.lineNo(), line, "malformed signature")
				}
				if key == "author" {
					c.Author = who
				} else {
					c.Committer = who
				}
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, messageIndent); ok {
			c.Message = append(c.Message, rest)
		} else if line == "" {
			c.Message = append(c.Message, "")
		}
	}
	if !haveSha {
		return object.Commit{}, formatErr("commit", first, firstLine(cur.lines), "missing commit header")
	}
	if !haveTree {
		return object.Commit{}, formatErr("commit", first, firstLine(cur.lines), "missing tree header")
	}
	for len(c.Message) > 0 && c.Message[len(c.Message)-1] == "" {
		c.Message = c.Message[:len(c.Message)-1]
	}
	return c, nil
}

func isContinuation(line string) bool {
	return len(line) > 1 && line[0] == ' ' && line[1] != ' '
}

func parseSignature(value string) (object.Author, bool) {
	if !signaturePattern.MatchString(value) {
		return object.Author{}, false
	}
	var sig gitobject.Signature
	sig.Decode([]byte(value))
	return object.Author{Name: sig.Name, Email: sig.Email, When: sig.When}, true
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
