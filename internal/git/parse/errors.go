// Package parse turns git output lines into object values. Parsers are pure
// functions over the lines produced by process.Caller; none of them run git.
package parse

import (
	"fmt"
	"regexp"

	"github.com/go-git/go-git/v5/plumbing"
)

// FormatError reports a line that does not have the shape its parser
// expects. It carries the offending text.
type FormatError struct {
	// Kind names the output being parsed, e.g. "branch" or "hunk".
	Kind string
	// Line is 1-based within the parsed lines, 0 when not line specific.
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %s: %q", e.Kind, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("parse %s: %s: %q", e.Kind, e.Reason, e.Text)
}

func formatErr(kind string, line int, text, reason string) *FormatError {
	return &FormatError{Kind: kind, Line: line, Text: text, Reason: reason}
}

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func parseSha(s string) (plumbing.Hash, bool) {
	if !shaPattern.MatchString(s) {
		return plumbing.ZeroHash, false
	}
	return plumbing.NewHash(s), true
}

// cursor walks a line slice. Parsers never index lines directly so line
// numbers in errors stay consistent.
type cursor struct {
	lines []string
	pos   int
	// offset is added to reported line numbers when parsing a sub-slice.
	offset int
}

func newCursor(lines []string, offset int) *cursor {
	return &cursor{lines: lines, offset: offset}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.lines)
}

func (c *cursor) peek() string {
	return c.lines[c.pos]
}

func (c *cursor) next() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

// lineNo is the 1-based number of the line last returned by next.
func (c *cursor) lineNo() int {
	return c.offset + c.pos
}
