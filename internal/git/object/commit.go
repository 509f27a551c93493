// Package object holds the typed repository entities reconstructed from git
// output. Values are plain data: they are populated once by the parsers and
// are not mutated afterwards.
package object

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// Author identifies the author or committer of a commit.
type Author struct {
	Name  string
	Email string
	When  time.Time
}

type Commit struct {
	Sha       plumbing.Hash
	Tree      plumbing.Hash
	Parents   []plumbing.Hash
	Author    Author
	Committer Author
	// Message holds the message lines with the 4-space indent removed.
	Message []string
}

// IsRoot reports whether the commit has no parents. Root commits cannot be
// diffed against "<sha>^".
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

func (c Commit) ShortMessage() string {
	if len(c.Message) == 0 {
		return ""
	}
	return c.Message[0]
}

func (c Commit) FullMessage() string {
	return strings.Join(c.Message, "\n")
}

func (c Commit) String() string {
	return c.Sha.String()
}
