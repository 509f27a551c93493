package object

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

type RefKind uint8

const (
	RefKindBranch RefKind = iota
	RefKindRemoteBranch
	RefKindTag
)

func (k RefKind) String() string {
	switch k {
	case RefKindBranch:
		return "branch"
	case RefKindRemoteBranch:
		return "remote-branch"
	case RefKindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Ref is one entry of a show-ref listing. For annotated tags Hash is the
// peeled commit, not the tag object.
type Ref struct {
	Hash plumbing.Hash
	Kind RefKind
	Name string // short name: main, origin/main, v1
}

// Branch is one line of a branch listing.
type Branch struct {
	Name    string
	FullRef plumbing.ReferenceName
	Current bool
	// Detached is set for the "(HEAD detached at ...)" pseudo-branch.
	Detached bool
	Remote   bool
	Sha      plumbing.Hash
	// Comment is the subject of the head commit as printed by the listing.
	Comment string
}

func (b Branch) String() string {
	return b.Sha.String()
}

// NewBranch builds a Branch for a listing name, deriving the full reference
// path. Names under "remotes/" map to refs/remotes.
func NewBranch(name string, sha plumbing.Hash, comment string) Branch {
	b := Branch{Name: name, Sha: sha, Comment: comment}
	switch {
	case strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"):
		b.Detached = true
		b.FullRef = plumbing.HEAD
	case strings.HasPrefix(name, "remotes/"):
		b.Remote = true
		b.FullRef = plumbing.ReferenceName("refs/" + name)
	default:
		b.FullRef = plumbing.NewBranchReferenceName(name)
	}
	return b
}

type Tag struct {
	Name    string
	FullRef plumbing.ReferenceName
	// Sha is the commit the tag points to; zero until resolved.
	Sha plumbing.Hash
}

func NewTag(name string) Tag {
	return Tag{Name: name, FullRef: plumbing.NewTagReferenceName(name)}
}

// WithSha returns a copy of the tag resolved to sha.
func (t Tag) WithSha(sha plumbing.Hash) Tag {
	t.Sha = sha
	return t
}

func (t Tag) Resolved() bool {
	return !t.Sha.IsZero()
}

func (t Tag) String() string {
	if !t.Resolved() {
		return t.FullRef.String()
	}
	return t.Sha.String()
}
