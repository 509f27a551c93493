package object

import (
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

type EntryType string

const (
	EntryTree      EntryType = "tree"
	EntryBlob      EntryType = "blob"
	EntryLink      EntryType = "link"
	EntrySubmodule EntryType = "submodule"
)

// SizeUnknown is the size recorded for entries ls-tree prints "-" for.
const SizeUnknown int64 = -1

type TreeEntry struct {
	Mode filemode.FileMode
	Type EntryType
	Sha  plumbing.Hash
	Size int64
	Name string
	// Parent is the slash separated directory holding the entry, "" at the root.
	Parent string
}

func (e TreeEntry) FullPath() string {
	if e.Parent == "" {
		return e.Name
	}
	return path.Join(e.Parent, e.Name)
}

func (e TreeEntry) IsTree() bool { return e.Type == EntryTree }
func (e TreeEntry) IsBlob() bool { return e.Type == EntryBlob }
func (e TreeEntry) IsLink() bool { return e.Type == EntryLink }

func (e TreeEntry) String() string {
	return e.Sha.String()
}

// Tree is the content of a path at a reference. When the path names a file,
// Blob is set and Entries is empty.
type Tree struct {
	Ref     string
	Path    string
	Sha     plumbing.Hash
	Entries []TreeEntry
	Blob    *TreeEntry
}

func (t Tree) IsBlob() bool {
	return t.Blob != nil
}

func (t Tree) IsRoot() bool {
	return t.Path == ""
}

// Entry returns the direct child with the given name.
func (t Tree) Entry(name string) (TreeEntry, bool) {
	i := slices.IndexFunc(t.Entries, func(e TreeEntry) bool { return e.Name == name })
	if i < 0 {
		return TreeEntry{}, false
	}
	return t.Entries[i], true
}

func (t Tree) String() string {
	return t.Sha.String()
}

// SortEntries orders entries with trees first, then everything else, each
// group by name.
func SortEntries(entries []TreeEntry) {
	slices.SortStableFunc(entries, CompareEntries)
}

func CompareEntries(a, b TreeEntry) int {
	if a.IsTree() != b.IsTree() {
		if a.IsTree() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}
