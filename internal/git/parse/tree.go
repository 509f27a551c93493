package parse

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

// treePattern matches "ls-tree -l" lines: "<mode> <type> <sha> <size>\t<path>".
// The size column is right aligned with spaces and is "-" for trees and
// submodules.
var treePattern = regexp.MustCompile(`^([0-7]{6}) (blob|tree|commit) ([0-9a-f]{40})[ \t]+(-|\d+)\t(.+)$`)

// ParseTreeEntry parses one ls-tree line. The entry path is split into
// Parent and Name.
func ParseTreeEntry(line string) (object.TreeEntry, error) {
	return parseTreeEntry(line, 1)
}

func parseTreeEntry(line string, lineNo int) (object.TreeEntry, error) {
	m := treePattern.FindStringSubmatch(line)
	if m == nil {
		return object.TreeEntry{}, formatErr("tree", lineNo, line, "expected \"<mode> <type> <sha> <size>\\t<path>\"")
	}
	mode, err := filemode.New(m[1])
	if err != nil {
		return object.TreeEntry{}, formatErr("tree", lineNo, line, "invalid mode")
	}
	full, ok := unquotePath(m[5])
	if !ok {
		return object.TreeEntry{}, formatErr("tree", lineNo, line, "invalid quoted path")
	}
	size := object.SizeUnknown
	if m[4] != "-" {
		if size, err = strconv.ParseInt(m[4], 10, 64); err != nil {
			return object.TreeEntry{}, formatErr("tree", lineNo, line, "invalid size")
		}
	}
	entry := object.TreeEntry{
		Mode: mode,
		Type: entryType(m[2], mode),
		Sha:  plumbing.NewHash(m[3]),
		Size: size,
		Name: path.Base(full),
	}
	if dir := path.Dir(full); dir != "." {
		entry.Parent = dir
	}
	return entry, nil
}

func entryType(kind string, mode filemode.FileMode) object.EntryType {
	switch kind {
	case "tree":
		return object.EntryTree
	case "commit":
		return object.EntrySubmodule
	}
	if mode == filemode.Symlink {
		return object.EntryLink
	}
	return object.EntryBlob
}

// ParseTree builds the tree at treePath from an ls-tree listing. Only direct
// children of treePath are kept, once each, trees first. A listing without
// children is read as the single blob at treePath.
func ParseTree(lines []string, ref, treePath string) (object.Tree, error) {
	treePath = strings.Trim(treePath, "/")
	tree := object.Tree{Ref: ref, Path: treePath, Entries: []object.TreeEntry{}}
	seen := map[string]bool{}
	var exact *object.TreeEntry
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseTreeEntry(line, i+1)
		if err != nil {
			return object.Tree{}, err
		}
		if entry.FullPath() == treePath {
			exact = &entry
			continue
		}
		if entry.Parent != treePath || seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true
		tree.Entries = append(tree.Entries, entry)
	}
	if len(tree.Entries) == 0 && exact != nil && !exact.IsTree() {
		tree.Blob = exact
		tree.Sha = exact.Sha
		return tree, nil
	}
	if exact != nil && exact.IsTree() {
		tree.Sha = exact.Sha
	}
	object.SortEntries(tree.Entries)
	return tree, nil
}
