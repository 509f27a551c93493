package parse

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

// ParseTagLine parses one "tag --list" line into an unresolved tag.
func ParseTagLine(line string) (object.Tag, error) {
	return parseTagLine(line, 1)
}

func parseTagLine(line string, lineNo int) (object.Tag, error) {
	name := strings.TrimSpace(line)
	if name == "" || strings.ContainsAny(name, " \t") {
		return object.Tag{}, formatErr("tag", lineNo, line, "expected a single tag name")
	}
	return object.NewTag(name), nil
}

func ParseTags(lines []string) ([]object.Tag, error) {
	tags := make([]object.Tag, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tag, err := parseTagLine(line, i+1)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ParseShowRef parses "show-ref --dereference" output. Annotated tags are
// reported with the hash of the commit they peel to.
func ParseShowRef(lines []string) ([]object.Ref, error) {
	type refEntry struct {
		hash plumbing.Hash
		ref  string
	}

	peeledByTagRef := map[string]plumbing.Hash{}
	var entries []refEntry

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, formatErr("show-ref", i+1, line, "expected \"<sha> <ref>\"")
		}
		hash, ok := parseSha(parts[0])
		if !ok {
			return nil, formatErr("show-ref", i+1, line, "invalid sha")
		}
		refName := parts[1]
		if base, peeled := strings.CutSuffix(refName, "^{}"); peeled {
			if base != "" {
				peeledByTagRef[base] = hash
			}
			continue
		}
		entries = append(entries, refEntry{hash: hash, ref: refName})
	}

	refs := make([]object.Ref, 0, len(entries))
	for _, entry := range entries {
		name := plumbing.ReferenceName(entry.ref)
		switch {
		case name.IsTag():
			hash := entry.hash
			if peeled, ok := peeledByTagRef[entry.ref]; ok {
				hash = peeled
			}
			refs = append(refs, object.Ref{Hash: hash, Kind: object.RefKindTag, Name: name.Short()})
		case name.IsBranch():
			refs = append(refs, object.Ref{Hash: entry.hash, Kind: object.RefKindBranch, Name: name.Short()})
		case name.IsRemote():
			refs = append(refs, object.Ref{Hash: entry.hash, Kind: object.RefKindRemoteBranch, Name: name.Short()})
		}
	}
	return refs, nil
}

// TagShas indexes show-ref tag entries by tag name.
func TagShas(refs []object.Ref) map[string]plumbing.Hash {
	out := make(map[string]plumbing.Hash, len(refs))
	for _, ref := range refs {
		if ref.Kind == object.RefKindTag {
			out[ref.Name] = ref.Hash
		}
	}
	return out
}
