package render

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

type signatureDoc struct {
	Name  string    `yaml:"name"`
	Email string    `yaml:"email"`
	When  time.Time `yaml:"when"`
}

type commitDoc struct {
	Sha       string       `yaml:"sha"`
	Tree      string       `yaml:"tree"`
	Parents   []string     `yaml:"parents,omitempty"`
	Author    signatureDoc `yaml:"author"`
	Committer signatureDoc `yaml:"committer"`
	Message   string       `yaml:"message"`
}

type treeEntryDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Mode string `yaml:"mode"`
	Sha  string `yaml:"sha"`
	Size *int64 `yaml:"size,omitempty"`
}

type treeDoc struct {
	Ref     string         `yaml:"ref"`
	Path    string         `yaml:"path,omitempty"`
	Sha     string         `yaml:"sha,omitempty"`
	Entries []treeEntryDoc `yaml:"entries,omitempty"`
	Blob    *treeEntryDoc  `yaml:"blob,omitempty"`
}

type branchDoc struct {
	Name    string `yaml:"name"`
	Ref     string `yaml:"ref"`
	Sha     string `yaml:"sha"`
	Current bool   `yaml:"current,omitempty"`
	Remote  bool   `yaml:"remote,omitempty"`
}

type tagDoc struct {
	Name string `yaml:"name"`
	Sha  string `yaml:"sha"`
}

type statusDoc struct {
	Code         string `yaml:"code"`
	Path         string `yaml:"path"`
	OriginalPath string `yaml:"original_path,omitempty"`
}

type hunkDoc struct {
	Header  string `yaml:"header"`
	Added   int    `yaml:"added"`
	Deleted int    `yaml:"deleted"`
}

type diffFileDoc struct {
	Path         string    `yaml:"path"`
	OriginalPath string    `yaml:"original_path,omitempty"`
	Mode         string    `yaml:"mode"`
	Binary       bool      `yaml:"binary,omitempty"`
	Hunks        []hunkDoc `yaml:"hunks,omitempty"`
}

// CommitPatch is a commit shown together with its diff.
type CommitPatch struct {
	Commit object.Commit
	Diff   object.Diff
}

type commitPatchDoc struct {
	Commit commitDoc     `yaml:"commit"`
	Diff   []diffFileDoc `yaml:"diff"`
}

// YAML writes v as a YAML document. It accepts the values returned by the
// repository facade.
func YAML(w io.Writer, v any) error {
	doc, err := document(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func document(v any) (any, error) {
	switch v := v.(type) {
	case object.Commit:
		return newCommitDoc(v), nil
	case []object.Commit:
		return mapSlice(v, newCommitDoc), nil
	case object.Tree:
		return newTreeDoc(v), nil
	case []object.Branch:
		return mapSlice(v, newBranchDoc), nil
	case []object.Tag:
		return mapSlice(v, func(t object.Tag) tagDoc { return tagDoc{Name: t.Name, Sha: t.Sha.String()} }), nil
	case []object.StatusEntry:
		return mapSlice(v, newStatusDoc), nil
	case object.Diff:
		return mapSlice(v.Files, newDiffFileDoc), nil
	case CommitPatch:
		return commitPatchDoc{Commit: newCommitDoc(v.Commit), Diff: mapSlice(v.Diff.Files, newDiffFileDoc)}, nil
	default:
		return nil, fmt.Errorf("render yaml: unsupported value %T", v)
	}
}

func mapSlice[T, D any](in []T, f func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func newSignatureDoc(a object.Author) signatureDoc {
	return signatureDoc{Name: a.Name, Email: a.Email, When: a.When}
}

func newCommitDoc(c object.Commit) commitDoc {
	doc := commitDoc{
		Sha:       c.Sha.String(),
		Tree:      c.Tree.String(),
		Author:    newSignatureDoc(c.Author),
		Committer: newSignatureDoc(c.Committer),
		Message:   c.FullMessage(),
	}
	for _, p := range c.Parents {
		doc.Parents = append(doc.Parents, p.String())
	}
	return doc
}

func newTreeEntryDoc(e object.TreeEntry) treeEntryDoc {
	doc := treeEntryDoc{
		Name: e.Name,
		Type: string(e.Type),
		Mode: fmt.Sprintf("%06o", uint32(e.Mode)),
		Sha:  e.Sha.String(),
	}
	if e.Size != object.SizeUnknown {
		size := e.Size
		doc.Size = &size
	}
	return doc
}

func newTreeDoc(t object.Tree) treeDoc {
	doc := treeDoc{Ref: t.Ref, Path: t.Path, Entries: mapSlice(t.Entries, newTreeEntryDoc)}
	if !t.Sha.IsZero() {
		doc.Sha = t.Sha.String()
	}
	if t.Blob != nil {
		blob := newTreeEntryDoc(*t.Blob)
		doc.Blob = &blob
	}
	return doc
}

func newBranchDoc(b object.Branch) branchDoc {
	return branchDoc{
		Name:    b.Name,
		Ref:     b.FullRef.String(),
		Sha:     b.Sha.String(),
		Current: b.Current,
		Remote:  b.Remote,
	}
}

func newStatusDoc(e object.StatusEntry) statusDoc {
	return statusDoc{Code: e.Code(), Path: e.Path, OriginalPath: e.OriginalPath}
}

func newDiffFileDoc(f object.DiffFile) diffFileDoc {
	doc := diffFileDoc{Path: f.Path(), Mode: string(f.Mode), Binary: f.Binary}
	if f.HasPathChanged() {
		doc.OriginalPath = f.OriginalPath
	}
	for _, h := range f.Hunks {
		added, deleted, _ := h.Counts()
		doc.Hunks = append(doc.Hunks, hunkDoc{
			Header:  fmt.Sprintf("@@ -%s +%s @@", hunkRange(h.Origin), hunkRange(h.Destination)),
			Added:   added,
			Deleted: deleted,
		})
	}
	return doc
}
