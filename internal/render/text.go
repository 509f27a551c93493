// Package render turns repository values into terminal text or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const (
	timeLayout    = "2006-01-02 15:04:05 -0700"
	summaryLayout = "2006-01-02 15:04"
	maxSubject    = 80
)

// Summary is the one-line form of a commit used by Log.
func Summary(c object.Commit) string {
	subject := strings.TrimSpace(c.ShortMessage())
	if len(subject) > maxSubject {
		subject = subject[:maxSubject-3] + "..."
	}
	return fmt.Sprintf("%s  %s  %s", shortSha(c.Sha.String()), c.Committer.When.Format(summaryLayout), subject)
}

// CommitHeader renders a commit the way "git show -s" lays it out.
func CommitHeader(c object.Commit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\n", c.Sha)
	for i, p := range c.Parents {
		if i == 0 {
			fmt.Fprintf(&b, "Parent: %s", shortSha(p.String()))
		} else {
			fmt.Fprintf(&b, " %s", shortSha(p.String()))
		}
		if i == len(c.Parents)-1 {
			b.WriteByte('\n')
		}
	}
	writeSignature(&b, "Author", c.Author)
	committer := c.Committer
	if committer.Name == "" && committer.Email == "" && committer.When.IsZero() {
		committer = c.Author
	}
	writeSignature(&b, "Committer", committer)
	b.WriteString("\n")
	if strings.TrimSpace(c.FullMessage()) == "" {
		b.WriteString("    (no commit message)\n")
		return b.String()
	}
	for _, line := range c.Message {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "    %s\n", line)
	}
	return b.String()
}

func writeSignature(b *strings.Builder, label string, a object.Author) {
	fmt.Fprintf(b, "%s: %s <%s>", label, a.Name, a.Email)
	if !a.When.IsZero() {
		fmt.Fprintf(b, "  %s", a.When.Format(timeLayout))
	}
	b.WriteByte('\n')
}

func Log(w io.Writer, commits []object.Commit) error {
	for _, c := range commits {
		if _, err := fmt.Fprintln(w, Summary(c)); err != nil {
			return err
		}
	}
	return nil
}

func Commit(w io.Writer, c object.Commit) error {
	_, err := io.WriteString(w, CommitHeader(c))
	return err
}

// Tree prints one ls-tree style line per entry, or the blob line when the
// tree is a single file.
func Tree(w io.Writer, t object.Tree) error {
	if t.IsBlob() {
		return treeLine(w, *t.Blob)
	}
	for _, e := range t.Entries {
		if err := treeLine(w, e); err != nil {
			return err
		}
	}
	return nil
}

func treeLine(w io.Writer, e object.TreeEntry) error {
	size := "-"
	if e.Size != object.SizeUnknown {
		size = fmt.Sprint(e.Size)
	}
	name := e.Name
	if e.IsTree() {
		name += "/"
	}
	_, err := fmt.Fprintf(w, "%06o %-9s %s %7s\t%s\n", uint32(e.Mode), e.Type, shortSha(e.Sha.String()), size, name)
	return err
}

func Branches(w io.Writer, branches []object.Branch) error {
	for _, br := range branches {
		mark := " "
		if br.Current {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", mark, br.Name, shortSha(br.Sha.String()), br.Comment); err != nil {
			return err
		}
	}
	return nil
}

func Tags(w io.Writer, tags []object.Tag) error {
	for _, t := range tags {
		if _, err := fmt.Fprintf(w, "%s %s\n", shortSha(t.Sha.String()), t.Name); err != nil {
			return err
		}
	}
	return nil
}

func Status(w io.Writer, entries []object.StatusEntry) error {
	for _, e := range entries {
		path := e.Path
		if e.OriginalPath != "" {
			path = e.OriginalPath + " -> " + e.Path
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", e.Code(), path); err != nil {
			return err
		}
	}
	return nil
}

func shortSha(sha string) string {
	if len(sha) < 7 {
		return sha
	}
	return sha[:7]
}
