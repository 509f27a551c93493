package object

import "github.com/go-git/go-git/v5/plumbing/filemode"

type DiffMode string

const (
	DiffModeIndex       DiffMode = "index"
	DiffModeModeChange  DiffMode = "mode-change"
	DiffModeNewFile     DiffMode = "new-file"
	DiffModeDeletedFile DiffMode = "deleted-file"
	DiffModeRenamed     DiffMode = "renamed"
)

type Diff struct {
	Files []DiffFile
}

// File returns the first file whose destination (or original) path matches p.
func (d Diff) File(p string) (DiffFile, bool) {
	for _, f := range d.Files {
		if f.DestinationPath == p || f.OriginalPath == p {
			return f, true
		}
	}
	return DiffFile{}, false
}

type DiffFile struct {
	OriginalPath    string
	DestinationPath string
	Mode            DiffMode
	// Similarity is the rename similarity percentage, 0 when not renamed.
	Similarity int
	OldMode    filemode.FileMode
	NewMode    filemode.FileMode
	Binary     bool
	Hunks      []DiffHunk
}

func (f DiffFile) HasPathChanged() bool {
	return f.OriginalPath != f.DestinationPath
}

// Path is the destination path, which is the only path for most files.
func (f DiffFile) Path() string {
	return f.DestinationPath
}

// Range is a "start,count" pair from a hunk header.
type Range struct {
	Start int
	Count int
}

// End is the last line covered by the range. A single line range, written
// without a count, has End == Start. An empty range (count 0) also reports
// Start.
func (r Range) End() int {
	if r.Count <= 1 {
		return r.Start
	}
	return r.Start + r.Count - 1
}

type DiffHunk struct {
	Origin      Range
	Destination Range
	// Context is the optional text after the closing "@@".
	Context string
	Lines   []DiffLine
}

// Counts returns the number of added, deleted and unchanged lines.
func (h DiffHunk) Counts() (added, deleted, unchanged int) {
	for _, l := range h.Lines {
		switch l.(type) {
		case AddedLine:
			added++
		case DeletedLine:
			deleted++
		case UnchangedLine:
			unchanged++
		}
	}
	return added, deleted, unchanged
}

// DiffLine is one of AddedLine, DeletedLine or UnchangedLine.
type DiffLine interface {
	Text() string
	diffLine()
}

type AddedLine struct {
	Number  int
	Content string
}

type DeletedLine struct {
	Number  int
	Content string
}

type UnchangedLine struct {
	OriginNumber      int
	DestinationNumber int
	Content           string
}

func (l AddedLine) Text() string     { return l.Content }
func (l DeletedLine) Text() string   { return l.Content }
func (l UnchangedLine) Text() string { return l.Content }

func (AddedLine) diffLine()     {}
func (DeletedLine) diffLine()   {}
func (UnchangedLine) diffLine() {}
