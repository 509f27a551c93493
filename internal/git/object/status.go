package object

type StatusCode byte

const (
	StatusUnmodified StatusCode = ' '
	StatusModified   StatusCode = 'M'
	StatusTypeChange StatusCode = 'T'
	StatusAdded      StatusCode = 'A'
	StatusDeleted    StatusCode = 'D'
	StatusRenamed    StatusCode = 'R'
	StatusCopied     StatusCode = 'C'
	StatusUnmerged   StatusCode = 'U'
	StatusUntracked  StatusCode = '?'
	StatusIgnored    StatusCode = '!'
)

// Valid reports whether c is one of the porcelain status codes.
func (c StatusCode) Valid() bool {
	switch c {
	case StatusUnmodified, StatusModified, StatusTypeChange, StatusAdded, StatusDeleted,
		StatusRenamed, StatusCopied, StatusUnmerged, StatusUntracked, StatusIgnored:
		return true
	}
	return false
}

func (c StatusCode) String() string {
	switch c {
	case StatusUnmodified:
		return "unmodified"
	case StatusModified:
		return "modified"
	case StatusTypeChange:
		return "type-changed"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusUnmerged:
		return "updated-unmerged"
	case StatusUntracked:
		return "untracked"
	case StatusIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

type StatusEntry struct {
	Index    StatusCode
	Worktree StatusCode
	Path     string
	// OriginalPath is the source path of a rename or copy.
	OriginalPath string
}

func (e StatusEntry) Untracked() bool {
	return e.Index == StatusUntracked && e.Worktree == StatusUntracked
}

func (e StatusEntry) Ignored() bool {
	return e.Index == StatusIgnored && e.Worktree == StatusIgnored
}

// Staged reports whether the entry has changes recorded in the index.
func (e StatusEntry) Staged() bool {
	switch e.Index {
	case StatusUnmodified, StatusUntracked, StatusIgnored:
		return false
	}
	return true
}

func (e StatusEntry) Unmerged() bool {
	return e.Index == StatusUnmerged || e.Worktree == StatusUnmerged ||
		(e.Index == StatusAdded && e.Worktree == StatusAdded) ||
		(e.Index == StatusDeleted && e.Worktree == StatusDeleted)
}

// Code renders the two-column XY code.
func (e StatusEntry) Code() string {
	return string([]byte{byte(e.Index), byte(e.Worktree)})
}
