package command

// Path prefixes forced on diffs. The diff parser splits files on
// "diff --git SRC/... DST/..." headers.
const (
	SrcPrefix = "SRC/"
	DstPrefix = "DST/"
)

var diffFormat = []string{
	"--no-color",
	"--no-ext-diff",
	"--full-index",
	"-M",
	"--src-prefix=" + SrcPrefix,
	"--dst-prefix=" + DstPrefix,
}

// Diff compares two commits.
func Diff(from, to, path string) (Command, error) {
	from, err := requireRef(from)
	if err != nil {
		return Command{}, err
	}
	to, err = requireRef(to)
	if err != nil {
		return Command{}, err
	}
	p, err := CleanPath(path)
	if err != nil {
		return Command{}, err
	}
	return New("diff").Arg(diffFormat...).Subject(from, to).Path(p).Build(), nil
}

// RootDiff shows a root commit as the creation of every file it contains.
// A root commit has no "<sha>^" to compare with, so it goes through diff-tree
// against the empty tree instead of Diff.
func RootDiff(sha, path string) (Command, error) {
	sha, err := requireRef(sha)
	if err != nil {
		return Command{}, err
	}
	p, err := CleanPath(path)
	if err != nil {
		return Command{}, err
	}
	return New("diff-tree").
		Arg("--root", "--no-commit-id", "-p", "-r").
		Arg(diffFormat...).
		Subject(sha).
		Path(p).
		Build(), nil
}

// WorktreeDiff compares the working tree with the index, or the index with
// HEAD when staged is set.
func WorktreeDiff(staged bool, path string) (Command, error) {
	p, err := CleanPath(path)
	if err != nil {
		return Command{}, err
	}
	return New("diff").Arg(diffFormat...).ArgIf(staged, "--cached").Path(p).Build(), nil
}
