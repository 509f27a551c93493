package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/filemode"

	"github.com/thiagokokada/gitrepo/internal/git/command"
	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const diffHeaderPrefix = "diff --git "

var (
	indexPattern      = regexp.MustCompile(`^index [0-9a-f]+\.\.[0-9a-f]+(?: ([0-7]{6}))?$`)
	similarityPattern = regexp.MustCompile(`^similarity index (\d+)%$`)
)

// ParseDiff splits diff output into files at each "diff --git SRC/.. DST/.."
// header and parses every file. Lines before the first header are rejected.
func ParseDiff(lines []string) (object.Diff, error) {
	diff := object.Diff{Files: []object.DiffFile{}}
	start := -1
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		f, err := parseDiffFile(newCursor(lines[start:end], start))
		if err != nil {
			return err
		}
		diff.Files = append(diff.Files, f)
		return nil
	}
	for i, line := range lines {
		if strings.HasPrefix(line, diffHeaderPrefix) {
			if err := flush(i); err != nil {
				return object.Diff{}, err
			}
			start = i
			continue
		}
		if start < 0 && strings.TrimSpace(line) != "" {
			return object.Diff{}, formatErr("diff", i+1, line, "expected diff header")
		}
	}
	if err := flush(len(lines)); err != nil {
		return object.Diff{}, err
	}
	return diff, nil
}

// ParseDiffFile parses the lines of a single file section, header included.
func ParseDiffFile(lines []string) (object.DiffFile, error) {
	return parseDiffFile(newCursor(lines, 0))
}

type fileHeader struct {
	hasIndex   bool
	modeChange bool
	newFile    bool
	deleted    bool
}

func parseDiffFile(cur *cursor) (object.DiffFile, error) {
	if cur.done() {
		return object.DiffFile{}, formatErr("diff", cur.offset+1, "", "missing diff header")
	}
	first := cur.next()
	src, dst, ok := diffHeaderPaths(first)
	if !ok {
		return object.DiffFile{}, formatErr("diff", cur.lineNo(), first,
			"expected \"diff --git "+command.SrcPrefix+"<path> "+command.DstPrefix+"<path>\"")
	}
	file := object.DiffFile{OriginalPath: src, DestinationPath: dst}

	var h fileHeader
	for !cur.done() && !isHunkHeader(cur.peek()) {
		line := cur.next()
		if err := h.scan(&file, line); err != nil {
			err.Line = cur.lineNo()
			return object.DiffFile{}, err
		}
	}

	switch {
	case h.newFile:
		file.Mode = object.DiffModeNewFile
	case h.deleted:
		file.Mode = object.DiffModeDeletedFile
	case file.HasPathChanged() && !h.hasIndex:
		file.Mode = object.DiffModeRenamed
	case h.modeChange && !h.hasIndex:
		file.Mode = object.DiffModeModeChange
	default:
		file.Mode = object.DiffModeIndex
	}
	if file.Mode != object.DiffModeIndex && file.Mode != object.DiffModeNewFile {
		return file, nil
	}

	for !cur.done() {
		start := cur.pos
		cur.next()
		for !cur.done() && !isHunkHeader(cur.peek()) {
			cur.next()
		}
		hunk, err := parseHunk(newCursor(cur.lines[start:cur.pos], cur.offset+start))
		if err != nil {
			return object.DiffFile{}, err
		}
		file.Hunks = append(file.Hunks, hunk)
	}
	return file, nil
}

// scan records one extended header line.
func (h *fileHeader) scan(file *object.DiffFile, line string) *FormatError {
	key, value := line, ""
	for _, prefix := range []string{
		"old mode ", "new mode ", "new file mode ", "deleted file mode ",
		"rename from ", "rename to ", "copy from ", "copy to ",
	} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			key, value = strings.TrimSpace(prefix), rest
			break
		}
	}
	switch key {
	case "old mode":
		h.modeChange = true
		return setMode(&file.OldMode, value, line)
	case "new mode":
		h.modeChange = true
		return setMode(&file.NewMode, value, line)
	case "new file mode":
		h.newFile = true
		return setMode(&file.NewMode, value, line)
	case "deleted file mode":
		h.deleted = true
		return setMode(&file.OldMode, value, line)
	case "rename from", "rename to", "copy from", "copy to":
		return nil
	}
	switch {
	case strings.HasPrefix(line, "index "):
		m := indexPattern.FindStringSubmatch(line)
		if m == nil {
			return formatErr("diff", 0, line, "malformed index line")
		}
		h.hasIndex = true
		if m[1] != "" {
			if err := setMode(&file.OldMode, m[1], line); err != nil {
				return err
			}
			file.NewMode = file.OldMode
		}
	case strings.HasPrefix(line, "similarity index "):
		m := similarityPattern.FindStringSubmatch(line)
		if m == nil {
			return formatErr("diff", 0, line, "malformed similarity index")
		}
		file.Similarity, _ = strconv.Atoi(m[1])
	case strings.HasPrefix(line, "dissimilarity index "):
	case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"):
		file.Binary = true
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
	default:
		return formatErr("diff", 0, line, "unexpected extended header")
	}
	return nil
}

func setMode(dst *filemode.FileMode, value, line string) *FormatError {
	mode, err := filemode.New(strings.TrimSpace(value))
	if err != nil {
		return formatErr("diff", 0, line, "invalid file mode")
	}
	*dst = mode
	return nil
}

// diffHeaderPaths extracts both paths from a "diff --git" header. Either path
// may be quoted; unquoted paths may contain spaces.
func diffHeaderPaths(line string) (string, string, bool) {
	rest, ok := strings.CutPrefix(line, diffHeaderPrefix)
	if !ok {
		return "", "", false
	}
	var src, dst string
	if quoted, after, ok := readQuoted(rest); ok {
		src, dst = quoted, strings.TrimPrefix(after, " ")
	} else {
		i := strings.Index(rest, " "+command.DstPrefix)
		if j := strings.Index(rest, ` "`+command.DstPrefix); j >= 0 && (i < 0 || j < i) {
			i = j
		}
		if i < 0 {
			return "", "", false
		}
		src, dst = rest[:i], rest[i+1:]
	}
	if dst, ok = unquotePath(dst); !ok {
		return "", "", false
	}
	src, okSrc := strings.CutPrefix(src, command.SrcPrefix)
	dst, okDst := strings.CutPrefix(dst, command.DstPrefix)
	if !okSrc || !okDst || src == "" || dst == "" {
		return "", "", false
	}
	return src, dst, true
}
