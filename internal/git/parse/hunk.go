package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

// ParseHunkHeader parses "@@ -start[,count] +start[,count] @@ [context]".
// A range written without a count covers one line.
func ParseHunkHeader(line string) (origin, dest object.Range, context string, err error) {
	return parseHunkHeader(line, 1)
}

func parseHunkHeader(line string, lineNo int) (origin, dest object.Range, context string, err error) {
	m := hunkHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return origin, dest, "", formatErr("hunk", lineNo, line, "expected \"@@ -a,b +c,d @@\"")
	}
	origin = hunkRange(m[1], m[2])
	dest = hunkRange(m[3], m[4])
	return origin, dest, m[5], nil
}

func hunkRange(start, count string) object.Range {
	r := object.Range{Count: 1}
	r.Start, _ = strconv.Atoi(start)
	if count != "" {
		r.Count, _ = strconv.Atoi(count)
	}
	return r
}

// ParseHunk parses a hunk header followed by its body lines.
func ParseHunk(lines []string) (object.DiffHunk, error) {
	return parseHunk(newCursor(lines, 0))
}

func parseHunk(cur *cursor) (object.DiffHunk, error) {
	if cur.done() {
		return object.DiffHunk{}, formatErr("hunk", cur.offset+1, "", "missing hunk header")
	}
	header := cur.next()
	origin, dest, context, err := parseHunkHeader(header, cur.lineNo())
	if err != nil {
		return object.DiffHunk{}, err
	}
	hunk := object.DiffHunk{Origin: origin, Destination: dest, Context: context}
	originNo, destNo := origin.Start, dest.Start
	for !cur.done() {
		line := cur.next()
		if line == "" {
			hunk.Lines = append(hunk.Lines, object.UnchangedLine{OriginNumber: originNo, DestinationNumber: destNo})
			originNo++
			destNo++
			continue
		}
		switch line[0] {
		case '+':
			hunk.Lines = append(hunk.Lines, object.AddedLine{Number: destNo, Content: line[1:]})
			destNo++
		case '-':
			hunk.Lines = append(hunk.Lines, object.DeletedLine{Number: originNo, Content: line[1:]})
			originNo++
		case ' ':
			hunk.Lines = append(hunk.Lines, object.UnchangedLine{
				OriginNumber:      originNo,
				DestinationNumber: destNo,
				Content:           line[1:],
			})
			originNo++
			destNo++
		case '\\':
			// "\ No newline at end of file"
		default:
			return object.DiffHunk{}, formatErr("hunk", cur.lineNo(), line, "unexpected hunk line")
		}
	}
	return hunk, nil
}

func isHunkHeader(line string) bool {
	return strings.HasPrefix(line, "@@ ")
}
