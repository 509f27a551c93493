package parse

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const zeroSha = "0000000000000000000000000000000000000000"

var diffFixture = []string{
	"diff --git SRC/README.md DST/README.md",
	"index " + sha1 + ".." + sha2 + " 100644",
	"--- SRC/README.md",
	"+++ DST/README.md",
	"@@ -1,2 +1,2 @@",
	" hello",
	"-world",
	"+there",
	"diff --git SRC/new.txt DST/new.txt",
	"new file mode 100644",
	"index " + zeroSha + ".." + sha3,
	"--- /dev/null",
	"+++ DST/new.txt",
	"@@ -0,0 +1 @@",
	"+new",
	"diff --git SRC/old.txt DST/old.txt",
	"deleted file mode 100644",
	"index " + sha3 + ".." + zeroSha,
	"--- SRC/old.txt",
	"+++ /dev/null",
	"@@ -1 +0,0 @@",
	"-old",
	"diff --git SRC/a.txt DST/b.txt",
	"similarity index 100%",
	"rename from a.txt",
	"rename to b.txt",
	"diff --git SRC/run.sh DST/run.sh",
	"old mode 100644",
	"new mode 100755",
	`diff --git "SRC/tab\there.bin" "DST/tab\there.bin"`,
	"index " + sha1 + ".." + sha2 + " 100644",
	`Binary files "SRC/tab\there.bin" and "DST/tab\there.bin" differ`,
	"diff --git SRC/my file.txt DST/my file.txt",
	"index " + sha1 + ".." + sha2 + " 100644",
	"--- SRC/my file.txt",
	"+++ DST/my file.txt",
	"@@ -10,3 +10,3 @@ func main() {",
	" a",
	"-b",
	"+c",
	"",
}

func TestParseDiff(t *testing.T) {
	t.Parallel()

	diff, err := ParseDiff(diffFixture)
	require.NoError(t, err)
	require.Len(t, diff.Files, 7)

	readme := diff.Files[0]
	require.Equal(t, object.DiffModeIndex, readme.Mode)
	require.False(t, readme.HasPathChanged())
	require.Equal(t, filemode.Regular, readme.NewMode)
	require.Len(t, readme.Hunks, 1)
	added, deleted, unchanged := readme.Hunks[0].Counts()
	require.Equal(t, []int{1, 1, 1}, []int{added, deleted, unchanged})

	newFile := diff.Files[1]
	require.Equal(t, object.DiffModeNewFile, newFile.Mode)
	require.Len(t, newFile.Hunks, 1)
	require.Equal(t, object.Range{Start: 0, Count: 0}, newFile.Hunks[0].Origin)
	require.Equal(t, object.Range{Start: 1, Count: 1}, newFile.Hunks[0].Destination)
	require.Equal(t, []object.DiffLine{object.AddedLine{Number: 1, Content: "new"}}, newFile.Hunks[0].Lines)

	deletedFile := diff.Files[2]
	require.Equal(t, object.DiffModeDeletedFile, deletedFile.Mode)
	require.Equal(t, filemode.Regular, deletedFile.OldMode)
	require.Empty(t, deletedFile.Hunks)

	renamed := diff.Files[3]
	require.Equal(t, object.DiffModeRenamed, renamed.Mode)
	require.True(t, renamed.HasPathChanged())
	require.Equal(t, "a.txt", renamed.OriginalPath)
	require.Equal(t, "b.txt", renamed.DestinationPath)
	require.Equal(t, 100, renamed.Similarity)

	modeChange := diff.Files[4]
	require.Equal(t, object.DiffModeModeChange, modeChange.Mode)
	require.Equal(t, filemode.Regular, modeChange.OldMode)
	require.Equal(t, filemode.Executable, modeChange.NewMode)

	binary := diff.Files[5]
	require.Equal(t, "tab\there.bin", binary.DestinationPath)
	require.True(t, binary.Binary)
	require.Empty(t, binary.Hunks)

	spaced := diff.Files[6]
	require.Equal(t, "my file.txt", spaced.OriginalPath)
	require.Equal(t, "my file.txt", spaced.DestinationPath)
	require.Equal(t, "func main() {", spaced.Hunks[0].Context)

	f, ok := diff.File("b.txt")
	require.True(t, ok)
	require.Equal(t, renamed, f)
}

func TestParseDiffRenameWithChanges(t *testing.T) {
	t.Parallel()

	file, err := ParseDiffFile([]string{
		"diff --git SRC/old/name.go DST/new/name.go",
		"similarity index 87%",
		"rename from old/name.go",
		"rename to new/name.go",
		"index " + sha1 + ".." + sha2 + " 100644",
		"--- SRC/old/name.go",
		"+++ DST/new/name.go",
		"@@ -1 +1 @@",
		"-package old",
		"+package new",
	})
	require.NoError(t, err)
	require.Equal(t, object.DiffModeIndex, file.Mode)
	require.True(t, file.HasPathChanged())
	require.Equal(t, 87, file.Similarity)
	require.Len(t, file.Hunks, 1)
}

func TestParseDiffEmpty(t *testing.T) {
	t.Parallel()

	diff, err := ParseDiff(nil)
	require.NoError(t, err)
	require.Empty(t, diff.Files)
}

func TestParseDiffErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		line  int
	}{
		{name: "leading_text", lines: []string{"oops", "diff --git SRC/a DST/a"}, line: 1},
		{name: "default_prefixes", lines: []string{"diff --git a/x b/x"}, line: 1},
		{name: "unknown_header", lines: []string{"diff --git SRC/a DST/a", "frobnicate 1"}, line: 2},
		{
			name: "bad_hunk_line",
			lines: []string{
				"diff --git SRC/a DST/a",
				"index " + sha1 + ".." + sha2 + " 100644",
				"@@ -1 +1 @@",
				"?what",
			},
			line: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDiff(tt.lines)
			var ferr *FormatError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tt.line, ferr.Line)
		})
	}
}

func TestParseHunkHeader(t *testing.T) {
	t.Parallel()

	origin, dest, context, err := ParseHunkHeader("@@ -3,5 +3,2 @@")
	require.NoError(t, err)
	require.Equal(t, object.Range{Start: 3, Count: 5}, origin)
	require.Equal(t, object.Range{Start: 3, Count: 2}, dest)
	require.Equal(t, 7, origin.End())
	require.Equal(t, 4, dest.End())
	require.Empty(t, context)

	origin, dest, _, err = ParseHunkHeader("@@ -7 +9 @@")
	require.NoError(t, err)
	require.Equal(t, origin.Start, origin.End())
	require.Equal(t, dest.Start, dest.End())

	_, _, _, err = ParseHunkHeader("@@ -a +b @@")
	require.Error(t, err)
}

func TestParseHunkLineNumbers(t *testing.T) {
	t.Parallel()

	hunk, err := ParseHunk([]string{
		"@@ -1,3 +1,4 @@ func main()",
		" a",
		"-b",
		"+B",
		"+c",
		"",
		`\ No newline at end of file`,
	})
	require.NoError(t, err)
	require.Equal(t, "func main()", hunk.Context)
	require.Equal(t, []object.DiffLine{
		object.UnchangedLine{OriginNumber: 1, DestinationNumber: 1, Content: "a"},
		object.DeletedLine{Number: 2, Content: "b"},
		object.AddedLine{Number: 2, Content: "B"},
		object.AddedLine{Number: 3, Content: "c"},
		object.UnchangedLine{OriginNumber: 3, DestinationNumber: 4, Content: ""},
	}, hunk.Lines)
}
