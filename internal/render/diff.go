package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/thiagokokada/gitrepo/internal/git/object"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
	devNull   = "/dev/null"
	oldPrefix = "a/"
	newPrefix = "b/"
)

type DiffOptions struct {
	// Color enables ANSI markers and syntax highlighting of line content.
	Color bool
	// Style is a chroma style name; unknown names fall back to the default.
	Style string
}

// Differ prints parsed diffs back in unified format.
type Differ struct {
	color     bool
	style     *chroma.Style
	formatter chroma.Formatter
}

func NewDiffer(opts DiffOptions) *Differ {
	d := &Differ{color: opts.Color}
	if opts.Color {
		d.style = styles.Get(opts.Style)
		if d.style == nil {
			d.style = styles.Fallback
		}
		d.formatter = formatters.Get("terminal256")
	}
	return d
}

func (d *Differ) Render(w io.Writer, diff object.Diff) error {
	var b strings.Builder
	for i, f := range diff.Files {
		if i > 0 {
			b.WriteByte('\n')
		}
		d.writeFile(&b, f)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (d *Differ) writeFile(b *strings.Builder, f object.DiffFile) {
	d.meta(b, "diff --git "+oldPrefix+f.OriginalPath+" "+newPrefix+f.DestinationPath)
	switch f.Mode {
	case object.DiffModeNewFile:
		d.meta(b, fmt.Sprintf("new file mode %06o", uint32(f.NewMode)))
	case object.DiffModeDeletedFile:
		d.meta(b, fmt.Sprintf("deleted file mode %06o", uint32(f.OldMode)))
	case object.DiffModeRenamed:
		if f.Similarity > 0 {
			d.meta(b, fmt.Sprintf("similarity index %d%%", f.Similarity))
		}
		d.meta(b, "rename from "+f.OriginalPath)
		d.meta(b, "rename to "+f.DestinationPath)
	case object.DiffModeModeChange:
		d.meta(b, fmt.Sprintf("old mode %06o", uint32(f.OldMode)))
		d.meta(b, fmt.Sprintf("new mode %06o", uint32(f.NewMode)))
	}
	if f.Binary {
		d.meta(b, "Binary files differ")
		return
	}
	if len(f.Hunks) == 0 {
		return
	}
	from, to := oldPrefix+f.OriginalPath, newPrefix+f.DestinationPath
	switch f.Mode {
	case object.DiffModeNewFile:
		from = devNull
	case object.DiffModeDeletedFile:
		to = devNull
	}
	d.meta(b, "--- "+from)
	d.meta(b, "+++ "+to)

	lexer := d.lexerFor(f.Path())
	for _, h := range f.Hunks {
		header := fmt.Sprintf("@@ -%s +%s @@", hunkRange(h.Origin), hunkRange(h.Destination))
		if h.Context != "" {
			header += " " + h.Context
		}
		d.paint(b, ansiCyan, header)
		b.WriteByte('\n')
		for _, line := range h.Lines {
			d.writeLine(b, lexer, line)
		}
	}
}

func (d *Differ) writeLine(b *strings.Builder, lexer chroma.Lexer, line object.DiffLine) {
	var prefix, color string
	switch line.(type) {
	case object.AddedLine:
		prefix, color = "+", ansiGreen
	case object.DeletedLine:
		prefix, color = "-", ansiRed
	default:
		prefix = " "
	}
	d.paint(b, color, prefix)
	b.WriteString(d.highlight(lexer, line.Text()))
	b.WriteByte('\n')
}

func (d *Differ) meta(b *strings.Builder, line string) {
	if d.color {
		b.WriteString(ansiBold)
		b.WriteString(line)
		b.WriteString(ansiReset)
	} else {
		b.WriteString(line)
	}
	b.WriteByte('\n')
}

func (d *Differ) paint(b *strings.Builder, color, s string) {
	if !d.color || color == "" {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(ansiReset)
}

func (d *Differ) lexerFor(path string) chroma.Lexer {
	if !d.color || path == "" {
		return nil
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// highlight colors one line of code. Lexers append a newline token, which
// is dropped so the caller controls line ends.
func (d *Differ) highlight(lexer chroma.Lexer, code string) string {
	if lexer == nil || code == "" {
		return code
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	tokens := it.Tokens()
	if n := len(tokens); n > 0 {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	var b strings.Builder
	if err := d.formatter.Format(&b, d.style, chroma.Literator(tokens...)); err != nil {
		return code
	}
	return b.String()
}

func hunkRange(r object.Range) string {
	if r.Count == 1 {
		return fmt.Sprint(r.Start)
	}
	return fmt.Sprintf("%d,%d", r.Start, r.Count)
}
