package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/pkg/digest"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
	"github.com/Sumatoshi-tech/difr/pkg/safeconv"
)

// Text messages.
const (
	msgHashing       = "Computing " + digest.Algorithm + " hashes of files..."
	msgEqual         = "Contents of files are equal (hashes are equal)"
	msgDifferent     = "Contents of files are different"
	msgBinaryEqual   = "Binary files are equal"
	msgBinaryDiffer  = "Binary files differ"
	msgNoDifferences = "No differences"
	msgEndOfFile     = "End of File for "
	marker           = ">"
	matchMarker      = "="
)

// Plain-text highlight delimiters used when colour is off.
const (
	delOpen  = "[-"
	delClose = "-]"
	insOpen  = "{+"
	insClose = "+}"
)

type palette struct {
	label   *color.Color
	content *color.Color
	deleted *color.Color
	added   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		label:   color.New(color.FgHiGreen),
		content: color.New(color.FgHiCyan),
		deleted: color.New(color.FgHiRed, color.Bold, color.Underline),
		added:   color.New(color.FgHiGreen, color.Bold, color.Underline),
	}

	for _, c := range []*color.Color{p.label, p.content, p.deleted, p.added} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Text is the human readable report.
type Text struct {
	opts    Options
	palette palette
	dmp     *diffmatchpatch.DiffMatchPatch
}

// NewText creates a Text renderer.
func NewText(opts Options) *Text {
	return &Text{
		opts:    opts,
		palette: newPalette(opts.Color),
		dmp:     diffmatchpatch.New(),
	}
}

// Render implements Renderer.
func (r *Text) Render(w io.Writer, res *session.Result) error {
	var sb strings.Builder

	r.writeHeader(&sb, res)
	r.writeDigests(&sb, res)

	if res.Strategy == session.StrategyLines && res.Report != nil {
		r.writeReport(&sb, res)
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func (r *Text) writeHeader(sb *strings.Builder, res *session.Result) {
	for idx, info := range []session.FileInfo{res.Left, res.Right} {
		fmt.Fprintf(sb, "%s:\t%s\t%s\t%s",
			r.palette.label.Sprintf("File %d", idx+1),
			r.palette.content.Sprint(info.Path),
			r.palette.content.Sprintf("%d bytes (%s)", info.Size, humanize.Bytes(safeconv.MustInt64ToUint64(info.Size))),
			r.palette.content.Sprint(describeLines(info)),
		)

		if info.Language != "" {
			fmt.Fprintf(sb, "\t%s", r.palette.content.Sprintf("[%s]", info.Language))
		}

		sb.WriteString("\n")
	}

	if res.Options.Range != nil {
		fmt.Fprintf(sb, "%s\t%s\n", r.palette.label.Sprint("Range:"), r.palette.content.Sprint(res.Options.Range.String()))
	}

	if res.Options.ExcludeEmptyLines {
		fmt.Fprintf(sb, "%s\n", r.palette.label.Sprint("Empty lines excluded"))
	}
}

func describeLines(info session.FileInfo) string {
	if !info.Text {
		return "binary"
	}

	return fmt.Sprintf("%d line(s)", info.Lines)
}

func (r *Text) writeDigests(sb *strings.Builder, res *session.Result) {
	fmt.Fprintf(sb, "\n%s\n", r.palette.label.Sprint(msgHashing))
	fmt.Fprintf(sb, "%s:\t%s\n", r.palette.label.Sprint("File 1"), r.palette.content.Sprint(res.Left.Digest))
	fmt.Fprintf(sb, "%s:\t%s\n", r.palette.label.Sprint("File 2"), r.palette.content.Sprint(res.Right.Digest))

	switch {
	case res.Binary() && res.Equal:
		fmt.Fprintf(sb, "\n%s\n", r.palette.label.Sprint(msgBinaryEqual))
	case res.Binary():
		fmt.Fprintf(sb, "\n%s\n", r.palette.content.Sprint(msgBinaryDiffer))
	case res.Strategy == session.StrategyDigest:
		fmt.Fprintf(sb, "\n%s\n", r.palette.label.Sprint(msgEqual))
	default:
		fmt.Fprintf(sb, "\n%s\n", r.palette.content.Sprint(msgDifferent))
	}
}

func (r *Text) writeReport(sb *strings.Builder, res *session.Result) {
	filtered := res.Options.Filtering()

	for _, ev := range res.Report.Events {
		switch ev.Kind {
		case linecmp.KindMatch:
			if r.opts.ShowMatches {
				r.writeMatch(sb, ev, filtered)
			}
		case linecmp.KindMismatch:
			r.writeMismatch(sb, ev, filtered)
		case linecmp.KindLeftExhausted:
			r.writeTail(sb, ev, res.Left.Path, true)
		case linecmp.KindRightExhausted:
			r.writeTail(sb, ev, res.Right.Path, false)
		}
	}

	if res.Report.Equal() {
		fmt.Fprintf(sb, "\n%s\n", r.palette.label.Sprint(msgNoDifferences))
	}
}

func (r *Text) lineTitle(ev linecmp.Event, filtered bool) string {
	title := fmt.Sprintf("Line %d", ev.Position)
	if filtered {
		title += fmt.Sprintf(" (left %d, right %d)", ev.Left.Number, ev.Right.Number)
	}

	return r.palette.label.Sprint(title + ":")
}

func (r *Text) writeMatch(sb *strings.Builder, ev linecmp.Event, filtered bool) {
	fmt.Fprintf(sb, "\n%s\n%s\t%s\n",
		r.lineTitle(ev, filtered),
		r.palette.label.Sprint(matchMarker),
		r.palette.content.Sprint(ev.Left.Text),
	)
}

func (r *Text) writeMismatch(sb *strings.Builder, ev linecmp.Event, filtered bool) {
	left := r.palette.content.Sprint(ev.Left.Text)
	right := r.palette.content.Sprint(ev.Right.Text)

	if r.opts.Highlight {
		left, right = r.highlight(ev.Left.Text, ev.Right.Text)
	}

	fmt.Fprintf(sb, "\n%s\n%s\t%s\n%s\t%s\n",
		r.lineTitle(ev, filtered),
		r.palette.label.Sprint(marker), left,
		r.palette.label.Sprint(marker), right,
	)
}

// writeTail prints the lines left over on one side. leftEnded tells which
// side ran out, the end-of-file marker goes on that side.
func (r *Text) writeTail(sb *strings.Builder, ev linecmp.Event, endedPath string, leftEnded bool) {
	fmt.Fprintf(sb, "\n%s\n", r.palette.label.Sprintf("Lines %d -> End:", ev.Position))

	eof := fmt.Sprintf("%s\t%s",
		r.palette.label.Sprint(marker),
		r.palette.content.Sprintf("%s`%s`", msgEndOfFile, endedPath),
	)

	if leftEnded {
		sb.WriteString(eof + "\n")
	}

	for idx, line := range ev.Tail {
		prefix := ""
		if idx == 0 {
			prefix = r.palette.label.Sprint(marker)
		}

		fmt.Fprintf(sb, "%s\t%s\n", prefix, r.palette.content.Sprint(line.Text))
	}

	if !leftEnded {
		sb.WriteString(eof + "\n")
	}
}

// highlight marks the characters that differ between left and right.
func (r *Text) highlight(left, right string) (string, string) {
	diffs := r.dmp.DiffMain(left, right, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)

	var lsb, rsb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			lsb.WriteString(r.palette.content.Sprint(d.Text))
			rsb.WriteString(r.palette.content.Sprint(d.Text))
		case diffmatchpatch.DiffDelete:
			lsb.WriteString(r.mark(r.palette.deleted, d.Text, delOpen, delClose))
		case diffmatchpatch.DiffInsert:
			rsb.WriteString(r.mark(r.palette.added, d.Text, insOpen, insClose))
		}
	}

	return lsb.String(), rsb.String()
}

func (r *Text) mark(c *color.Color, text, open, closing string) string {
	if r.opts.Color {
		return c.Sprint(text)
	}

	return open + text + closing
}
