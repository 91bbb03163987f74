package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/pkg/safeconv"
)

// Summary renders a compact table: one row per file and a footer with the
// verdict and the event totals.
type Summary struct{}

// Render implements Renderer.
func (r *Summary) Render(w io.Writer, res *session.Result) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"", "Path", "Size", "Lines", "Language", "Digest"})

	for idx, info := range []session.FileInfo{res.Left, res.Right} {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("File %d", idx+1),
			info.Path,
			humanize.Bytes(safeconv.MustInt64ToUint64(info.Size)),
			describeLineCount(info),
			info.Language,
			shortDigest(info.Digest),
		})
	}

	tbl.AppendFooter(table.Row{"", verdict(res), string(res.Strategy), totalsCell(res), "", ""})
	tbl.Render()

	return nil
}

// shortDigestLen is the number of hex digits shown in the digest column.
const shortDigestLen = 12

func shortDigest(sum string) string {
	if len(sum) <= shortDigestLen {
		return sum
	}

	return sum[:shortDigestLen]
}

func describeLineCount(info session.FileInfo) string {
	if !info.Text {
		return "binary"
	}

	return strconv.Itoa(info.Lines)
}

func verdict(res *session.Result) string {
	if res.Equal {
		return "equal"
	}

	return "different"
}

func totalsCell(res *session.Result) string {
	if res.Report == nil {
		return ""
	}

	cell := fmt.Sprintf("%d match(es), %d mismatch(es)", res.Report.Matched(), res.Report.Mismatches())
	if ev, ok := res.Report.Exhaustion(); ok {
		cell += ", " + ev.Kind.String()
	}

	return cell
}
