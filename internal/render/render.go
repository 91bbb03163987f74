// Package render turns a comparison Result into output. Every format is a
// separate Renderer so the comparison itself never depends on presentation.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/difr/internal/session"
)

// Output format names.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatSummary = "summary"
)

// ErrUnsupportedFormat is returned for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists every supported format name.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatSummary}
}

// Options tunes rendering.
type Options struct {
	// Color enables ANSI styling in the text format.
	Color bool
	// Highlight marks the differing characters inside mismatched lines.
	Highlight bool
	// ShowMatches includes matching positions in the output.
	ShowMatches bool
}

// Renderer writes a Result to w.
type Renderer interface {
	Render(w io.Writer, res *session.Result) error
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case FormatText, "":
		return NewText(opts), nil
	case FormatJSON:
		return &JSON{opts: opts}, nil
	case FormatYAML:
		return &YAML{opts: opts}, nil
	case FormatSummary:
		return &Summary{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
