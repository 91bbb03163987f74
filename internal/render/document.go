package render

import (
	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/pkg/digest"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
)

// Document is the structured form of a Result shared by the json and yaml formats.
type Document struct {
	Left      session.FileInfo `json:"left"      yaml:"left"`
	Right     session.FileInfo `json:"right"     yaml:"right"`
	Algorithm string           `json:"algorithm" yaml:"algorithm"`
	Strategy  string           `json:"strategy"  yaml:"strategy"`
	Equal     bool             `json:"equal"     yaml:"equal"`
	Options   DocumentOptions  `json:"options"   yaml:"options"`
	Summary   DocumentSummary  `json:"summary"   yaml:"summary"`
	Events    []DocumentEvent  `json:"events"    yaml:"events"`
}

// DocumentOptions mirrors the comparator configuration.
type DocumentOptions struct {
	ExcludeEmptyLines bool `json:"exclude_empty_lines" yaml:"exclude_empty_lines"`
	From              int  `json:"from,omitempty"      yaml:"from,omitempty"`
	To                int  `json:"to,omitempty"        yaml:"to,omitempty"`
}

// DocumentSummary counts events by kind.
type DocumentSummary struct {
	Matches    int    `json:"matches"             yaml:"matches"`
	Mismatches int    `json:"mismatches"          yaml:"mismatches"`
	Exhausted  string `json:"exhausted,omitempty" yaml:"exhausted,omitempty"`
}

// DocumentEvent is one comparator event.
type DocumentEvent struct {
	Kind     string         `json:"kind"            yaml:"kind"`
	Position int            `json:"position"        yaml:"position"`
	Left     *linecmp.Line  `json:"left,omitempty"  yaml:"left,omitempty"`
	Right    *linecmp.Line  `json:"right,omitempty" yaml:"right,omitempty"`
	Tail     []linecmp.Line `json:"tail,omitempty"  yaml:"tail,omitempty"`
}

// NewDocument converts res. Match events are dropped unless showMatches is set.
func NewDocument(res *session.Result, showMatches bool) Document {
	doc := Document{
		Left:      res.Left,
		Right:     res.Right,
		Algorithm: digest.Algorithm,
		Strategy:  string(res.Strategy),
		Equal:     res.Equal,
		Options: DocumentOptions{
			ExcludeEmptyLines: res.Options.ExcludeEmptyLines,
		},
		Events: []DocumentEvent{},
	}

	if res.Options.Range != nil {
		doc.Options.From = res.Options.Range.From
		doc.Options.To = res.Options.Range.To
	}

	if res.Report == nil {
		return doc
	}

	doc.Summary.Matches = res.Report.Matched()
	doc.Summary.Mismatches = res.Report.Mismatches()

	if ev, ok := res.Report.Exhaustion(); ok {
		doc.Summary.Exhausted = ev.Kind.String()
	}

	for _, ev := range res.Report.Events {
		if ev.Kind == linecmp.KindMatch && !showMatches {
			continue
		}

		doc.Events = append(doc.Events, DocumentEvent{
			Kind:     ev.Kind.String(),
			Position: ev.Position,
			Left:     ev.Left,
			Right:    ev.Right,
			Tail:     ev.Tail,
		})
	}

	return doc
}
