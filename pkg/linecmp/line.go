// Package linecmp compares two line sequences with a strict positional walk:
// the Nth line of one sequence is paired with the Nth line of the other and
// no realignment is attempted after a mismatch.
package linecmp

import "strings"

// Line is a single line of text together with its 1-based line number in the
// content it was split from. Equality between lines only considers Text.
type Line struct {
	Number int    `json:"number" yaml:"number"`
	Text   string `json:"text"   yaml:"text"`
}

// Sequence is an ordered, immutable list of lines.
type Sequence []Line

// Split splits content on line terminators. A trailing "\r" is stripped from
// every line, a final unterminated fragment is kept as a line, and a final
// terminator does not produce a trailing empty line.
func Split(content string) Sequence {
	seq := make(Sequence, 0, strings.Count(content, "\n")+1)

	number := 0

	for raw := range strings.Lines(content) {
		number++

		text := strings.TrimSuffix(raw, "\n")
		text = strings.TrimSuffix(text, "\r")

		seq = append(seq, Line{Number: number, Text: text})
	}

	return seq
}

// FromStrings builds a sequence from already split lines, numbering them from 1.
func FromStrings(lines ...string) Sequence {
	seq := make(Sequence, len(lines))

	for idx, text := range lines {
		seq[idx] = Line{Number: idx + 1, Text: text}
	}

	return seq
}

// Texts returns the text of every line in order.
func (s Sequence) Texts() []string {
	texts := make([]string, len(s))

	for idx, line := range s {
		texts[idx] = line.Text
	}

	return texts
}
