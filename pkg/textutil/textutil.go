// Package textutil provides byte-level text utilities: UTF-8 text sniffing
// and line counting.
package textutil

import (
	"bytes"
	"unicode/utf8"
)

// TextSniffLength is the number of leading bytes inspected to decide whether
// a file holds text.
const TextSniffLength = 32

// IsText returns true if sample is valid UTF-8. Empty and pure ASCII samples
// are text. A multi-byte rune cut off at the end of the sample makes it binary.
func IsText(sample []byte) bool {
	return utf8.Valid(sample)
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}
