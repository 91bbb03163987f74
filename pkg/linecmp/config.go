package linecmp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is returned when a line range is empty or not 1-based.
var ErrInvalidRange = errors.New("invalid line range")

// Range selects source lines [From, To). Line numbers are 1-based and a zero
// To means "until the end".
type Range struct {
	From int
	To   int
}

// Contains reports whether the line number falls inside the range.
func (r Range) Contains(number int) bool {
	if number < r.From {
		return false
	}

	return r.To == 0 || number < r.To
}

// String renders the range as a half-open interval.
func (r Range) String() string {
	if r.To == 0 {
		return fmt.Sprintf("[%d, end)", r.From)
	}

	return fmt.Sprintf("[%d, %d)", r.From, r.To)
}

// Config controls the pre-filtering applied to both sequences before the walk.
type Config struct {
	// ExcludeEmptyLines drops lines that are empty or whitespace only.
	ExcludeEmptyLines bool

	// Range restricts both sequences to the given source lines. Nil keeps everything.
	Range *Range
}

// Validate checks the range bounds.
func (c Config) Validate() error {
	if c.Range == nil {
		return nil
	}

	if c.Range.From < 1 {
		return fmt.Errorf("%w: from must be at least 1, got %d", ErrInvalidRange, c.Range.From)
	}

	if c.Range.To != 0 && c.Range.To <= c.Range.From {
		return fmt.Errorf("%w: to (%d) must be greater than from (%d)", ErrInvalidRange, c.Range.To, c.Range.From)
	}

	return nil
}

// Filtering reports whether the config changes the sequences at all.
func (c Config) Filtering() bool {
	return c.ExcludeEmptyLines || c.Range != nil
}

// Apply returns the lines of seq that survive the range and empty-line
// filters. The input is never modified.
func (c Config) Apply(seq Sequence) Sequence {
	if !c.Filtering() {
		return seq
	}

	out := make(Sequence, 0, len(seq))

	for _, line := range seq {
		if c.Range != nil && !c.Range.Contains(line.Number) {
			continue
		}

		if c.ExcludeEmptyLines && strings.TrimSpace(line.Text) == "" {
			continue
		}

		out = append(out, line)
	}

	return out
}
