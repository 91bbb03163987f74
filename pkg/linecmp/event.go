package linecmp

// Kind identifies the variant of an Event.
type Kind int

// Event kinds.
const (
	// KindMatch marks a position where both lines are identical.
	KindMatch Kind = iota
	// KindMismatch marks a position where the lines differ.
	KindMismatch
	// KindLeftExhausted marks the position where the left sequence ended
	// while the right one still had lines.
	KindLeftExhausted
	// KindRightExhausted is the mirror of KindLeftExhausted.
	KindRightExhausted
)

var kindNames = [...]string{
	KindMatch:          "match",
	KindMismatch:       "mismatch",
	KindLeftExhausted:  "left_exhausted",
	KindRightExhausted: "right_exhausted",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Event is one unit of comparator output.
//
// Field usage per kind:
//   - KindMatch, KindMismatch: Left and Right hold the paired lines.
//   - KindLeftExhausted: Tail holds the remaining right lines, Left is nil.
//   - KindRightExhausted: Tail holds the remaining left lines, Right is nil.
type Event struct {
	Kind     Kind
	Position int
	Left     *Line
	Right    *Line
	Tail     Sequence
}

// Report is the ordered list of events produced by one comparison.
type Report struct {
	Events []Event
}

// Equal reports whether both sequences were consumed without a mismatch and
// without either side running out first.
func (r *Report) Equal() bool {
	for idx := range r.Events {
		if r.Events[idx].Kind != KindMatch {
			return false
		}
	}

	return true
}

// Differences returns every event that is not a match, in order.
func (r *Report) Differences() []Event {
	var diffs []Event

	for idx := range r.Events {
		if r.Events[idx].Kind != KindMatch {
			diffs = append(diffs, r.Events[idx])
		}
	}

	return diffs
}

// Matched returns the number of matching positions.
func (r *Report) Matched() int {
	return r.count(KindMatch)
}

// Mismatches returns the number of mismatching positions.
func (r *Report) Mismatches() int {
	return r.count(KindMismatch)
}

// Exhaustion returns the exhaustion event, if one of the sequences ran out
// before the other.
func (r *Report) Exhaustion() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}

	last := r.Events[len(r.Events)-1]
	if last.Kind == KindLeftExhausted || last.Kind == KindRightExhausted {
		return last, true
	}

	return Event{}, false
}

func (r *Report) count(kind Kind) int {
	total := 0

	for idx := range r.Events {
		if r.Events[idx].Kind == kind {
			total++
		}
	}

	return total
}
