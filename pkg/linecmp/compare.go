package linecmp

// Comparator walks two sequences position by position after applying its
// Config to both of them.
type Comparator struct {
	config Config
}

// NewComparator creates a Comparator. The config must be valid, see Config.Validate.
func NewComparator(config Config) *Comparator {
	return &Comparator{config: config}
}

// Config returns the comparator configuration.
func (c *Comparator) Config() Config {
	return c.config
}

// Compare filters both sequences and walks them. It never fails.
func (c *Comparator) Compare(left, right Sequence) Report {
	return Compare(c.config.Apply(left), c.config.Apply(right))
}

// Compare pairs the Nth line of left with the Nth line of right. Every pair
// produces a match or a mismatch event; the walk continues after mismatches.
// When one sequence runs out first a single exhaustion event carries the
// remaining lines of the other one and the walk stops.
func Compare(left, right Sequence) Report {
	events := make([]Event, 0, max(len(left), len(right)))

	position := 1
	li, ri := 0, 0

	for {
		leftDone := li >= len(left)
		rightDone := ri >= len(right)

		switch {
		case leftDone && rightDone:
			return Report{Events: events}
		case leftDone:
			events = append(events, Event{
				Kind:     KindLeftExhausted,
				Position: position,
				Tail:     right[ri:],
			})

			return Report{Events: events}
		case rightDone:
			events = append(events, Event{
				Kind:     KindRightExhausted,
				Position: position,
				Tail:     left[li:],
			})

			return Report{Events: events}
		}

		kind := KindMismatch
		if left[li].Text == right[ri].Text {
			kind = KindMatch
		}

		events = append(events, Event{
			Kind:     kind,
			Position: position,
			Left:     &left[li],
			Right:    &right[ri],
		})

		li++
		ri++
		position++
	}
}
