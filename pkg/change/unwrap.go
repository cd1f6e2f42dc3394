package change

// Unwrap expands one event that may carry several indices into an equivalent
// ordered list of events carrying exactly one index each. Replaying the list
// in order against the state the original event was recorded against produces
// the same result as applying the original event atomically.
//
// Delete indices address the pre-event array, so each step is shifted down by
// the deletes already applied before it in the list. Insert indices address
// the post-event array, so each step is shifted down by the inserts that are
// still pending after it in the list. Updates need no correction. Reset, Move
// and batch delimiters already carry at most one position and pass through.
func Unwrap(e Event) []Event {
	switch e.Kind {
	case KindDeletes:
		out := make([]Event, 0, len(e.Indices))
		for k, idx := range e.Indices {
			corrected := idx
			for _, prior := range e.Indices[:k] {
				if prior < idx {
					corrected--
				}
			}
			out = append(out, NewDeletes(corrected))
		}
		return out
	case KindInserts:
		out := make([]Event, 0, len(e.Indices))
		for k, idx := range e.Indices {
			corrected := idx
			for _, pending := range e.Indices[k+1:] {
				if pending < idx {
					corrected--
				}
			}
			out = append(out, NewInserts(corrected))
		}
		return out
	case KindUpdates:
		out := make([]Event, 0, len(e.Indices))
		for _, idx := range e.Indices {
			out = append(out, NewUpdates(idx))
		}
		return out
	default:
		return []Event{e}
	}
}

// UnwrapAll unwraps every event of a recorded stream, preserving order.
func UnwrapAll(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, Unwrap(e)...)
	}
	return out
}
