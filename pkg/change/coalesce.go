package change

import "sort"

// Coalesce rewrites a time-ordered trace of single-index events, each
// recorded against the collection state of its own moment, into one batch
// whose indices share a single coordinate system: deletes and move sources
// against the pre-trace array, inserts and move targets against the
// post-trace array. Events cancelled out by later ones are dropped, and the
// surviving events are ordered so the batch replays cleanly (deletes by
// descending index, then inserts ascending, then updates, then moves).
//
// Every trace entry keeps its as-recorded index for pair comparison and a
// separate output index. A later event is rewound newest-first through the
// as-recorded indices of everything before it, so each interaction happens
// in the coordinate system the earlier event was recorded in; meanwhile the
// output indices of earlier inserts and move targets drift toward post-trace
// coordinates as later events land below them. Cancelled entries stay in the
// trace, since rewinding through them is still part of the history.
//
// Two interactions are not representable as incremental changes: a move
// recorded after any other event, and an update whose index is entangled
// with a moved element. When either occurs, or the trace contains a Reset,
// the whole batch collapses to a single Reset. That preserves the final
// state and sacrifices only incrementality; it is the documented escape
// valve, not an error.
//
// Batch delimiters in the input carry no indices and are skipped.
func Coalesce(events []Event) []Event {
	ops := make([]traceOp, 0, len(events))
	for _, e := range events {
		switch e.Kind {
		case KindBeginBatch, KindEndBatch:
			continue
		case KindReset:
			return []Event{NewReset()}
		}
		if e.IsNoOp() {
			continue
		}
		ops = append(ops, newTraceOp(e))
	}

	for i := 1; i < len(ops); i++ {
		if ops[i].kind == KindMove {
			// A move recorded after any other event cannot be reordered
			// safely.
			return []Event{NewReset()}
		}
		if !rewind(ops, i) {
			return []Event{NewReset()}
		}
	}

	out := make([]Event, 0, len(ops))
	for _, op := range ops {
		if op.dropped {
			continue
		}
		switch op.kind {
		case KindDeletes:
			out = append(out, NewDeletes(op.out))
		case KindInserts:
			out = append(out, NewInserts(op.out))
		case KindUpdates:
			out = append(out, NewUpdates(op.out))
		case KindMove:
			out = append(out, NewMove(op.from, op.to))
		}
	}
	normalize(out)
	return out
}

// traceOp is one recorded event carrying both its as-recorded index, which
// pair comparisons read and which never changes, and its output index,
// which converges to the batch coordinate system.
type traceOp struct {
	kind    Kind
	rec     int // as-recorded index; for a move, the recorded target
	out     int // output index
	from    int // move source, already in pre-trace coordinates
	to      int // move target output
	dropped bool
}

func newTraceOp(e Event) traceOp {
	if e.Kind == KindMove {
		return traceOp{kind: KindMove, rec: e.To, from: e.From, to: e.To}
	}
	return traceOp{kind: e.Kind, rec: e.Indices[0], out: e.Indices[0]}
}

// rewind maps ops[i]'s index back through every earlier event, newest first,
// applying the pair interactions along the way: cancellations, the upward
// shift past earlier removals, and the drift of earlier insert and move
// target outputs. It reports false when the pair is not representable and
// the batch must collapse to Reset.
func rewind(ops []traceOp, i int) bool {
	op := &ops[i]
	cursor := op.rec
	for j := i - 1; j >= 0; j-- {
		e := &ops[j]
		switch e.kind {
		case KindDeletes:
			// An earlier removal, cancelled or not, shifts this position up
			// into the coordinates it was recorded in.
			if cursor >= e.rec {
				cursor++
			}
		case KindInserts:
			switch op.kind {
			case KindDeletes:
				if !e.dropped && cursor == e.rec {
					// The delete removes exactly the element this insert
					// produced; both vanish from the output.
					e.dropped = true
					op.dropped = true
					return true
				}
				if cursor > e.rec {
					cursor--
				} else if !e.dropped {
					e.out--
				}
			case KindInserts:
				if cursor > e.rec {
					cursor--
				} else if !e.dropped {
					e.out++
				}
			case KindUpdates:
				if !e.dropped && cursor == e.rec {
					// Updating a freshly inserted element folds into the
					// insert; replay reads the final value anyway.
					op.dropped = true
					return true
				}
				if cursor > e.rec {
					cursor--
				}
			}
		case KindUpdates:
			switch op.kind {
			case KindDeletes:
				if !e.dropped && cursor == e.rec {
					e.dropped = true
				}
			case KindUpdates:
				if !e.dropped && cursor == e.rec {
					op.dropped = true
					return true
				}
			}
		case KindMove:
			// A surviving move is always the oldest event in the trace, so
			// nothing reads the cursor after this step.
			switch op.kind {
			case KindDeletes:
				if !e.dropped && cursor == e.rec {
					// Deleting the moved element folds both into a delete at
					// the element's origin.
					e.dropped = true
					cursor = e.from
					break
				}
				if !e.dropped && cursor < e.rec {
					e.to--
				}
				if e.from <= cursor && cursor < e.rec {
					cursor++
				}
			case KindInserts:
				if !e.dropped && cursor <= e.rec {
					e.to++
				}
			case KindUpdates:
				if e.dropped {
					if e.from <= cursor && cursor < e.rec {
						cursor++
					}
					break
				}
				if cursor == e.from {
					return false
				}
				remapped := cursor
				if remapped >= e.from {
					remapped++
				}
				if remapped >= e.rec {
					remapped--
				}
				if remapped == e.rec {
					return false
				}
				cursor = remapped
			}
		}
	}
	if op.kind == KindDeletes || op.kind == KindUpdates {
		op.out = cursor
	}
	return true
}

// rank fixes the replay order of a coalesced batch.
func rank(k Kind) int {
	switch k {
	case KindDeletes:
		return 0
	case KindInserts:
		return 1
	case KindUpdates:
		return 2
	default:
		return 3
	}
}

func normalize(events []Event) {
	sort.SliceStable(events, func(a, b int) bool {
		ea, eb := events[a], events[b]
		if ra, rb := rank(ea.Kind), rank(eb.Kind); ra != rb {
			return ra < rb
		}
		switch ea.Kind {
		case KindDeletes:
			return ea.Indices[0] > eb.Indices[0]
		case KindInserts, KindUpdates:
			return ea.Indices[0] < eb.Indices[0]
		default:
			return false
		}
	})
}
