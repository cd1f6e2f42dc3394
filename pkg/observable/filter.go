package observable

import (
	"github.com/sphw/bond/pkg/change"
	"github.com/sphw/bond/pkg/sequence"
)

// filterState translates source events into events for the derived
// subsequence of elements passing a predicate. It keeps two maps from
// source index to derived index: the one computed from the current source
// snapshot and the one frozen at the last non-batched boundary, so deletes
// (whose indices are pre-event) resolve against the state they were
// recorded in.
type filterState[T any] struct {
	derived *List[T]
	include func(T) bool
	prev    map[int]int
	inBatch bool
}

// Filter derives an observable list holding the elements that satisfy
// include, kept in sync with the source for as long as the returned
// subscription stays active. The predicate must be pure: membership is
// re-evaluated against every event's snapshot, and a predicate whose answer
// drifts between calls leaves the derived view undefined.
//
// A single source event may project to several derived events (an update
// can flip membership); those are wrapped in a synthesized delimiter pair.
func (l *List[T]) Filter(include func(T) bool) (*List[T], *Subscription) {
	f := &filterState[T]{include: include}
	sub := l.Observe(func(e Event[T]) {
		f.consume(e)
	})
	return f.derived, sub
}

func (f *filterState[T]) consume(e Event[T]) {
	cur := indexMap(e.Items, f.include)

	// The initial synthetic reset doubles as construction time.
	if f.derived == nil {
		f.derived = New[T](filtered(e.Items, f.include)...)
		f.prev = cur
		return
	}

	var out []change.Event
	switch e.Change.Kind {
	case change.KindInserts:
		var indices []int
		for _, idx := range e.Change.Indices {
			if d, ok := cur[idx]; ok {
				indices = append(indices, d)
			}
		}
		if len(indices) > 0 {
			out = append(out, change.NewInserts(indices...))
		}
	case change.KindDeletes:
		var indices []int
		for _, idx := range e.Change.Indices {
			if d, ok := f.prev[idx]; ok {
				indices = append(indices, d)
			}
		}
		if len(indices) > 0 {
			out = append(out, change.NewDeletes(indices...))
		}
	case change.KindUpdates:
		for _, idx := range e.Change.Indices {
			dc, inCur := cur[idx]
			dp, inPrev := f.prev[idx]
			switch {
			case inCur && inPrev:
				out = append(out, change.NewUpdates(dc))
			case inCur:
				out = append(out, change.NewInserts(dc))
			case inPrev:
				out = append(out, change.NewDeletes(dp))
			}
		}
	case change.KindMove:
		df, fromOK := cur[e.Change.From]
		dt, toOK := cur[e.Change.To]
		if fromOK && toOK {
			out = append(out, change.NewMove(df, dt))
		}
	case change.KindReset:
		f.inBatch = false
		out = append(out, change.NewReset())
	case change.KindBeginBatch:
		f.inBatch = true
		out = append(out, change.NewBeginBatch())
	case change.KindEndBatch:
		f.inBatch = false
		out = append(out, change.NewEndBatch())
	}

	wrap := len(out) > 1 && !f.inBatch
	f.derived.project(filtered(e.Items, f.include), out, wrap)

	if !f.inBatch {
		f.prev = cur
	}
}

// project adopts the freshly filtered snapshot and re-emits the derived
// events against it. Multi-event projections of a single non-batched source
// event arrive with wrap set and get a synthesized delimiter pair; events
// projected from inside a source batch do not, since the source's own
// delimiters already bracket them.
func (l *List[T]) project(items []T, events []change.Event, wrap bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	if wrap {
		l.emit(change.NewBeginBatch())
	}
	for _, ev := range events {
		l.emit(ev)
	}
	if wrap {
		l.emit(change.NewEndBatch())
	}
}

func indexMap[T any](items []T, include func(T) bool) map[int]int {
	m := make(map[int]int)
	next := 0
	for i, v := range items {
		if include(v) {
			m[i] = next
			next++
		}
	}
	return m
}

func filtered[T any](items []T, include func(T) bool) []T {
	return sequence.From(items).Filter(include).Collect()
}
