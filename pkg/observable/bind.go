package observable

import (
	"github.com/sphw/bond/pkg/change"
)

// Bind subscribes dst to src's event stream and re-applies every event to
// dst verbatim, so dst's own observers see the same incremental script that
// src emitted. dst is first reset to src's current snapshot. The binding
// lives until the returned subscription is cancelled; cancel it before
// tearing down either side.
func Bind[T any](src, dst *List[T]) *Subscription {
	return src.Observe(func(e Event[T]) {
		dst.apply(e.Change, e.Items)
	})
}

// apply mutates the backing array according to one event of another list
// and re-emits the event unchanged. source is the emitting list's snapshot
// after the event, which supplies element values for inserts and updates.
func (l *List[T]) apply(ev change.Event, source []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch ev.Kind {
	case change.KindReset:
		l.items = append([]T(nil), source...)
	case change.KindInserts:
		// Indices address the source's post-event array; applying them in
		// unwrapped order keeps every intermediate step in bounds.
		for _, step := range change.Unwrap(ev) {
			at := step.Indices[0]
			var v T
			if at < len(source) {
				v = source[at]
			}
			l.items = append(l.items, v)
			copy(l.items[at+1:], l.items[at:])
			l.items[at] = v
		}
	case change.KindDeletes:
		for _, step := range change.Unwrap(ev) {
			at := step.Indices[0]
			if at >= 0 && at < len(l.items) {
				l.items = append(l.items[:at], l.items[at+1:]...)
			}
		}
	case change.KindUpdates:
		for _, idx := range ev.Indices {
			if idx >= 0 && idx < len(l.items) && idx < len(source) {
				l.items[idx] = source[idx]
			}
		}
	case change.KindMove:
		from, to := ev.From, ev.To
		if from >= 0 && from < len(l.items) && to >= 0 && to < len(l.items) {
			v := l.items[from]
			l.items = append(l.items[:from], l.items[from+1:]...)
			l.items = append(l.items, v)
			copy(l.items[to+1:], l.items[to:])
			l.items[to] = v
		}
	}
	l.emit(ev)
}
