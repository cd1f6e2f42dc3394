package observable

import (
	"github.com/sphw/bond/internal/observability/log"
	"github.com/sphw/bond/pkg/change"
)

// Batch runs fn against a scratch copy of the list, records the raw events
// the scratch emits, and reconciles them into one index-consistent script.
// The list then adopts the scratch contents and emits BeginBatch, the
// coalesced events in order, EndBatch. When coalescing falls back to Reset,
// a single Reset is emitted instead; when the script is empty, nothing is
// emitted at all but the contents are still adopted, so cancelling edits
// never desynchronize the backing array from its observers.
//
// Nested Batch calls on the scratch flatten into the outer recording, so the
// emitted stream always carries exactly one delimiter pair. The list's lock
// is held for the whole duration, including fn and the coalescing pass.
func (l *List[T]) Batch(fn func(scratch *List[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()

	scratch := New[T](l.items...)
	var recorded []change.Event
	sub := scratch.Observe(func(e Event[T]) {
		recorded = append(recorded, e.Change)
	})
	recorded = recorded[:0] // discard the synthetic reset delivered on subscribe

	fn(scratch)
	_ = sub.Cancel()

	events := change.Coalesce(change.UnwrapAll(recorded))
	l.items = scratch.items

	switch {
	case len(events) == 0:
	case len(events) == 1 && events[0].Kind == change.KindReset:
		log.Provide().Debug("batch collapsed to reset",
			log.Int("recorded", len(recorded)))
		l.emit(change.NewReset())
	default:
		l.emit(change.NewBeginBatch())
		for _, ev := range events {
			l.emit(ev)
		}
		l.emit(change.NewEndBatch())
	}
}
