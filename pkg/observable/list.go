// Package observable provides a mutable ordered collection that notifies
// observers of incremental mutations instead of forcing full re-reads.
// Single mutations emit one change event each; Batch records an arbitrary
// mutation sequence and emits a coalesced, index-consistent script; Filter
// derives an observable subsequence; Bind replays one list's stream onto
// another.
//
// Every read-modify-emit sequence runs under the list's lock and observers
// are invoked synchronously while it is held. An observer callback must not
// call back into the same list's mutation API, and a Batch callback must
// mutate only the scratch list it is handed; either re-entry deadlocks.
package observable

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sphw/bond/pkg/change"
	"github.com/sphw/bond/pkg/sequence"
)

// Event pairs a change with the snapshot it was emitted against. Items is
// the list's backing array after the change was applied; observers must not
// mutate it.
type Event[T any] struct {
	Change change.Event
	Items  []T
}

// Observer receives every event of a list, in emission order.
type Observer[T any] func(Event[T])

// Subscription is a handle on one registered observer. Cancel and IsActive
// are safe to call from any goroutine.
type Subscription struct {
	id     string
	cancel func()
	active atomic.Bool
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string { return s.id }

// IsActive reports whether the observer is still registered.
func (s *Subscription) IsActive() bool { return s.active.Load() }

// Cancel unregisters the observer. Cancelling twice is harmless.
func (s *Subscription) Cancel() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.active.Store(false)
	return nil
}

// List is an observable ordered collection. The zero value is not usable;
// construct with New.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	observers map[string]Observer[T]
}

// New creates a list holding the given elements.
func New[T any](items ...T) *List[T] {
	return &List[T]{
		items:     append([]T(nil), items...),
		observers: make(map[string]Observer[T]),
	}
}

// Observe registers fn and synchronously delivers one synthetic Reset
// carrying the current snapshot before any live event.
func (l *List[T]) Observe(fn Observer[T]) *Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()
	l.observers[id] = fn
	sub := &Subscription{id: id}
	sub.active.Store(true)
	sub.cancel = func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.observers, id)
	}
	fn(Event[T]{Change: change.NewReset(), Items: l.items})
	return sub
}

// emit delivers one event to every observer. Callers hold l.mu.
func (l *List[T]) emit(ev change.Event) {
	for _, fn := range l.observers {
		fn(Event[T]{Change: ev, Items: l.items})
	}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the element at index i.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check(i)
	return l.items[i]
}

// Items returns a copy of the current snapshot.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Sequence returns an iterator over the current snapshot.
func (l *List[T]) Sequence() *sequence.Iterator[T] {
	return sequence.From(l.Items())
}

// Append adds v at the end.
func (l *List[T]) Append(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, v)
	l.emit(change.NewInserts(len(l.items) - 1))
}

// Insert places v at index at, shifting later elements up.
func (l *List[T]) Insert(at int, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkInsert(at)
	l.items = append(l.items, v)
	copy(l.items[at+1:], l.items[at:])
	l.items[at] = v
	l.emit(change.NewInserts(at))
}

// InsertAll places vs at index at, preserving their order.
func (l *List[T]) InsertAll(at int, vs []T) {
	if len(vs) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checkInsert(at)
	tail := append([]T(nil), l.items[at:]...)
	l.items = append(l.items[:at], vs...)
	l.items = append(l.items, tail...)
	indices := make([]int, len(vs))
	for i := range vs {
		indices[i] = at + i
	}
	l.emit(change.NewInserts(indices...))
}

// RemoveAt removes and returns the element at index i.
func (l *List[T]) RemoveAt(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check(i)
	v := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.emit(change.NewDeletes(i))
	return v
}

// RemoveLast removes and returns the final element.
func (l *List[T]) RemoveLast() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check(len(l.items) - 1)
	i := len(l.items) - 1
	v := l.items[i]
	l.items = l.items[:i]
	l.emit(change.NewDeletes(i))
	return v
}

// RemoveAll empties the list, reporting every pre-event index as deleted.
func (l *List[T]) RemoveAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return
	}
	indices := make([]int, len(l.items))
	for i := range indices {
		indices[i] = i
	}
	l.items = nil
	l.emit(change.NewDeletes(indices...))
}

// Set replaces the element at index i in place.
func (l *List[T]) Set(i int, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check(i)
	l.items[i] = v
	l.emit(change.NewUpdates(i))
}

// Move relocates the element at from so that it ends up at index to.
func (l *List[T]) Move(from, to int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.check(from)
	l.check(to)
	v := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items, v)
	copy(l.items[to+1:], l.items[to:])
	l.items[to] = v
	l.emit(change.NewMove(from, to))
}

// Replace swaps the whole contents and emits a single Reset.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T(nil), items...)
	l.emit(change.NewReset())
}

// ReplaceDiff swaps the whole contents and emits the minimal edit script
// between the old and new snapshots, bracketed as a batch. Nothing is
// emitted when the snapshots are equal under eq.
func (l *List[T]) ReplaceDiff(items []T, eq func(a, b T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := change.DiffFunc(l.items, items, eq)
	l.items = append([]T(nil), items...)
	for _, ev := range events {
		l.emit(ev)
	}
}

func (l *List[T]) check(i int) {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("observable: index %d out of range [0:%d)", i, len(l.items)))
	}
}

func (l *List[T]) checkInsert(i int) {
	if i < 0 || i > len(l.items) {
		panic(fmt.Sprintf("observable: insertion index %d out of range [0:%d]", i, len(l.items)))
	}
}
