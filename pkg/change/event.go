// Package change defines the vocabulary of ordered-collection mutations and
// the algorithms that operate on streams of them: unwrapping multi-index
// events into single-index steps, coalescing a recorded mutation trace into
// one index-consistent batch, and diffing two snapshots into a batch.
//
// Index conventions for a coalesced batch: delete indices and a move's From
// address the pre-batch array, insert indices and a move's To address the
// post-batch array, so a consumer applies removals in descending index order
// first and insertions in ascending order after.
package change

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Kind identifies the variant of a change event.
type Kind uint8

const (
	KindReset Kind = iota
	KindInserts
	KindDeletes
	KindUpdates
	KindMove
	KindBeginBatch
	KindEndBatch
)

// String returns the kind's wire-friendly name.
func (k Kind) String() string {
	switch k {
	case KindReset:
		return "reset"
	case KindInserts:
		return "inserts"
	case KindDeletes:
		return "deletes"
	case KindUpdates:
		return "updates"
	case KindMove:
		return "move"
	case KindBeginBatch:
		return "beginBatch"
	case KindEndBatch:
		return "endBatch"
	default:
		return "unknown"
	}
}

// Event is a single collection mutation or batch delimiter. It is pure data:
// Indices carries the positions for Inserts, Deletes and Updates; From and To
// carry the endpoints of a Move. Events do not carry elements; consumers read
// them from the snapshot the event was emitted against.
type Event struct {
	Kind    Kind
	Indices []int
	From    int
	To      int
}

// noMove marks the endpoints of a Move that has been cancelled out.
const noMove = -1

func NewReset() Event      { return Event{Kind: KindReset, From: noMove, To: noMove} }
func NewBeginBatch() Event { return Event{Kind: KindBeginBatch, From: noMove, To: noMove} }
func NewEndBatch() Event   { return Event{Kind: KindEndBatch, From: noMove, To: noMove} }

func NewInserts(indices ...int) Event {
	return Event{Kind: KindInserts, Indices: indices, From: noMove, To: noMove}
}

func NewDeletes(indices ...int) Event {
	return Event{Kind: KindDeletes, Indices: indices, From: noMove, To: noMove}
}

func NewUpdates(indices ...int) Event {
	return Event{Kind: KindUpdates, Indices: indices, From: noMove, To: noMove}
}

func NewMove(from, to int) Event {
	return Event{Kind: KindMove, From: from, To: to}
}

// IsNoOp reports whether the event carries no effect: an index event whose
// index set is empty, or a move whose endpoints have been cancelled.
func (e Event) IsNoOp() bool {
	switch e.Kind {
	case KindInserts, KindDeletes, KindUpdates:
		return len(e.Indices) == 0
	case KindMove:
		return e.From < 0 || e.To < 0
	default:
		return false
	}
}

// Equal reports structural equality: same variant and same payload. Index
// payloads compare as sets, so NewInserts(1, 3) equals NewInserts(3, 1).
func (e Event) Equal(o Event) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case KindInserts, KindDeletes, KindUpdates:
		a := mapset.NewThreadUnsafeSet(e.Indices...)
		b := mapset.NewThreadUnsafeSet(o.Indices...)
		return a.Equal(b)
	case KindMove:
		return e.From == o.From && e.To == o.To
	default:
		return true
	}
}

// String renders the event for logs and test failures.
func (e Event) String() string {
	switch e.Kind {
	case KindInserts, KindDeletes, KindUpdates:
		parts := make([]string, len(e.Indices))
		for i, idx := range e.Indices {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		return fmt.Sprintf("%s(%s)", e.Kind, strings.Join(parts, ","))
	case KindMove:
		return fmt.Sprintf("move(%d->%d)", e.From, e.To)
	default:
		return e.Kind.String()
	}
}

// clone returns a copy whose index payload does not alias the receiver's.
func (e Event) clone() Event {
	if e.Indices != nil {
		e.Indices = append([]int(nil), e.Indices...)
	}
	return e
}
