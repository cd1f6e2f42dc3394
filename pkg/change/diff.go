package change

// Diff computes a batch of events that transforms prev into next, for
// producers that only hold before/after snapshots. The script is a minimal
// set of deletes (prev coordinates, descending) and inserts (next
// coordinates, ascending) wrapped in batch delimiters. A nil result means
// the snapshots are equal.
func Diff[T comparable](prev, next []T) []Event {
	return DiffFunc(prev, next, func(a, b T) bool { return a == b })
}

// DiffFunc is Diff with a caller-supplied equality comparison.
func DiffFunc[T any](prev, next []T, eq func(a, b T) bool) []Event {
	n, m := len(prev), len(next)

	// lcs[i][j] holds the length of the longest common subsequence of
	// prev[i:] and next[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if eq(prev[i], next[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var deletes, inserts []int
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && eq(prev[i], next[j]):
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			deletes = append(deletes, i)
			i++
		default:
			inserts = append(inserts, j)
			j++
		}
	}

	if len(deletes) == 0 && len(inserts) == 0 {
		return nil
	}

	out := []Event{NewBeginBatch()}
	if len(deletes) > 0 {
		// Descending, so the set replays against prev one step at a time.
		for a, b := 0, len(deletes)-1; a < b; a, b = a+1, b-1 {
			deletes[a], deletes[b] = deletes[b], deletes[a]
		}
		out = append(out, NewDeletes(deletes...))
	}
	if len(inserts) > 0 {
		out = append(out, NewInserts(inserts...))
	}
	return append(out, NewEndBatch())
}

// Differ turns a stream of full snapshots into a stream of event batches.
// The first snapshot yields a single Reset; every later one yields the edit
// script from its predecessor, or nothing when the snapshots are equal.
type Differ[T comparable] struct {
	prev   []T
	primed bool
}

// Push records the next snapshot and returns the events it implies. The
// differ keeps its own copy of the snapshot.
func (d *Differ[T]) Push(snapshot []T) []Event {
	next := append([]T(nil), snapshot...)
	if !d.primed {
		d.prev = next
		d.primed = true
		return []Event{NewReset()}
	}
	events := Diff(d.prev, next)
	d.prev = next
	return events
}
