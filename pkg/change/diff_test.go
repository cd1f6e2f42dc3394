package change

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("Equal", func(t *testing.T) {
		require.Nil(t, Diff([]string{"a", "b"}, []string{"a", "b"}))
		require.Nil(t, Diff[string](nil, nil))
	})

	t.Run("InsertOnly", func(t *testing.T) {
		out := Diff([]string{"a", "c"}, []string{"a", "b", "c", "d"})
		require.Equal(t, []Event{
			NewBeginBatch(),
			NewInserts(1, 3),
			NewEndBatch(),
		}, out)
	})

	t.Run("DeleteOnly", func(t *testing.T) {
		out := Diff([]string{"a", "b", "c", "d"}, []string{"b", "d"})
		require.Equal(t, []Event{
			NewBeginBatch(),
			NewDeletes(2, 0),
			NewEndBatch(),
		}, out)
	})

	t.Run("Mixed", func(t *testing.T) {
		prev := []string{"a", "b", "c"}
		next := []string{"b", "x", "c", "y"}
		out := Diff(prev, next)
		require.Equal(t, KindBeginBatch, out[0].Kind)
		require.Equal(t, KindEndBatch, out[len(out)-1].Kind)
		got := replayBatch(t, prev, next, out[1:len(out)-1])
		require.Equal(t, next, got)
	})

	t.Run("FullReplacement", func(t *testing.T) {
		prev := []string{"a", "b"}
		next := []string{"x", "y", "z"}
		out := Diff(prev, next)
		got := replayBatch(t, prev, next, out[1:len(out)-1])
		require.Equal(t, next, got)
	})

	t.Run("ReplayProperty", func(t *testing.T) {
		cases := [][2][]string{
			{{"a"}, nil},
			{nil, {"a"}},
			{{"a", "b", "c", "d", "e"}, {"e", "d", "c", "b", "a"}},
			{{"x", "a", "x", "a"}, {"a", "x", "a", "x"}},
			{{"a", "b", "c"}, {"a", "q", "c"}},
		}
		for _, c := range cases {
			prev, next := c[0], c[1]
			out := Diff(prev, next)
			if out == nil {
				require.Equal(t, prev, next)
				continue
			}
			got := replayBatch(t, prev, next, out[1:len(out)-1])
			if len(next) == 0 {
				require.Empty(t, got)
			} else {
				require.Equal(t, next, got)
			}
		}
	})

	t.Run("DiffFunc", func(t *testing.T) {
		type row struct{ id, body string }
		prev := []row{{"1", "old"}, {"2", "keep"}}
		next := []row{{"2", "keep"}, {"3", "new"}}
		out := DiffFunc(prev, next, func(a, b row) bool { return a.id == b.id })
		require.Equal(t, []Event{
			NewBeginBatch(),
			NewDeletes(0),
			NewInserts(1),
			NewEndBatch(),
		}, out)
	})
}

func TestDiffer(t *testing.T) {
	var d Differ[int]

	out := d.Push([]int{1, 2, 3})
	require.Equal(t, []Event{NewReset()}, out)

	out = d.Push([]int{1, 2, 3})
	require.Nil(t, out)

	out = d.Push([]int{2, 3, 4})
	require.Equal(t, []Event{
		NewBeginBatch(),
		NewDeletes(0),
		NewInserts(2),
		NewEndBatch(),
	}, out)

	snapshot := []int{9, 9}
	out = d.Push(snapshot)
	snapshot[0] = 0 // differ must hold its own copy
	require.NotNil(t, out)
	out = d.Push([]int{9, 9})
	require.Nil(t, out)
}
