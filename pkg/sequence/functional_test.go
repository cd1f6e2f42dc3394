package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	t.Run("Collect", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, From([]int{1, 2, 3}).Collect())
		require.Nil(t, From([]int(nil)).Collect())
	})

	t.Run("Filter", func(t *testing.T) {
		got := From([]int{1, 2, 3, 4, 5}).
			Filter(func(v int) bool { return v%2 == 1 }).
			Collect()
		require.Equal(t, []int{1, 3, 5}, got)
	})

	t.Run("FilterIsReusable", func(t *testing.T) {
		it := From([]int{1, 2, 3}).Filter(func(v int) bool { return v > 1 })
		require.Equal(t, []int{2, 3}, it.Collect())
		require.Equal(t, []int{2, 3}, it.Collect())
	})

	t.Run("Each", func(t *testing.T) {
		sum := 0
		From([]int{1, 2, 3}).Each(func(v int) { sum += v })
		require.Equal(t, 6, sum)
	})

	t.Run("Find", func(t *testing.T) {
		v, ok := From([]string{"a", "bb", "ccc"}).Find(func(s string) bool { return len(s) == 2 })
		require.True(t, ok)
		require.Equal(t, "bb", v)

		_, ok = From([]string{"a"}).Find(func(s string) bool { return len(s) == 2 })
		require.False(t, ok)
	})

	t.Run("Any", func(t *testing.T) {
		require.True(t, From([]int{1, 2}).Any(func(v int) bool { return v == 2 }))
		require.False(t, From([]int{1, 2}).Any(func(v int) bool { return v == 3 }))
	})

	t.Run("Count", func(t *testing.T) {
		require.Equal(t, 3, From([]int{1, 2, 3}).Count())
		require.Equal(t, 0, From([]int{}).Count())
	})

	t.Run("Enumerate", func(t *testing.T) {
		var idxs []int
		var vals []string
		for i, v := range From([]string{"x", "y"}).Enumerate() {
			idxs = append(idxs, i)
			vals = append(vals, v)
		}
		require.Equal(t, []int{0, 1}, idxs)
		require.Equal(t, []string{"x", "y"}, vals)
	})

	t.Run("Pull", func(t *testing.T) {
		next, stop := From([]int{7, 8}).Pull()
		defer stop()

		v, ok := next()
		require.True(t, ok)
		require.Equal(t, 7, v)
		v, ok = next()
		require.True(t, ok)
		require.Equal(t, 8, v)
		_, ok = next()
		require.False(t, ok)
	})

	t.Run("SeqEarlyStop", func(t *testing.T) {
		var seen []int
		for v := range From([]int{1, 2, 3}).Seq() {
			seen = append(seen, v)
			if v == 2 {
				break
			}
		}
		require.Equal(t, []int{1, 2}, seen)
	})
}
