package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New[int](0).Cap())
	assert.Equal(t, DefaultCapacity, New[int](-3).Cap())
	assert.Equal(t, 3, New[int](3).Cap())
}

func TestItemsEmpty(t *testing.T) {
	w := New[int](DefaultCapacity)

	items := w.Items()
	require.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 0, w.Len())
}

func TestEnqueueEvictsOldest(t *testing.T) {
	w := New[int](8)
	for i := 1; i <= 9; i++ {
		w.Enqueue(i)
	}

	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9}, w.Items())
	assert.Equal(t, 8, w.Len())
}

func TestEnqueueWrapsManyTimes(t *testing.T) {
	w := New[int](3)
	for i := 1; i <= 20; i++ {
		w.Enqueue(i)
		want := make([]int, 0, 3)
		for j := max(1, i-2); j <= i; j++ {
			want = append(want, j)
		}
		require.Equal(t, want, w.Items(), "after enqueue %d", i)
	}
}

func TestCapacityOne(t *testing.T) {
	w := New[string](1)
	w.Enqueue("a")
	w.Enqueue("b")

	assert.Equal(t, []string{"b"}, w.Items())
}

func TestDequeueResetsMarkers(t *testing.T) {
	w := New[int](2)
	w.Enqueue(1)
	w.Enqueue(2)

	v, ok := w.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = w.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	assert.Equal(t, empty, w.head)
	assert.Equal(t, empty, w.tail)

	_, ok = w.Dequeue()
	assert.False(t, ok)

	w.Enqueue(3)
	assert.Equal(t, []int{3}, w.Items())
}

func TestItemsIsSnapshot(t *testing.T) {
	w := New[int](4)
	w.Enqueue(1)
	w.Enqueue(2)

	snapshot := w.Items()
	snapshot[0] = 100
	w.Enqueue(3)

	assert.Equal(t, []int{100, 2}, snapshot)
	assert.Equal(t, []int{1, 2, 3}, w.Items())
}

func TestReset(t *testing.T) {
	w := New[int](4)
	for i := 1; i <= 6; i++ {
		w.Enqueue(i)
	}

	w.Reset([]int{10, 20})
	assert.Equal(t, []int{10, 20}, w.Items())

	w.Reset([]int{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []int{3, 4, 5, 6}, w.Items())
	assert.Equal(t, 4, w.Len())

	w.Reset(nil)
	assert.Empty(t, w.Items())
	assert.Equal(t, empty, w.head)
}
