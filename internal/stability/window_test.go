package stability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ts(n int) time.Time {
	return base.Add(time.Duration(n) * time.Minute)
}

func TestWindow_PushAndLen(t *testing.T) {
	w := NewWindow(5)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 5, w.Cap())

	w.Push(ts(1))
	assert.Equal(t, 1, w.Len())

	w.Push(ts(2))
	w.Push(ts(3))
	assert.Equal(t, 3, w.Len())
	assert.False(t, w.Saturated())
}

func TestWindow_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultWindowSize, NewWindow(0).Cap())
	assert.Equal(t, DefaultWindowSize, NewWindow(-3).Cap())
}

func TestWindow_EvictsOldest(t *testing.T) {
	w := NewWindow(3)

	w.Push(ts(1))
	w.Push(ts(2))
	w.Push(ts(3))
	require.True(t, w.Saturated())

	w.Push(ts(4))
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []time.Time{ts(2), ts(3), ts(4)}, w.Values())

	w.Push(ts(5))
	assert.Equal(t, []time.Time{ts(3), ts(4), ts(5)}, w.Values())
}

func TestWindow_NeverExceedsCapacity(t *testing.T) {
	for capacity := 1; capacity <= 7; capacity++ {
		w := NewWindow(capacity)
		for i := 0; i < 50; i++ {
			w.Push(ts(i % 4))
			assert.LessOrEqual(t, w.Len(), capacity)
		}
		assert.Equal(t, capacity, w.Len())
	}
}

func TestWindow_Newest(t *testing.T) {
	w := NewWindow(2)
	_, ok := w.Newest()
	assert.False(t, ok)

	w.Push(ts(1))
	w.Push(ts(2))
	w.Push(ts(3))
	newest, ok := w.Newest()
	require.True(t, ok)
	assert.Equal(t, ts(3), newest)
}

func TestWindow_Homogeneous(t *testing.T) {
	w := NewWindow(3)
	assert.False(t, w.Homogeneous(), "empty window")

	w.Push(ts(1))
	w.Push(ts(1))
	assert.True(t, w.Homogeneous())

	w.Push(ts(2))
	assert.False(t, w.Homogeneous())
}

func TestWindow_HomogeneousComparesInstants(t *testing.T) {
	w := NewWindow(2)
	utc := ts(1)
	w.Push(utc)
	w.Push(utc.In(time.FixedZone("UTC+2", 2*60*60)))

	assert.True(t, w.Homogeneous())
}

func TestWindow_ValuesIsCopy(t *testing.T) {
	w := NewWindow(2)
	w.Push(ts(1))

	vals := w.Values()
	vals[0] = ts(9)

	assert.Equal(t, []time.Time{ts(1)}, w.Values())
}
