package socow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vec = Vector[int, [4]int]

func pushAll(t *testing.T, v *vec, xs ...int) {
	t.Helper()
	for _, x := range xs {
		require.NoError(t, v.PushBack(x))
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestZeroValue(t *testing.T) {
	var v vec
	require.True(t, v.IsSmall())
	require.True(t, v.Empty())
	require.Equal(t, 0, v.Len())
	require.Equal(t, 4, v.Cap())
	require.Equal(t, 0, v.RefCount())
	require.False(t, v.Shared())
}

func TestInlineThenPromote(t *testing.T) {
	v := New[int, [4]int]()
	for i := 1; i <= 4; i++ {
		require.NoError(t, v.PushBack(i))
		require.True(t, v.IsSmall())
		require.Equal(t, 4, v.Cap())
	}
	require.NoError(t, v.PushBack(5))
	require.False(t, v.IsSmall())
	require.Equal(t, 9, v.Cap())
	require.Equal(t, 1, v.RefCount())
	require.Equal(t, []int{1, 2, 3, 4, 5}, v.View())
}

func TestGrowthPolicy(t *testing.T) {
	v := New[int, [1]int]()
	caps := []int{}
	for i := 0; i < 32; i++ {
		require.NoError(t, v.PushBack(i))
		if len(caps) == 0 || caps[len(caps)-1] != v.Cap() {
			caps = append(caps, v.Cap())
		}
		require.LessOrEqual(t, v.Len(), v.Cap())
	}
	require.Equal(t, []int{1, 3, 7, 15, 31, 63}, caps)
}

func TestAccessors(t *testing.T) {
	v := Of[[4]int](10, 20, 30)
	require.Equal(t, 10, v.Front())
	require.Equal(t, 30, v.Back())
	require.Equal(t, 20, v.At(1))

	var got []int
	for i, x := range v.All() {
		require.Equal(t, v.At(i), x)
		got = append(got, x)
	}
	require.Equal(t, []int{10, 20, 30}, got)

	require.Panics(t, func() { v.At(3) })
	require.Panics(t, func() { New[int, [4]int]().Front() })
	require.Panics(t, func() { New[int, [4]int]().Back() })
}

func TestCollect(t *testing.T) {
	src := Of[[4]int](seq(7)...)
	v := Collect[[2]int](func(yield func(int) bool) {
		for _, x := range src.All() {
			if !yield(x * 2) {
				return
			}
		}
	})
	require.Equal(t, []int{2, 4, 6, 8, 10, 12, 14}, v.View())
}

func TestCloneSharesBuffer(t *testing.T) {
	a := Of[[4]int](seq(6)...)
	require.False(t, a.IsSmall())
	b, err := a.Clone()
	require.NoError(t, err)

	require.True(t, a.Aliases(b))
	require.Equal(t, 2, a.RefCount())
	require.Equal(t, 2, b.RefCount())
	require.True(t, a.Shared())
	require.Equal(t, a.View(), b.View())
	for i := 0; i < a.Len(); i++ {
		require.Equal(t, a.At(i), b.At(i))
	}
}

func TestCloneInlineCopies(t *testing.T) {
	a := Of[[4]int](1, 2, 3)
	b, err := a.Clone()
	require.NoError(t, err)
	require.True(t, b.IsSmall())
	require.False(t, a.Aliases(b))
	require.NoError(t, b.Set(0, 100))
	require.Equal(t, []int{1, 2, 3}, a.View())
	require.Equal(t, []int{100, 2, 3}, b.View())
}

func TestCopyOnWriteIsolation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(t *testing.T, b *vec)
	}{
		{"set", func(t *testing.T, b *vec) { require.NoError(t, b.Set(2, -1)) }},
		{"push", func(t *testing.T, b *vec) { require.NoError(t, b.PushBack(-1)) }},
		{"insert", func(t *testing.T, b *vec) { require.NoError(t, b.Insert(0, -1)) }},
		{"erase", func(t *testing.T, b *vec) { require.NoError(t, b.Erase(3)) }},
		{"erase range", func(t *testing.T, b *vec) { require.NoError(t, b.EraseRange(1, 5)) }},
		{"pop", func(t *testing.T, b *vec) { require.NoError(t, b.PopBack()) }},
		{"clear", func(t *testing.T, b *vec) { b.Clear() }},
		{"reserve", func(t *testing.T, b *vec) { require.NoError(t, b.Reserve(7)) }},
		{"shrink", func(t *testing.T, b *vec) { require.NoError(t, b.ShrinkToFit()) }},
		{"ref", func(t *testing.T, b *vec) {
			p, err := b.Ref(0)
			require.NoError(t, err)
			*p = -1
		}},
		{"data", func(t *testing.T, b *vec) {
			d, err := b.Data()
			require.NoError(t, err)
			for i := range d {
				d[i] = -d[i]
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := New[int, [4]int]()
			pushAll(t, a, seq(6)...)
			b, err := a.Clone()
			require.NoError(t, err)
			require.Equal(t, 2, a.RefCount())

			tc.mutate(t, b)

			require.Equal(t, seq(6), a.View())
			require.False(t, a.Aliases(b))
			require.Equal(t, 1, a.RefCount())
			require.LessOrEqual(t, b.Len(), b.Cap())
		})
	}
}

func TestMutableAccessUnsharesEvenForReads(t *testing.T) {
	a := Of[[4]int](seq(5)...)
	b, err := a.Clone()
	require.NoError(t, err)

	p, err := b.Ref(1)
	require.NoError(t, err)
	require.Equal(t, 2, *p)
	require.False(t, a.Aliases(b))

	// read access leaves sharing in place
	c, err := a.Clone()
	require.NoError(t, err)
	_ = c.At(1)
	_ = c.View()
	require.True(t, a.Aliases(c))
}

func TestCopyFromAndReassign(t *testing.T) {
	a := Of[[4]int](seq(6)...)
	b := Of[[4]int](7, 8)
	require.NoError(t, b.CopyFrom(a))
	require.True(t, a.Aliases(b))
	require.Equal(t, 2, a.RefCount())

	c := Of[[4]int](1)
	require.NoError(t, b.CopyFrom(c))
	require.Equal(t, 1, a.RefCount())
	require.Equal(t, []int{1}, b.View())

	require.NoError(t, a.CopyFrom(a))
	require.Equal(t, seq(6), a.View())
	require.Equal(t, 1, a.RefCount())
}

func TestMoveFrom(t *testing.T) {
	src := Of[[4]int](seq(6)...)
	keep, err := src.Clone()
	require.NoError(t, err)

	dst := Of[[4]int](9, 9)
	dst.MoveFrom(src)

	require.Equal(t, seq(6), dst.View())
	require.True(t, dst.Aliases(keep))
	require.Equal(t, 2, keep.RefCount())
	require.True(t, src.IsSmall())
	require.True(t, src.Empty())

	dst.MoveFrom(dst)
	require.Equal(t, seq(6), dst.View())
}

func TestInsertEraseRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 5, 9, 12} {
		for pos := 0; pos <= n; pos++ {
			for _, share := range []bool{false, true} {
				v := New[int, [4]int]()
				pushAll(t, v, seq(n)...)
				var keep *vec
				if share {
					var err error
					keep, err = v.Clone()
					require.NoError(t, err)
				}

				require.NoError(t, v.Insert(pos, -7))
				require.Equal(t, n+1, v.Len())
				require.Equal(t, -7, v.At(pos))
				require.NoError(t, v.Erase(pos))
				require.Equal(t, seq(n), append([]int{}, v.View()...), "n=%d pos=%d share=%v", n, pos, share)
				if keep != nil {
					require.Equal(t, seq(n), keep.View())
				}
			}
		}
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	v := Of[[4]int](1, 2, 4)
	require.NoError(t, v.Insert(2, 3))
	require.True(t, v.IsSmall())
	require.NoError(t, v.Insert(4, 5))
	require.NoError(t, v.Insert(0, 0))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, v.View())
}

func TestEraseRangeKeepsOrder(t *testing.T) {
	v := Of[[4]int](seq(10)...)
	require.NoError(t, v.EraseRange(2, 5))
	require.Equal(t, []int{1, 2, 6, 7, 8, 9, 10}, v.View())
	require.NoError(t, v.EraseRange(0, 0))
	require.NoError(t, v.EraseRange(5, 7))
	require.Equal(t, []int{1, 2, 6, 7, 8}, v.View())
	require.NoError(t, v.EraseRange(0, 5))
	require.True(t, v.Empty())
}

func TestOutOfRange(t *testing.T) {
	v := Of[[4]int](1, 2, 3)
	assert.ErrorIs(t, v.Insert(-1, 0), ErrOutOfRange)
	assert.ErrorIs(t, v.Insert(4, 0), ErrOutOfRange)
	assert.ErrorIs(t, v.Erase(3), ErrOutOfRange)
	assert.ErrorIs(t, v.EraseRange(2, 1), ErrOutOfRange)
	assert.ErrorIs(t, v.EraseRange(0, 4), ErrOutOfRange)
	assert.ErrorIs(t, v.Set(5, 0), ErrOutOfRange)
	_, err := v.Ref(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, v.Reserve(-1), ErrCapacity)
	require.Equal(t, []int{1, 2, 3}, v.View())

	var empty vec
	assert.ErrorIs(t, empty.PopBack(), ErrOutOfRange)
}

func TestReserve(t *testing.T) {
	v := Of[[4]int](1, 2)
	require.NoError(t, v.Reserve(3))
	require.True(t, v.IsSmall())

	require.NoError(t, v.Reserve(20))
	require.False(t, v.IsSmall())
	require.Equal(t, 20, v.Cap())
	require.Equal(t, []int{1, 2}, v.View())

	// a shared vector reserving beyond its length gets private storage even
	// without a capacity increase
	w := Of[[4]int](seq(6)...)
	x, err := w.Clone()
	require.NoError(t, err)
	require.NoError(t, x.Reserve(6))
	require.True(t, x.Aliases(w))
	require.NoError(t, x.Reserve(7))
	require.False(t, x.Aliases(w))
	require.Equal(t, 7, x.Cap())
	require.Equal(t, seq(6), x.View())
}

func TestShrinkToFit(t *testing.T) {
	v := New[int, [4]int]()
	pushAll(t, v, seq(5)...)
	require.Equal(t, 9, v.Cap())
	require.NoError(t, v.ShrinkToFit())
	require.Equal(t, 5, v.Cap())
	require.False(t, v.IsSmall())

	require.NoError(t, v.EraseRange(0, 2))
	require.NoError(t, v.ShrinkToFit())
	require.True(t, v.IsSmall())
	require.Equal(t, []int{3, 4, 5}, v.View())

	small := Of[[4]int](1)
	require.NoError(t, small.ShrinkToFit())
	require.Equal(t, 4, small.Cap())
}

func TestClear(t *testing.T) {
	v := Of[[4]int](seq(6)...)
	keep, err := v.Clone()
	require.NoError(t, err)
	v.Clear()
	require.True(t, v.IsSmall())
	require.True(t, v.Empty())
	require.Equal(t, 1, keep.RefCount())

	// an exclusive heap vector keeps its buffer
	keep.Clear()
	require.False(t, keep.IsSmall())
	require.Equal(t, 6, keep.Cap())
	require.NoError(t, keep.PushBack(1))
	require.Equal(t, []int{1}, keep.View())
}

func TestPopBack(t *testing.T) {
	v := Of[[4]int](seq(6)...)
	keep, err := v.Clone()
	require.NoError(t, err)
	require.NoError(t, v.PopBack())
	require.Equal(t, seq(5), v.View())
	require.Equal(t, seq(6), keep.View())
	require.Equal(t, 1, keep.RefCount())
	require.Equal(t, 1, v.RefCount())

	for !v.Empty() {
		require.NoError(t, v.PopBack())
	}
	require.Equal(t, 6, v.Cap())
}
