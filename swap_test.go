package socow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapInlineWithShared(t *testing.T) {
	a := Of[[4]int](1, 2)
	b := New[int, [4]int]()
	pushAll(t, b, seq(6)...)
	other, err := b.Clone()
	require.NoError(t, err)
	require.Equal(t, 2, b.RefCount())

	a.Swap(b)

	require.False(t, a.IsSmall())
	require.Equal(t, seq(6), a.View())
	require.Equal(t, 9, a.Cap())
	require.True(t, a.Aliases(other))
	require.Equal(t, 2, a.RefCount())

	require.True(t, b.IsSmall())
	require.Equal(t, []int{1, 2}, b.View())
	require.Equal(t, 4, b.Cap())
	require.Equal(t, 0, b.RefCount())

	// and back again from the other side
	a.Swap(b)
	require.Equal(t, []int{1, 2}, a.View())
	require.True(t, a.IsSmall())
	require.True(t, b.Aliases(other))
}

func TestSwapInlineWithInline(t *testing.T) {
	for _, sizes := range [][2]int{{0, 0}, {0, 3}, {1, 3}, {4, 2}, {4, 4}} {
		a := Of[[4]int](seq(sizes[0])...)
		b := New[int, [4]int]()
		for i := 0; i < sizes[1]; i++ {
			pushAll(t, b, 10*(i+1))
		}
		wantA := append([]int{}, b.View()...)
		wantB := append([]int{}, a.View()...)

		a.Swap(b)

		require.Equal(t, wantA, append([]int{}, a.View()...))
		require.Equal(t, wantB, append([]int{}, b.View()...))
		require.True(t, a.IsSmall())
		require.True(t, b.IsSmall())
		// vacated slots are zeroed
		for i := b.Len(); i < 4; i++ {
			require.Zero(t, b.small()[i])
		}
		for i := a.Len(); i < 4; i++ {
			require.Zero(t, a.small()[i])
		}
	}
}

func TestSwapSharedWithShared(t *testing.T) {
	a := Of[[4]int](seq(5)...)
	b := Of[[4]int](seq(8)...)
	c, err := b.Clone()
	require.NoError(t, err)

	a.Swap(b)
	require.Equal(t, seq(8), a.View())
	require.Equal(t, seq(5), b.View())
	require.True(t, a.Aliases(c))
	require.Equal(t, 2, a.RefCount())
	require.Equal(t, 1, b.RefCount())
}

func TestSwapSelf(t *testing.T) {
	a := Of[[4]int](1, 2, 3)
	a.Swap(a)
	require.Equal(t, []int{1, 2, 3}, a.View())
}
