package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadForKernel(t *testing.T) {
	g := Grid{{1, 2, 3}, {4, 5, 6}}
	for _, size := range []int{1, 3, 5, 7} {
		padded, err := PadForKernel(g, size)
		require.NoError(t, err)
		r := size / 2

		assert.Equal(t, g.Height()+size-1, padded.Height())
		assert.Equal(t, g.Width()+size-1, padded.Width())
		for y := range padded {
			for x := range padded[y] {
				inside := y >= r && y < r+g.Height() && x >= r && x < r+g.Width()
				if inside {
					assert.Equal(t, g[y-r][x-r], padded[y][x])
				} else {
					assert.Zero(t, padded[y][x])
				}
			}
		}
	}
	assert.Equal(t, Grid{{1, 2, 3}, {4, 5, 6}}, g)
}

func TestPadErrors(t *testing.T) {
	_, err := Pad(Grid{}, 1)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Pad(Grid{{1}}, -1)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)

	_, err = PadForKernel(Grid{{1}}, 2)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)

	_, err = PadForKernel(Grid{{1}}, 0)
	assert.ErrorIs(t, err, ErrInvalidKernelSize)
}
