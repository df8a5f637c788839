package tga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestination(t *testing.T) {
	type point struct{ x, y int }

	tables := []struct {
		origin Origin
		w, h   int
		want   []point
	}{
		{LowerLeft, 3, 2, []point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}},
		{UpperLeft, 3, 2, []point{{0, 1}, {1, 1}, {2, 1}, {0, 0}, {1, 0}, {2, 0}}},
		{UpperRight, 3, 2, []point{{2, 1}, {1, 1}, {0, 1}, {2, 0}, {1, 0}, {0, 0}}},
		{LowerRight, 2, 2, []point{{1, 0}, {0, 0}, {1, 1}, {0, 1}}},
		// Rows advance every h pixels rather than every w
		{LowerRight, 2, 3, []point{{1, 0}, {0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 1}}},
	}

	for _, table := range tables {
		t.Run(table.origin.String(), func(t *testing.T) {
			for i, want := range table.want {
				x, y := destination(i, table.w, table.h, table.origin)
				assert.Equal(t, want, point{x, y}, "pixel %d", i)
			}
		})
	}
}

func TestPixelWriter(t *testing.T) {
	pw := newPixelWriter(2, 2, UpperLeft, RGBA32)
	require.Len(t, pw.pix, 16)

	require.NoError(t, pw.write(0, 0x44332211))
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, pw.pix[8:12])

	pw = newPixelWriter(2, 1, LowerLeft, RGB24)
	require.NoError(t, pw.write(1, 0x44332211))
	assert.Equal(t, []byte{0, 0, 0, 0x11, 0x22, 0x33}, pw.pix)
}

func TestPixelWriterOutOfBounds(t *testing.T) {
	pw := newPixelWriter(3, 2, LowerRight, RGB24)
	for i := 0; i < 4; i++ {
		require.NoError(t, pw.write(i, 0))
	}
	assert.Equal(t, BadDimensions, KindOf(pw.write(4, 0)))
}
