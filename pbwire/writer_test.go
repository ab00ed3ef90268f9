package pbwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpaceModeGrowsByExactIncrement(t *testing.T) {
	w := NewWriter(Space)
	require.Equal(t, 0, cap(w.buf))

	w.WriteFixed32(1) // forces a grow(4) from an empty buffer
	require.Equal(t, 4, cap(w.buf))

	w.WriteFixed64(2) // forces a grow(8): needs 4+8=12, has 0 spare
	require.Equal(t, 12, cap(w.buf))
}

func TestSpeedModeOverAllocatesBeyondImmediateNeed(t *testing.T) {
	w := NewWriter(Speed)
	require.Equal(t, speedChunk, cap(w.buf))

	for i := 0; i <= speedChunk; i++ {
		w.WriteFixed32(uint32(i))
	}
	// speedChunk+1 writes of 4 bytes end just past a power of two, forcing a
	// grow; Speed mode doubles rather than growing by the exact 4 bytes the
	// write needed.
	require.Greater(t, cap(w.buf), len(w.buf))
}
