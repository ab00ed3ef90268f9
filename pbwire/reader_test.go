package pbwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	vals := []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)}
	for _, v := range vals {
		w := NewWriter(Balanced)
		w.WriteVarint(v)
		r := NewReader(w.Contents())
		got, err := r.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.False(t, r.HasMore())
	}
}

func TestVarintTruncated(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80})
	_, err := r.ReadVarint()
	require.Error(t, err)
	var werr *Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, ErrTruncated, werr.Kind)
}

func TestFixed32RoundTrip(t *testing.T) {
	w := NewWriter(Balanced)
	w.WriteFixed32(0xdeadbeef)
	r := NewReader(w.Contents())
	got, err := r.ReadFixed32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), got)
}

func TestFixed64RoundTrip(t *testing.T) {
	w := NewWriter(Balanced)
	w.WriteFixed64(0x0102030405060708)
	r := NewReader(w.Contents())
	got, err := r.ReadFixed64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), got)
}

func TestLengthDelimitedRoundTrip(t *testing.T) {
	w := NewWriter(Balanced)
	w.WriteLengthDelimited([]byte("hello world"))
	r := NewReader(w.Contents())
	off, n, err := r.ReadLengthDelimited()
	require.NoError(t, err)
	require.Equal(t, "hello world", string(r.buf[off:off+n]))
}

func TestReadFieldRejectsGroups(t *testing.T) {
	w := NewWriter(Balanced)
	w.WriteVarint(uint64(1)<<3 | 3) // field 1, wire type 3 (start group)
	r := NewReader(w.Contents())
	_, _, err := r.ReadField()
	require.Error(t, err)
	var werr *Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, ErrIllegalWireType, werr.Kind)
}

func TestWriterModesProduceIdenticalBytes(t *testing.T) {
	for _, mode := range []Mode{Balanced, Speed, Space} {
		w := NewWriter(mode)
		w.WriteTag(1, KindVarint)
		w.WriteVarint(150)
		w.WriteTag(2, KindLengthDelimited)
		w.WriteLengthDelimited([]byte("abc"))
		if mode == Balanced {
			continue
		}
		base := NewWriter(Balanced)
		base.WriteTag(1, KindVarint)
		base.WriteVarint(150)
		base.WriteTag(2, KindLengthDelimited)
		base.WriteLengthDelimited([]byte("abc"))
		require.Equal(t, base.Contents(), w.Contents())
	}
}
