package pbext

import (
	"testing"

	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	var e Extensions
	Set(&e, 150, pbspec.String(), "hello")

	got, ok, err := Get(&e, 150, pbspec.String())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", got)
}

func TestGetAbsentReturnsFalse(t *testing.T) {
	var e Extensions
	_, ok, err := Get(&e, 150, pbspec.String())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetExnReturnsZeroWhenAbsent(t *testing.T) {
	var e Extensions
	got, err := GetExn(&e, 150, pbspec.Int32())
	require.NoError(t, err)
	require.Equal(t, int32(0), got)
}

func TestSetOverwritesExistingTag(t *testing.T) {
	var e Extensions
	Set(&e, 150, pbspec.String(), "first")
	Set(&e, 150, pbspec.String(), "second")
	require.Equal(t, 1, e.Len())

	got, _, err := Get(&e, 150, pbspec.String())
	require.NoError(t, err)
	require.Equal(t, "second", got)
}

func TestClearRemovesEntry(t *testing.T) {
	var e Extensions
	Set(&e, 150, pbspec.String(), "x")
	Clear(&e, 150)
	require.Equal(t, 0, e.Len())
}

func TestWriteToPreservesWireOrder(t *testing.T) {
	var e Extensions
	Set(&e, 150, pbspec.String(), "a")
	Set(&e, 151, pbspec.Int32(), int32(5))

	w := pbwire.NewWriter(pbwire.Balanced)
	e.WriteTo(w)

	var round Extensions
	var tags []uint32
	r := pbwire.NewReader(w.Contents())
	for r.HasMore() {
		tag, f, err := r.ReadField()
		require.NoError(t, err)
		tags = append(tags, tag)
		round.Append(tag, f)
	}
	require.Equal(t, []uint32{150, 151}, tags)
	got, ok, err := Get(&round, 151, pbspec.Int32())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(5), got)
}

func TestInRanges(t *testing.T) {
	ranges := []Range{{Start: 100, End: 199}}
	require.True(t, InRanges(150, ranges))
	require.False(t, InRanges(50, ranges))
}
