package pbmerge

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/mistsys/protospec/pbspec"
	"github.com/stretchr/testify/require"
)

func TestScalarOverwritesOnlyWhenNonZero(t *testing.T) {
	require.Equal(t, "b", Scalar("a", "b"))
	require.Equal(t, "a", Scalar("a", ""))
	require.Equal(t, 0, Scalar(0, 0))
}

func TestRepeatedConcatenates(t *testing.T) {
	got := Repeated([]int{1, 2}, []int{3})
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestRepeatedIdentityMerge(t *testing.T) {
	a := []int{1, 2, 3}
	got := Repeated(a, nil)
	if diff := pretty.Compare(a, got); diff != "" {
		t.Errorf("merge with empty b should be identity (-want +got):\n%s", diff)
	}
}

func TestMapLastWriterWinsByKeyInsertionOrder(t *testing.T) {
	a := []pbspec.MapEntry[string, int]{{Key: "x", Value: 1}, {Key: "y", Value: 2}}
	b := []pbspec.MapEntry[string, int]{{Key: "y", Value: 20}, {Key: "z", Value: 3}}
	got := Map(a, b)
	require.Equal(t, []pbspec.MapEntry[string, int]{
		{Key: "x", Value: 1},
		{Key: "y", Value: 20},
		{Key: "z", Value: 3},
	}, got)
}

func TestOneofBSetWinsOutright(t *testing.T) {
	a := pbspec.OneofValue{Tag: 1, Name: "a_field", Value: "x"}
	b := pbspec.OneofValue{Tag: 2, Name: "b_field", Value: "y"}
	require.Equal(t, b, Oneof(a, b))
	require.Equal(t, a, Oneof(a, pbspec.OneofValue{}))
}

func TestMessageMergeRecurses(t *testing.T) {
	type Inner struct{ N int }
	mergeFn := func(a, b Inner) Inner { return Inner{N: Scalar(a.N, b.N)} }
	a := Inner{N: 1}
	b := Inner{N: 2}
	got := Message(&a, &b, mergeFn)
	require.Equal(t, &Inner{N: 2}, got)

	require.Equal(t, &a, Message(&a, (*Inner)(nil), mergeFn))
	require.Equal(t, &b, Message((*Inner)(nil), &b, mergeFn))
}
