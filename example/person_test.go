package example

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
	"github.com/mistsys/protospec/pbwire"
	"github.com/stretchr/testify/require"
)

func examplePerson() Person {
	return Person{
		Name: "Ada",
		Addresses: []Address{
			{Street: "Main", Number: 1, Planet: PlanetEarth},
			{Street: "Olympus Mons", Number: 2, Planet: PlanetMars},
		},
		LuckyNumbers: []int32{1, 2, 3},
		Nicknames: []pbspec.MapEntry[string, string]{
			{Key: "home", Value: "Ada the Enchantress"},
		},
	}
}

func TestPersonBinaryRoundTrip(t *testing.T) {
	p := examplePerson()
	data := MarshalPerson(p, pbwire.Balanced)
	got, err := UnmarshalPerson(data)
	require.NoError(t, err)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPersonPackedLuckyNumbersSeedScenario(t *testing.T) {
	p := Person{LuckyNumbers: []int32{1, 2, 3}}
	packed := MarshalPerson(p, pbwire.Balanced)

	unpackedShape := PersonEncodeShape()
	unpackedShape.Fields[2] = pbspec.RepeatedEncode(3, pbspec.Int32(), pbspec.NotPacked, func(p Person) []int32 { return p.LuckyNumbers })
	unpacked := pbcodec.Marshal(p, unpackedShape, pbwire.Balanced)

	require.NotEqual(t, packed, unpacked)

	gotFromPacked, err := UnmarshalPerson(packed)
	require.NoError(t, err)
	gotFromUnpacked, err := UnmarshalPerson(unpacked)
	require.NoError(t, err)
	require.Equal(t, gotFromPacked.LuckyNumbers, gotFromUnpacked.LuckyNumbers)
}

func TestPersonJSONRoundTrip(t *testing.T) {
	p := examplePerson()
	data, err := pbjson.Marshal(p, PersonJSONEncodeShape(), pbjson.DefaultOptions())
	require.NoError(t, err)
	got, err := pbjson.Unmarshal(data, PersonJSONDecodeShape(), pbjson.DefaultOptions())
	require.NoError(t, err)
	require.ElementsMatch(t, p.Addresses, got.Addresses)
	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.LuckyNumbers, got.LuckyNumbers)
	require.Equal(t, p.Nicknames, got.Nicknames)
}

func TestMergePersonConcatenatesRepeatedFields(t *testing.T) {
	a := Person{LuckyNumbers: []int32{1, 2}, Addresses: []Address{{Street: "A"}}}
	b := Person{LuckyNumbers: []int32{3}, Addresses: []Address{{Street: "B"}}}
	got := MergePerson(a, b)
	require.Equal(t, []int32{1, 2, 3}, got.LuckyNumbers)
	require.Equal(t, []Address{{Street: "A"}, {Street: "B"}}, got.Addresses)
}

func TestMergePersonMapLastWriterWins(t *testing.T) {
	a := Person{Nicknames: []pbspec.MapEntry[string, string]{{Key: "k", Value: "old"}}}
	b := Person{Nicknames: []pbspec.MapEntry[string, string]{{Key: "k", Value: "new"}}}
	got := MergePerson(a, b)
	require.Equal(t, []pbspec.MapEntry[string, string]{{Key: "k", Value: "new"}}, got.Nicknames)
}
