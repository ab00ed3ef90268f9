// Package example hand-writes the "generated-code" surface a .proto
// compiler would emit for a small fixture schema, to exercise every runtime
// package the way real generated code would: Address/Person (the canonical
// round-trip scenario) and Envelope (proto2 required field + extension
// range + oneof, together).
package example

import (
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
)

// Planet is a proto3 enum field on Address. Earth is the zero value, so a
// default-constructed Address (street="", number=0, planet=Earth) encodes
// to zero bytes.
type Planet int32

const (
	PlanetEarth Planet = iota
	PlanetMercury
	PlanetVenus
	PlanetMars
	PlanetJupiter
	PlanetSaturn
	PlanetUranus
	PlanetNeptune
)

var planetNames = map[Planet]string{
	PlanetEarth:   "EARTH",
	PlanetMercury: "MERCURY",
	PlanetVenus:   "VENUS",
	PlanetMars:    "MARS",
	PlanetJupiter: "JUPITER",
	PlanetSaturn:  "SATURN",
	PlanetUranus:  "URANUS",
	PlanetNeptune: "NEPTUNE",
}

var planetValues = func() map[string]Planet {
	m := make(map[string]Planet, len(planetNames))
	for v, name := range planetNames {
		m[name] = v
	}
	return m
}()

// PlanetSpec is Planet's binary TypedSpec.
func PlanetSpec() pbspec.TypedSpec[Planet] {
	return pbspec.Enum(func(v int32) (Planet, error) {
		if _, ok := planetNames[Planet(v)]; !ok {
			return 0, &pbspec.UnknownEnumValueError{Value: v}
		}
		return Planet(v), nil
	})
}

// PlanetMapping is Planet's JSON enum name table.
func PlanetMapping() pbjson.EnumMapping[Planet] {
	return pbjson.EnumMapping[Planet]{Names: planetNames, Values: planetValues}
}

func (p Planet) String() string {
	if name, ok := planetNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}
