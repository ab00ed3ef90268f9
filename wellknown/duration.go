// Package wellknown provides the google.protobuf well-known message types
// whose JSON representation replaces the ordinary field-by-field mapping
// (spec.md §4.6): Duration, Timestamp, the scalar wrapper types, Empty,
// Struct/Value/ListValue, and FieldMask. Each type pairs an ordinary Go
// struct (for binary en/decode via pbcodec, same as any other message) with
// a pbjson.WellKnownHooks value that plugs into a containing message's
// pbjson.Shape/MarshalShape.
package wellknown

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
)

// Duration mirrors google.protobuf.Duration: signed seconds plus signed
// nanosecond fraction, both required to carry the same sign (or be zero).
type Duration struct {
	Seconds int64
	Nanos   int32
}

// DurationDecodeShape is Duration's ordinary two-field binary decode spec.
func DurationDecodeShape() pbcodec.Shape[Duration] {
	return pbcodec.Shape[Duration]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "seconds", pbspec.Int64(), pbspec.Proto3[int64]()),
			pbspec.Basic(2, "nanos", pbspec.Int32(), pbspec.Proto3[int32]()),
		},
		Build: func(vals []any) (Duration, error) {
			return Duration{Seconds: vals[0].(int64), Nanos: vals[1].(int32)}, nil
		},
	}
}

// DurationEncodeShape is Duration's ordinary two-field binary encode spec.
func DurationEncodeShape() pbcodec.EncodeShape[Duration] {
	return pbcodec.EncodeShape[Duration]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Duration]{
			pbspec.BasicEncode(1, pbspec.Int64(), pbspec.Proto3[int64](), func(d Duration) int64 { return d.Seconds }),
			pbspec.BasicEncode(2, pbspec.Int32(), pbspec.Proto3[int32](), func(d Duration) int32 { return d.Nanos }),
		},
	}
}

func fractionDigits(nanos int32) string {
	if nanos == 0 {
		return ""
	}
	if nanos < 0 {
		nanos = -nanos
	}
	digits := fmt.Sprintf("%09d", nanos)
	switch {
	case nanos%1000000 == 0:
		digits = digits[:3]
	case nanos%1000 == 0:
		digits = digits[:6]
	default:
		digits = digits[:9]
	}
	return "." + digits
}

func formatDuration(d Duration) string {
	neg := d.Seconds < 0 || d.Nanos < 0
	sec := d.Seconds
	if sec < 0 {
		sec = -sec
	}
	s := strconv.FormatInt(sec, 10) + fractionDigits(d.Nanos)
	if neg {
		return "-" + s + "s"
	}
	return s + "s"
}

var durationPattern = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d+))?s$`)

func parseDuration(s string) (Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, &pbjson.IllegalValueError{Type: "Duration", Detail: "malformed: " + s}
	}
	neg := m[1] == "-"
	sec, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Duration{}, &pbjson.IllegalValueError{Type: "Duration", Detail: err.Error()}
	}
	var nanos int32
	if m[3] != "" {
		frac := (m[3] + "000000000")[:9]
		n, err := strconv.ParseInt(frac, 10, 32)
		if err != nil {
			return Duration{}, &pbjson.IllegalValueError{Type: "Duration", Detail: err.Error()}
		}
		nanos = int32(n)
	}
	if neg {
		sec, nanos = -sec, -nanos
	}
	return Duration{Seconds: sec, Nanos: nanos}, nil
}

// DurationJSON is Duration's pbjson.WellKnownHooks: the
// "<seconds>.<fraction>s" string format of spec.md §4.6 / §8.
func DurationJSON() *pbjson.WellKnownHooks[Duration] {
	return &pbjson.WellKnownHooks[Duration]{
		Wrap: func(d Duration) (any, error) { return formatDuration(d), nil },
		Unwrap: func(v any) (Duration, error) {
			s, ok := v.(string)
			if !ok {
				return Duration{}, &pbjson.WrongFieldTypeError{Field: "Duration", Expected: "string", Got: v}
			}
			return parseDuration(s)
		},
	}
}
