package wellknown

import (
	"regexp"
	"strconv"
	"time"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
)

// Timestamp mirrors google.protobuf.Timestamp: a point in time as seconds
// since the Unix epoch plus a nanosecond fraction, always non-negative and
// always UTC.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TimestampDecodeShape is Timestamp's ordinary two-field binary decode spec.
func TimestampDecodeShape() pbcodec.Shape[Timestamp] {
	return pbcodec.Shape[Timestamp]{
		Fields: []pbspec.DecodeField{
			pbspec.Basic(1, "seconds", pbspec.Int64(), pbspec.Proto3[int64]()),
			pbspec.Basic(2, "nanos", pbspec.Int32(), pbspec.Proto3[int32]()),
		},
		Build: func(vals []any) (Timestamp, error) {
			return Timestamp{Seconds: vals[0].(int64), Nanos: vals[1].(int32)}, nil
		},
	}
}

// TimestampEncodeShape is Timestamp's ordinary two-field binary encode spec.
func TimestampEncodeShape() pbcodec.EncodeShape[Timestamp] {
	return pbcodec.EncodeShape[Timestamp]{
		Proto3: true,
		Fields: []pbspec.EncodeField[Timestamp]{
			pbspec.BasicEncode(1, pbspec.Int64(), pbspec.Proto3[int64](), func(t Timestamp) int64 { return t.Seconds }),
			pbspec.BasicEncode(2, pbspec.Int32(), pbspec.Proto3[int32](), func(t Timestamp) int32 { return t.Nanos }),
		},
	}
}

func formatTimestamp(t Timestamp) string {
	base := time.Unix(t.Seconds, 0).UTC().Format("2006-01-02T15:04:05")
	return base + fractionDigits(t.Nanos) + "Z"
}

var timestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})(?:\.(\d+))?(Z|[+-]\d{2}:\d{2})$`)

func parseTimestamp(s string) (Timestamp, error) {
	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, &pbjson.IllegalValueError{Type: "Timestamp", Detail: "malformed: " + s}
	}
	layout := "2006-01-02T15:04:05"
	tz := m[3]
	ref := m[1] + tz
	if tz == "Z" {
		ref = m[1] + "Z"
		layout += "Z"
	} else {
		layout += "-07:00"
	}
	t, err := time.Parse(layout, ref)
	if err != nil {
		return Timestamp{}, &pbjson.IllegalValueError{Type: "Timestamp", Detail: err.Error()}
	}
	var nanos int32
	if m[2] != "" {
		frac := (m[2] + "000000000")[:9]
		n, err := strconv.ParseInt(frac, 10, 32)
		if err != nil {
			return Timestamp{}, &pbjson.IllegalValueError{Type: "Timestamp", Detail: err.Error()}
		}
		nanos = int32(n)
	}
	return Timestamp{Seconds: t.Unix(), Nanos: nanos}, nil
}

// TimestampJSON is Timestamp's pbjson.WellKnownHooks: RFC 3339 with a
// nanosecond fraction, matching spec.md §4.6 / §8.
func TimestampJSON() *pbjson.WellKnownHooks[Timestamp] {
	return &pbjson.WellKnownHooks[Timestamp]{
		Wrap: func(t Timestamp) (any, error) { return formatTimestamp(t), nil },
		Unwrap: func(v any) (Timestamp, error) {
			s, ok := v.(string)
			if !ok {
				return Timestamp{}, &pbjson.WrongFieldTypeError{Field: "Timestamp", Expected: "string", Got: v}
			}
			return parseTimestamp(s)
		},
	}
}
