package wellknown

import (
	"strings"

	"github.com/mistsys/protospec/pbcodec"
	"github.com/mistsys/protospec/pbjson"
	"github.com/mistsys/protospec/pbspec"
)

// FieldMask mirrors google.protobuf.FieldMask: an ordered set of field
// paths, each a dot-separated chain of proto (snake_case) field names.
type FieldMask struct {
	Paths []string
}

// FieldMaskDecodeShape is FieldMask's ordinary one-field binary decode spec.
func FieldMaskDecodeShape() pbcodec.Shape[FieldMask] {
	return pbcodec.Shape[FieldMask]{
		Fields: []pbspec.DecodeField{
			pbspec.Repeated(1, pbspec.String()),
		},
		Build: func(vals []any) (FieldMask, error) {
			return FieldMask{Paths: vals[0].([]string)}, nil
		},
	}
}

// FieldMaskEncodeShape is FieldMask's ordinary one-field binary encode spec.
func FieldMaskEncodeShape() pbcodec.EncodeShape[FieldMask] {
	return pbcodec.EncodeShape[FieldMask]{
		Proto3: true,
		Fields: []pbspec.EncodeField[FieldMask]{
			pbspec.RepeatedEncode(1, pbspec.String(), pbspec.NotPacked, func(m FieldMask) []string { return m.Paths }),
		},
	}
}

func snakeToCamel(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '_' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

func camelToSnake(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatFieldMask(m FieldMask) string {
	parts := make([]string, len(m.Paths))
	for i, p := range m.Paths {
		segs := strings.Split(p, ".")
		for j, seg := range segs {
			segs[j] = snakeToCamel(seg)
		}
		parts[i] = strings.Join(segs, ".")
	}
	return strings.Join(parts, ",")
}

func parseFieldMask(s string) (FieldMask, error) {
	if s == "" {
		return FieldMask{}, nil
	}
	parts := strings.Split(s, ",")
	paths := make([]string, len(parts))
	for i, p := range parts {
		segs := strings.Split(p, ".")
		for j, seg := range segs {
			segs[j] = camelToSnake(seg)
		}
		paths[i] = strings.Join(segs, ".")
	}
	return FieldMask{Paths: paths}, nil
}

// FieldMaskJSON is FieldMask's pbjson.WellKnownHooks: a single comma-joined
// string of camelCase paths, matching spec.md §4.6 / §8.
func FieldMaskJSON() *pbjson.WellKnownHooks[FieldMask] {
	return &pbjson.WellKnownHooks[FieldMask]{
		Wrap: func(m FieldMask) (any, error) { return formatFieldMask(m), nil },
		Unwrap: func(v any) (FieldMask, error) {
			s, ok := v.(string)
			if !ok {
				return FieldMask{}, &pbjson.WrongFieldTypeError{Field: "FieldMask", Expected: "string", Got: v}
			}
			return parseFieldMask(s)
		},
	}
}
