package pbjson

// Options configures both Marshal and Unmarshal (spec.md §4.6's option
// table).
type Options struct {
	// JSONNames: when true, field keys use the camelCase jsonName; when
	// false, the proto field name.
	JSONNames bool
	// EnumNames is not read by Marshal or by EnumScalar: whether an enum
	// field serializes as its declared string name or as its integer value
	// is fixed by the enumNames function passed to EnumScalar when the
	// field's shape is built. Parsing always accepts either form.
	EnumNames bool
	// OmitDefaultValues: when true (default), proto3 defaults are elided.
	OmitDefaultValues bool
}

// DefaultOptions is the canonical proto3 JSON mapping's default
// configuration.
func DefaultOptions() Options {
	return Options{JSONNames: true, EnumNames: true, OmitDefaultValues: true}
}
