package pbjson

import "fmt"

// IllegalValueError mirrors pbwire/pbspec's IllegalValue kind (spec.md §7),
// keyed by the offending JSON fragment's type/shape rather than a wire
// field.
type IllegalValueError struct {
	Type   string
	Detail string
}

func (e *IllegalValueError) Error() string {
	return fmt.Sprintf("pbjson: illegal value for %s: %s", e.Type, e.Detail)
}

// WrongFieldTypeError mirrors pbspec.WrongFieldTypeError for the JSON side:
// a field's JSON value was present but had an unexpected JSON kind (e.g. an
// object where a string was expected).
type WrongFieldTypeError struct {
	Field    string
	Expected string
	Got      any
}

func (e *WrongFieldTypeError) Error() string {
	return fmt.Sprintf("pbjson: field %q: expected %s, got %T", e.Field, e.Expected, e.Got)
}
