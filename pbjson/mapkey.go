package pbjson

import "strconv"

// StringMapKey is the identity MapKeyCodec, for `map<string, V>`.
func StringMapKey() MapKeyCodec[string] {
	return MapKeyCodec[string]{
		ToString:   func(k string) string { return k },
		FromString: func(s string) (string, error) { return s, nil },
	}
}

// Int32MapKey covers int32/sint32/fixed32/sfixed32 map keys.
func Int32MapKey() MapKeyCodec[int32] {
	return MapKeyCodec[int32]{
		ToString: func(k int32) string { return strconv.FormatInt(int64(k), 10) },
		FromString: func(s string) (int32, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return 0, &IllegalValueError{Type: "map key (int32)", Detail: err.Error()}
			}
			return int32(n), nil
		},
	}
}

// Int64MapKey covers int64/sint64/fixed64/sfixed64 map keys.
func Int64MapKey() MapKeyCodec[int64] {
	return MapKeyCodec[int64]{
		ToString: func(k int64) string { return strconv.FormatInt(k, 10) },
		FromString: func(s string) (int64, error) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return 0, &IllegalValueError{Type: "map key (int64)", Detail: err.Error()}
			}
			return n, nil
		},
	}
}

// UInt32MapKey covers uint32/fixed32 map keys.
func UInt32MapKey() MapKeyCodec[uint32] {
	return MapKeyCodec[uint32]{
		ToString: func(k uint32) string { return strconv.FormatUint(uint64(k), 10) },
		FromString: func(s string) (uint32, error) {
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return 0, &IllegalValueError{Type: "map key (uint32)", Detail: err.Error()}
			}
			return uint32(n), nil
		},
	}
}

// UInt64MapKey covers uint64/fixed64 map keys.
func UInt64MapKey() MapKeyCodec[uint64] {
	return MapKeyCodec[uint64]{
		ToString: func(k uint64) string { return strconv.FormatUint(k, 10) },
		FromString: func(s string) (uint64, error) {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return 0, &IllegalValueError{Type: "map key (uint64)", Detail: err.Error()}
			}
			return n, nil
		},
	}
}

// BoolMapKey covers `bool` map keys, rendered as the literal strings
// "true"/"false" per spec.md §4.6.
func BoolMapKey() MapKeyCodec[bool] {
	return MapKeyCodec[bool]{
		ToString: func(k bool) string {
			if k {
				return "true"
			}
			return "false"
		},
		FromString: func(s string) (bool, error) {
			switch s {
			case "true":
				return true, nil
			case "false":
				return false, nil
			default:
				return false, &IllegalValueError{Type: "map key (bool)", Detail: "not true/false: " + s}
			}
		},
	}
}
