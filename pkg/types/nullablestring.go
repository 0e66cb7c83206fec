package types

import "encoding/json"

// NullableString is a string the server may send as null, such as the barcode
// of a physical game that has not been labelled yet.
type NullableString struct {
	Value string
	Valid bool
}

// String returns the value, or the empty string when null.
func (ns NullableString) String() string {
	if ns.Valid {
		return ns.Value
	}
	return ""
}

// IsNil reports whether the value is null. An empty string that was sent
// explicitly is not nil.
func (ns NullableString) IsNil() bool {
	return !ns.Valid
}

// Set stores value and marks it present.
func (ns *NullableString) Set(value string) {
	ns.Value = value
	ns.Valid = true
}

// MarshalJSON writes the value, or null when it is not present.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.Value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a JSON string or null.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ns.Value = ""
		ns.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &ns.Value); err != nil {
		return err
	}
	ns.Valid = true
	return nil
}

// NullableStringFrom returns a present NullableString holding s.
func NullableStringFrom(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

// NullString returns a null NullableString.
func NullString() NullableString {
	return NullableString{}
}

var _ json.Marshaler = NullableString{}
var _ json.Unmarshaler = &NullableString{}
var _ Nullable = NullableString{}
