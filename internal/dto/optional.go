package dto

import "encoding/json"

// Optional is a tri-state JSON field for partial updates: absent keys leave
// the stored value unchanged, explicit nulls clear it, values replace it.
type Optional[T any] struct {
	// Set reports whether the key appeared in the request body.
	Set bool
	// Valid reports whether a non-null value was supplied.
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for present keys, so Set is always true here.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the value; absent and null both encode as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a pointer, nil when the field is null or absent.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
