package types

import (
	"encoding/json"
)

// Optional is a JSON field that records whether it was present in the payload
// and whether it was explicitly null. It backs partial update bodies.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// It is only called when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if len(data) == 0 || string(data) == "null" {
		o.Null = true
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Null = false
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports a non-null value was supplied
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Some builds a set Optional, mostly for tests
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}
