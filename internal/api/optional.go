package api

import "encoding/json"

// Optional wraps a partial-update field, recording whether the key was
// present in the request body. Absent keys leave Set false; present keys
// (including explicit nulls for pointer types) mark Set true. This replaces
// reflection-based attribute assignment with an explicit merge step.
type Optional[T any] struct {
	Set   bool
	Value T
}

var _ json.Unmarshaler = (*Optional[string])(nil)

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the payload, which is what makes presence tracking work.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}
