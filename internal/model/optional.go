// Package model holds the wire and storage shapes shared by every layer.
package model

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON key was present, explicitly null, or
// carried a value. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was sent as an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the key appeared in the payload, null included.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the key was sent as null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Present reports whether the key carried a non-null value.
// Absent and null both mean "not provided".
func (o Optional[T]) Present() bool { return o.set && !o.null }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.Present()
}

// IsZero lets `omitzero` drop absent fields when marshaling.
func (o Optional[T]) IsZero() bool { return !o.set }

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		o.null = true
		return nil
	}

	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.null = false
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
