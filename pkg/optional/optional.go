// Copyright (c) 2026 MADR contributors. All rights reserved.

/*
Package optional distinguishes an absent JSON field from one explicitly set to null.

A plain pointer cannot tell `{}` apart from `{"year": null}`; partial updates
need both answers.

	type Patch struct {
	    Year optional.Value[int] `json:"year"`
	}
*/
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a JSON field that may be absent, null, or hold a T.
type Value[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Null returns a Value that was explicitly set to null.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// UnmarshalJSON is only called by encoding/json when the key is present.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.null = true
		return nil
	}
	return json.Unmarshal(data, &v.value)
}

// IsSet reports whether the field was present in the payload.
func (v Value[T]) IsSet() bool { return v.set }

// IsNull reports whether the field was present with a null value.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the held value and whether there is one.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set && !v.null
}

// Ptr returns a pointer to the held value, or nil when absent or null.
func (v Value[T]) Ptr() *T {
	if !v.set || v.null {
		return nil
	}
	value := v.value
	return &value
}
