package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field that tells an absent key apart from an explicit
// null. Set is true whenever the key was present; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Of returns a present, non-null field.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a present field that clears its target.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON only runs for keys present in the document, null included.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Validatable exposes the field to struct validation as a plain pointer, so
// omitempty skips absent and null values but still checks a present zero.
func (n Nullable[T]) Validatable() any {
	return n.Value
}

// applyNullable overwrites dst when the field was present in the patch.
func applyNullable[T any](dst **T, src Nullable[T]) {
	if src.Set {
		*dst = src.Value
	}
}
