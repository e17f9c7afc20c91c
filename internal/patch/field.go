// Package patch models partial updates. A Field is either unchanged or set
// to a value, and only set fields are merged into the stored row.
package patch

import (
	"encoding/json"
	"reflect"
)

type Field[T any] struct {
	value T
	set   bool
}

// Set returns a field that replaces the stored value with v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) Value() (T, bool) {
	return f.value, f.set
}

// Apply writes the value into dst when the field is set.
func (f Field[T]) Apply(dst *T) {
	if f.set {
		*dst = f.value
	}
}

// ValidationValue is what struct validation sees: a nil *T when the field is
// unset and a pointer to the value when it is set, so "omitnil" skips absent
// keys while every other rule still runs on present ones.
func (f Field[T]) ValidationValue() any {
	if !f.set {
		return (*T)(nil)
	}
	v := f.value
	return &v
}

// UnmarshalJSON only runs for keys present in the payload, so an absent key
// stays unchanged. An explicit null clears pointer fields and is rejected
// for every other type.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var v T
	if string(data) == "null" {
		typ := reflect.TypeFor[T]()
		if typ.Kind() != reflect.Pointer {
			return &json.UnmarshalTypeError{Value: "null", Type: typ}
		}
	} else if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
