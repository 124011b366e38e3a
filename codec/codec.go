// Package codec provides value serialization for typed storage helpers.
// Stored values are raw bytes on the wire; a codec maps Go values onto them.
package codec

import (
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Codec serializes and deserializes arbitrary values.
// Implement it once per format and share it across object types.
type Codec interface {
	Marshal(data any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

// Msgpack is a msgpack-backed codec.
type Msgpack struct{}

// Marshal implements the Codec interface.
func (Msgpack) Marshal(data any) ([]byte, error) {
	encoded, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return encoded, nil
}

// Unmarshal implements the Codec interface.
func (Msgpack) Unmarshal(data []byte, out any) error {
	err := msgpack.Unmarshal(data, out)
	if err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// YAML is a YAML-backed codec. Configuration-like values stored in the
// keyspace are conventionally YAML documents.
type YAML struct{}

// Marshal implements the Codec interface.
func (YAML) Marshal(data any) ([]byte, error) {
	encoded, err := yaml.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return encoded, nil
}

// Unmarshal implements the Codec interface.
func (YAML) Unmarshal(data []byte, out any) error {
	err := yaml.Unmarshal(data, out)
	if err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// Typed wraps a Codec for one concrete value type.
type Typed[T any] struct {
	codec Codec
}

// NewTyped returns a typed view over the given codec.
func NewTyped[T any](c Codec) Typed[T] {
	return Typed[T]{codec: c}
}

// Marshal serializes a typed value.
func (t Typed[T]) Marshal(data T) ([]byte, error) {
	return t.codec.Marshal(data)
}

// Unmarshal deserializes into a typed value.
func (t Typed[T]) Unmarshal(data []byte) (T, error) {
	var out T

	err := t.codec.Unmarshal(data, &out)
	if err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}
