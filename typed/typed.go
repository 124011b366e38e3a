// Package typed provides typed values on top of the transaction facade.
// Values are serialized through a codec and written under a common key
// prefix; conditional helpers such as compare-and-swap are expressed as
// transactions over revision predicates.
package typed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/replikv/go-kvtxn"
	"github.com/replikv/go-kvtxn/codec"
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
	"github.com/replikv/go-kvtxn/txn"
)

var (
	// ErrInvalidName is returned when a value name is empty or contains a
	// path separator.
	ErrInvalidName = errors.New("invalid name")
	// ErrNotFound is returned when the named value does not exist.
	ErrNotFound = errors.New("value not found")
)

// NamedValue represents a decoded value with its name and the revision it
// was read at. The revision feeds compare-and-swap.
type NamedValue[T any] struct {
	Name        string
	Value       T
	ModRevision int64
}

// Store provides typed storage operations over a client.
type Store[T any] struct {
	client kvtxn.Client
	prefix string
	codec  codec.Typed[T]
}

// NewStore creates a typed store writing under the given key prefix.
// The prefix must end with a separator, e.g. "config/".
func NewStore[T any](client kvtxn.Client, prefix string, c codec.Codec) Store[T] {
	return Store[T]{
		client: client,
		prefix: prefix,
		codec:  codec.NewTyped[T](c),
	}
}

func checkName(name string) bool {
	return len(name) != 0 && !strings.Contains(name, "/")
}

func (s Store[T]) key(name string) []byte {
	return []byte(s.prefix + name)
}

// Get retrieves and decodes a named value.
func (s Store[T]) Get(ctx context.Context, name string) (NamedValue[T], error) {
	if !checkName(name) {
		return NamedValue[T]{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	kvs, err := s.client.Range(ctx, keyrange.One(s.key(name)))
	if err != nil {
		return NamedValue[T]{}, fmt.Errorf("failed to read %q: %w", name, err)
	}

	if len(kvs) == 0 {
		return NamedValue[T]{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	value, err := s.codec.Unmarshal(kvs[0].Value)
	if err != nil {
		return NamedValue[T]{}, fmt.Errorf("failed to decode %q: %w", name, err)
	}

	return NamedValue[T]{
		Name:        name,
		Value:       value,
		ModRevision: kvs[0].ModRevision,
	}, nil
}

// Put stores a named value unconditionally.
func (s Store[T]) Put(ctx context.Context, name string, value T) error {
	if !checkName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	encoded, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", name, err)
	}

	_, err = s.client.Txn(ctx).
		Then(operation.NewPut(s.key(name), encoded)).
		Commit()
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", name, err)
	}

	return nil
}

// PutIfAbsent stores a named value only when the key does not exist yet.
// It reports whether the write happened.
func (s Store[T]) PutIfAbsent(ctx context.Context, name string, value T) (bool, error) {
	if !checkName(name) {
		return false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	encoded, err := s.codec.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode %q: %w", name, err)
	}

	// A key that was never created has create revision zero.
	resp, err := s.client.Txn(ctx).
		If(predicate.CreateRevision(keyrange.One(s.key(name)), predicate.OpEqual, 0)).
		Then(operation.NewPut(s.key(name), encoded)).
		Commit()
	if err != nil {
		return false, fmt.Errorf("failed to store %q: %w", name, err)
	}

	return resp.Succeeded, nil
}

// CompareAndSwap replaces a named value only when it is still at the
// revision the caller read it at. It reports whether the swap happened.
func (s Store[T]) CompareAndSwap(
	ctx context.Context,
	current NamedValue[T],
	value T,
) (bool, error) {
	if !checkName(current.Name) {
		return false, fmt.Errorf("%w: %q", ErrInvalidName, current.Name)
	}

	encoded, err := s.codec.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode %q: %w", current.Name, err)
	}

	key := keyrange.One(s.key(current.Name))

	resp, err := s.client.Txn(ctx).
		If(predicate.ModRevision(key, predicate.OpEqual, current.ModRevision)).
		Then(operation.NewPut(s.key(current.Name), encoded)).
		Commit()
	if err != nil {
		return false, fmt.Errorf("failed to swap %q: %w", current.Name, err)
	}

	return resp.Succeeded, nil
}

// Delete removes a named value. It reports whether the key existed.
func (s Store[T]) Delete(ctx context.Context, name string) (bool, error) {
	if !checkName(name) {
		return false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	resp, err := s.client.Txn(ctx).
		Then(operation.NewDelete(keyrange.One(s.key(name)))).
		Commit()
	if err != nil {
		return false, fmt.Errorf("failed to delete %q: %w", name, err)
	}

	if len(resp.Results) != 1 {
		return false, fmt.Errorf("%w: expected 1 result, got %d",
			kvtxn.ErrUnexpectedResult, len(resp.Results))
	}

	result, ok := resp.Results[0].(txn.DeleteResult)
	if !ok {
		return false, fmt.Errorf("%w: expected delete result, got %v",
			kvtxn.ErrUnexpectedResult, resp.Results[0].Type())
	}

	return result.Deleted > 0, nil
}

// Range retrieves and decodes every value under the store prefix, in key
// order.
func (s Store[T]) Range(ctx context.Context) ([]NamedValue[T], error) {
	kvs, err := s.client.Range(ctx, keyrange.Prefix([]byte(s.prefix)))
	if err != nil {
		return nil, fmt.Errorf("failed to read range: %w", err)
	}

	out := make([]NamedValue[T], 0, len(kvs))

	for _, pair := range kvs {
		value, err := s.codec.Unmarshal(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", pair.Key, err)
		}

		out = append(out, NamedValue[T]{
			Name:        strings.TrimPrefix(string(pair.Key), s.prefix),
			Value:       value,
			ModRevision: pair.ModRevision,
		})
	}

	return out, nil
}
