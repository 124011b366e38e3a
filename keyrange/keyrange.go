// Package keyrange provides the key span type used by predicates and
// operations. A KeyRange addresses either a single key or a lexicographic
// interval of keys.
package keyrange

import (
	"bytes"
	"errors"
)

var (
	// ErrEmptyKey is returned when a range is constructed from an empty key.
	ErrEmptyKey = errors.New("empty key")
	// ErrInvalidRange is returned when the range end does not
	// lexicographically follow the start key.
	ErrInvalidRange = errors.New("range end must follow the start key")
)

// openEnd marks a range that extends to the end of the keyspace.
var openEnd = []byte{0}

// KeyRange is a single key or a half-open lexicographic interval
// [Key, RangeEnd). Immutable once constructed.
type KeyRange struct {
	key      []byte
	rangeEnd []byte
}

// One returns a range addressing exactly one key.
func One(key []byte) KeyRange {
	return KeyRange{key: key, rangeEnd: nil}
}

// New returns the range [key, end). The end must lexicographically follow
// the key, except for the open-end marker which extends the range to the end
// of the keyspace.
func New(key, end []byte) (KeyRange, error) {
	if len(key) == 0 {
		return KeyRange{}, ErrEmptyKey
	}

	if !bytes.Equal(end, openEnd) && bytes.Compare(end, key) <= 0 {
		return KeyRange{}, ErrInvalidRange
	}

	return KeyRange{key: key, rangeEnd: end}, nil
}

// Prefix returns the range covering every key that starts with prefix.
// An empty prefix covers the whole keyspace.
func Prefix(prefix []byte) KeyRange {
	if len(prefix) == 0 {
		return All()
	}

	return KeyRange{key: prefix, rangeEnd: prefixEnd(prefix)}
}

// From returns the range covering key and everything after it.
func From(key []byte) KeyRange {
	return KeyRange{key: key, rangeEnd: openEnd}
}

// All returns the range covering the whole keyspace.
func All() KeyRange {
	return KeyRange{key: []byte{0}, rangeEnd: openEnd}
}

// Key returns the start key of the range.
func (r KeyRange) Key() []byte {
	return r.key
}

// RangeEnd returns the exclusive end of the range, or nil for a single key.
func (r KeyRange) RangeEnd() []byte {
	return r.rangeEnd
}

// IsSingle reports whether the range addresses exactly one key.
func (r KeyRange) IsSingle() bool {
	return len(r.rangeEnd) == 0
}

// Contains reports whether the given key falls inside the range.
func (r KeyRange) Contains(key []byte) bool {
	if r.IsSingle() {
		return bytes.Equal(r.key, key)
	}

	if bytes.Compare(key, r.key) < 0 {
		return false
	}

	return bytes.Equal(r.rangeEnd, openEnd) || bytes.Compare(key, r.rangeEnd) < 0
}

// prefixEnd computes the smallest key that does not start with prefix.
// A prefix of all 0xff bytes has no such key and maps to the open-end marker.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)

	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}

	return openEnd
}
