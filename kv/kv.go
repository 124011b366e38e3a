// Package kv provides key-value data structures for storage operations.
// It defines the core KeyValue type used throughout the client.
package kv

// KeyValue represents a key-value pair with revision metadata.
// This structure is used to store and retrieve data from the key-value storage.
type KeyValue struct {
	// Key is the serialized representation of the key.
	Key []byte
	// Value is the serialized representation of the value.
	Value []byte

	// CreateRevision is the store revision at which this key was created.
	CreateRevision int64
	// ModRevision is the store revision of the last modification to this key.
	ModRevision int64
	// Version is the per-key modification counter. It starts at 1 and resets
	// when the key is recreated after a delete.
	Version int64
}
