// Package operation provides the operation union executed inside transaction
// branches. The union has four variants: Get, Put and Delete defined here,
// and the nested transaction defined in the txn package. Conversion sites
// switch on the concrete variant and reject unknown implementations.
package operation

import (
	"github.com/replikv/go-kvtxn/internal/options"
	"github.com/replikv/go-kvtxn/keyrange"
)

// Operation represents one action to run in a transaction branch.
type Operation interface {
	// Type specifies the operation variant (Get, Put, Delete, Txn).
	Type() Type
}

// getOptions contains configuration for read operations.
type getOptions struct {
	Limit     int64 // Maximum number of results, 0 means unlimited.
	CountOnly bool  // Return only the number of matching keys.
}

// GetOption configures a Get operation.
type GetOption = options.Callback[getOptions]

// WithLimit limits the number of key-value pairs a Get returns.
func WithLimit(limit int64) GetOption {
	return func(opts *getOptions) {
		opts.Limit = limit
	}
}

// WithCountOnly makes a Get return only the number of matching keys.
func WithCountOnly() GetOption {
	return func(opts *getOptions) {
		opts.CountOnly = true
	}
}

// Get is a read over a key range.
type Get struct {
	keyRange keyrange.KeyRange
	opts     getOptions
}

// NewGet returns a read operation over the given key range.
func NewGet(keyRange keyrange.KeyRange, opts ...GetOption) Get {
	return Get{
		keyRange: keyRange,
		opts:     options.Apply[getOptions](nil, opts),
	}
}

// Type implements the Operation interface.
func (g Get) Type() Type { return TypeGet }

// KeyRange returns the key span the read covers.
func (g Get) KeyRange() keyrange.KeyRange { return g.keyRange }

// Limit returns the maximum number of results, 0 meaning unlimited.
func (g Get) Limit() int64 { return g.opts.Limit }

// CountOnly reports whether the read returns only a key count.
func (g Get) CountOnly() bool { return g.opts.CountOnly }

// putOptions contains configuration for write operations.
type putOptions struct {
	PrevKV bool // Return the previous key-value pair in the result.
}

// PutOption configures a Put operation.
type PutOption = options.Callback[putOptions]

// WithPrevKV makes a Put report the overwritten key-value pair.
func WithPrevKV() PutOption {
	return func(opts *putOptions) {
		opts.PrevKV = true
	}
}

// Put writes a value under a single key.
type Put struct {
	key   []byte
	value []byte
	opts  putOptions
}

// NewPut returns a write operation for the given key and value.
func NewPut(key, value []byte, opts ...PutOption) Put {
	return Put{
		key:   key,
		value: value,
		opts:  options.Apply[putOptions](nil, opts),
	}
}

// Type implements the Operation interface.
func (p Put) Type() Type { return TypePut }

// Key returns the target key of the write.
func (p Put) Key() []byte { return p.key }

// Value returns the value to store.
func (p Put) Value() []byte { return p.value }

// PrevKV reports whether the write returns the overwritten pair.
func (p Put) PrevKV() bool { return p.opts.PrevKV }

// deleteOptions contains configuration for delete operations.
type deleteOptions struct {
	PrevKV bool // Return the deleted key-value pairs in the result.
}

// DeleteOption configures a Delete operation.
type DeleteOption = options.Callback[deleteOptions]

// WithDeletedKVs makes a Delete report the removed key-value pairs.
func WithDeletedKVs() DeleteOption {
	return func(opts *deleteOptions) {
		opts.PrevKV = true
	}
}

// Delete removes every key in a key range.
type Delete struct {
	keyRange keyrange.KeyRange
	opts     deleteOptions
}

// NewDelete returns a delete operation over the given key range.
func NewDelete(keyRange keyrange.KeyRange, opts ...DeleteOption) Delete {
	return Delete{
		keyRange: keyRange,
		opts:     options.Apply[deleteOptions](nil, opts),
	}
}

// Type implements the Operation interface.
func (d Delete) Type() Type { return TypeDelete }

// KeyRange returns the key span the delete covers.
func (d Delete) KeyRange() keyrange.KeyRange { return d.keyRange }

// PrevKV reports whether the delete returns the removed pairs.
func (d Delete) PrevKV() bool { return d.opts.PrevKV }
