// Package txn models atomic conditional transactions: a set of compare
// predicates and two alternative operation branches. The store evaluates all
// predicates at one point in its history and atomically executes the success
// branch when every predicate holds, the failure branch otherwise.
package txn

import (
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
)

// Builder assembles a transaction request through a chainable,
// order-preserving API. A builder belongs to a single logical owner; methods
// mutate the receiver and return it for chaining. Finalize consumes the
// builder, and any use after that panics.
//
// The builder itself performs no semantic validation: malformed predicates or
// operations are rejected by the transport driver or by the server.
type Builder struct {
	predicates []predicate.Predicate
	success    []operation.Operation
	failure    []operation.Operation
	finalized  bool
}

// NewBuilder returns an empty builder: no predicates and two empty branches.
func NewBuilder() *Builder {
	return &Builder{
		predicates: nil,
		success:    nil,
		failure:    nil,
		finalized:  false,
	}
}

// If appends predicates to the transaction condition, preserving call order.
// All predicates must hold at once for the success branch to run, so the
// order is cosmetic. An empty condition is always true.
func (b *Builder) If(predicates ...predicate.Predicate) *Builder {
	b.checkUsable()
	b.predicates = append(b.predicates, predicates...)

	return b
}

// WhenVersion appends a predicate comparing a key's modification counter.
func (b *Builder) WhenVersion(keyRange keyrange.KeyRange, op predicate.Op, version int64) *Builder {
	return b.If(predicate.Version(keyRange, op, version))
}

// WhenCreateRevision appends a predicate comparing the revision at which a
// key was created.
func (b *Builder) WhenCreateRevision(keyRange keyrange.KeyRange, op predicate.Op, revision int64) *Builder {
	return b.If(predicate.CreateRevision(keyRange, op, revision))
}

// WhenModRevision appends a predicate comparing the revision of a key's last
// modification.
func (b *Builder) WhenModRevision(keyRange keyrange.KeyRange, op predicate.Op, revision int64) *Builder {
	return b.If(predicate.ModRevision(keyRange, op, revision))
}

// WhenValue appends a predicate comparing a key's stored value byte-for-byte.
func (b *Builder) WhenValue(keyRange keyrange.KeyRange, op predicate.Op, value []byte) *Builder {
	return b.If(predicate.Value(keyRange, op, value))
}

// Then appends operations to the success branch, preserving call order.
func (b *Builder) Then(operations ...operation.Operation) *Builder {
	b.checkUsable()
	b.success = append(b.success, operations...)

	return b
}

// Else appends operations to the failure branch, preserving call order.
func (b *Builder) Else(operations ...operation.Operation) *Builder {
	b.checkUsable()
	b.failure = append(b.failure, operations...)

	return b
}

// Finalize consumes the builder and returns the immutable request.
// The builder must not be used afterwards.
func (b *Builder) Finalize() Request {
	b.checkUsable()
	b.finalized = true

	req := Request{
		predicates: b.predicates,
		success:    b.success,
		failure:    b.failure,
	}

	b.predicates = nil
	b.success = nil
	b.failure = nil

	return req
}

func (b *Builder) checkUsable() {
	if b.finalized {
		panic("txn: builder used after Finalize")
	}
}
