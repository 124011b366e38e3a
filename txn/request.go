package txn

import (
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
)

// Request is the wire-ready form of a conditional transaction. It is
// immutable: drivers read its contents through the accessors and translate
// them into their backend's message format.
type Request struct {
	predicates []predicate.Predicate
	success    []operation.Operation
	failure    []operation.Operation
}

// Predicates returns the ordered compare predicates of the condition.
func (r Request) Predicates() []predicate.Predicate {
	return r.predicates
}

// OnSuccess returns the ordered operations of the success branch.
func (r Request) OnSuccess() []operation.Operation {
	return r.success
}

// OnFailure returns the ordered operations of the failure branch.
func (r Request) OnFailure() []operation.Operation {
	return r.failure
}

// Nested is the nested-transaction variant of the operation union. It embeds
// a complete request as one operation of an outer branch.
type Nested struct {
	request Request
}

// NewNested wraps a finalized request as a branch operation.
func NewNested(request Request) Nested {
	return Nested{request: request}
}

// Type implements the operation union interface.
func (n Nested) Type() operation.Type { return operation.TypeTxn }

// Request returns the embedded transaction request.
func (n Nested) Request() Request { return n.request }
