// Package predicate provides types and interfaces for conditional operations.
// It defines the compare predicates used for conditional transaction
// execution: a transaction succeeds when every predicate holds at once, so
// the order in which predicates are listed carries no meaning.
package predicate

import "github.com/replikv/go-kvtxn/keyrange"

// Predicate represents a condition used for conditional operations.
// Predicates are used in transactions to specify conditions for execution.
type Predicate interface {
	// KeyRange returns the key or key span that this predicate applies to.
	KeyRange() keyrange.KeyRange
	// Operation returns the comparison operation (Equal, NotEqual, Greater, Less).
	Operation() Op
	// Target returns what aspect of the key to compare
	// (Version, CreateRevision, ModRevision, Value).
	Target() Target
	// Value returns the comparison value for the predicate: int64 for the
	// counter targets, []byte for the value target.
	Value() any
}

// compare is the concrete predicate implementation.
type compare struct {
	keyRange keyrange.KeyRange
	op       Op
	target   Target
	value    any
}

func (c compare) KeyRange() keyrange.KeyRange { return c.keyRange }
func (c compare) Operation() Op               { return c.op }
func (c compare) Target() Target              { return c.target }
func (c compare) Value() any                  { return c.value }

// Version returns a predicate comparing the per-key modification counter.
func Version(keyRange keyrange.KeyRange, op Op, version int64) Predicate {
	return compare{keyRange: keyRange, op: op, target: TargetVersion, value: version}
}

// CreateRevision returns a predicate comparing the revision at which the key
// was created.
func CreateRevision(keyRange keyrange.KeyRange, op Op, revision int64) Predicate {
	return compare{keyRange: keyRange, op: op, target: TargetCreateRevision, value: revision}
}

// ModRevision returns a predicate comparing the revision of the last
// modification to the key.
func ModRevision(keyRange keyrange.KeyRange, op Op, revision int64) Predicate {
	return compare{keyRange: keyRange, op: op, target: TargetModRevision, value: revision}
}

// Value returns a predicate comparing the stored value byte-for-byte.
func Value(keyRange keyrange.KeyRange, op Op, value []byte) Predicate {
	return compare{keyRange: keyRange, op: op, target: TargetValue, value: value}
}
