// Package kvtxn provides a client-side model for atomic conditional
// transactions against a replicated key-value store.
//
// The core of the module is the [github.com/replikv/go-kvtxn/txn] package:
// a fluent builder that assembles compare predicates and two operation
// branches into an immutable request. Transport backends live under
// [github.com/replikv/go-kvtxn/driver]. See the
// [github.com/replikv/go-kvtxn/typed] package for typed values with
// compare-and-swap helpers on top of the transaction facade.
package kvtxn
