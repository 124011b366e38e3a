// Package driver defines the interface for transaction transport backends.
// It provides a common contract for different stores such as etcd and
// Tarantool-based replicated storages.
package driver

import (
	"context"

	"github.com/replikv/go-kvtxn/txn"
)

// Driver is the interface that transport backends must implement. A driver
// owns the wire encoding and the network round-trip: it translates the
// request into its backend's message format, submits it, and wraps the
// decoded reply.
type Driver interface {
	// Execute atomically executes a conditional transaction. The success
	// branch runs if all predicates evaluate to true, the failure branch
	// otherwise.
	Execute(ctx context.Context, request txn.Request) (txn.Response, error)
}
