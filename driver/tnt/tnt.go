// Package tnt provides a Tarantool-backed implementation of the transaction
// driver interface. It encodes requests into the replication protocol's
// msgpack call format and decodes the typed reply.
package tnt

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-tarantool/v2"

	"github.com/replikv/go-kvtxn/driver"
	"github.com/replikv/go-kvtxn/txn"
)

// txnFunction is the server-side stored procedure evaluating transactions.
const txnFunction = "replikv.txn"

// Driver is a Tarantool implementation of the transaction driver interface.
type Driver struct {
	conn tarantool.Doer // Tarantool connection or pool.
}

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct

	// ErrUnexpectedResponse is returned when the reply has unexpected format.
	ErrUnexpectedResponse = errors.New("unexpected response from tarantool")
)

// New creates a new Tarantool driver instance over an established connection.
// Both tarantool.Connection and pool connection adapters satisfy Doer.
func New(doer tarantool.Doer) *Driver {
	return &Driver{conn: doer}
}

// Execute implements the driver interface. It submits the transaction as a
// single call and wraps the decoded reply.
func (d Driver) Execute(ctx context.Context, request txn.Request) (txn.Response, error) {
	req := tarantool.NewCallRequest(txnFunction).
		Args([]any{newTxnRequest(request)}).Context(ctx)

	var result []txnResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return txn.Response{}, fmt.Errorf("failed to execute transaction: %w", err)
	case len(result) != 1:
		return txn.Response{}, fmt.Errorf("%w: expected 1 response, got %d",
			ErrUnexpectedResponse, len(result))
	}

	return result[0].asTxnResponse()
}
