package kvtxn

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-option"

	"github.com/replikv/go-kvtxn/driver"
	"github.com/replikv/go-kvtxn/internal/options"
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
	"github.com/replikv/go-kvtxn/txn"
)

// ErrUnexpectedResult is returned when a driver reply does not line up with
// the submitted operations.
var ErrUnexpectedResult = errors.New("unexpected result shape")

// rangeOptions contains configuration options for range reads.
type rangeOptions struct {
	Limit int64 // Maximum number of results to return.
}

// RangeOption configures a range read.
type RangeOption = options.Callback[rangeOptions]

// WithLimit limits the number of results a range read returns.
func WithLimit(limit int64) RangeOption {
	return func(opts *rangeOptions) {
		opts.Limit = limit
	}
}

// Client is the main interface for conditional-transaction execution.
type Client interface {
	// Txn creates a new transaction handle bound to the client's transport.
	// The context manages timeouts and cancellation for the transaction.
	Txn(ctx context.Context) txn.Tx

	// Do submits a pre-built transaction request.
	Do(ctx context.Context, request txn.Request) (txn.Response, error)

	// Range reads a span of keys through an unconditional transaction.
	// Options:
	//   - WithLimit: limit the number of results returned
	Range(ctx context.Context, keyRange keyrange.KeyRange, opts ...RangeOption) ([]kv.KeyValue, error)
}

// client is the concrete implementation of the Client interface.
type client struct {
	driver driver.Driver // Underlying transport driver.
}

// New creates a new Client instance over the specified driver.
func New(driver driver.Driver) Client {
	return &client{driver: driver}
}

// Txn implements the Client interface for transaction creation.
func (c *client) Txn(ctx context.Context) txn.Tx {
	return newTx(ctx, c.driver)
}

// Do implements the Client interface for pre-built requests.
func (c *client) Do(ctx context.Context, request txn.Request) (txn.Response, error) {
	resp, err := c.driver.Execute(ctx, request)
	if err != nil {
		return txn.Response{}, fmt.Errorf("execute failed: %w", err)
	}

	return resp, nil
}

// Range implements the Client interface for range reads. The read runs as a
// transaction with an empty, always-true condition and a single get in the
// success branch.
func (c *client) Range(
	ctx context.Context,
	keyRange keyrange.KeyRange,
	opts ...RangeOption,
) ([]kv.KeyValue, error) {
	rangeOpts := options.Apply[rangeOptions](nil, opts)

	var getOpts []operation.GetOption
	if rangeOpts.Limit > 0 {
		getOpts = append(getOpts, operation.WithLimit(rangeOpts.Limit))
	}

	request := txn.NewBuilder().
		Then(operation.NewGet(keyRange, getOpts...)).
		Finalize()

	resp, err := c.driver.Execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("range failed: %w", err)
	}

	if len(resp.Results) != 1 {
		return nil, fmt.Errorf("%w: expected 1 result, got %d",
			ErrUnexpectedResult, len(resp.Results))
	}

	result, ok := resp.Results[0].(txn.GetResult)
	if !ok {
		return nil, fmt.Errorf("%w: expected get result, got %v",
			ErrUnexpectedResult, resp.Results[0].Type())
	}

	return result.KVs, nil
}

// tx is the internal implementation of the txn.Tx interface.
type tx struct {
	driver driver.Driver
	ctx    context.Context //nolint:containedctx // Context is stored for transaction execution

	predicates option.Generic[[]predicate.Predicate]
	thenOps    option.Generic[[]operation.Operation]
	elseOps    option.Generic[[]operation.Operation]
}

// newTx creates a new transaction handle with the given driver and context.
func newTx(ctx context.Context, driver driver.Driver) txn.Tx {
	return &tx{
		driver:     driver,
		ctx:        ctx,
		predicates: option.None[[]predicate.Predicate](),
		thenOps:    option.None[[]operation.Operation](),
		elseOps:    option.None[[]operation.Operation](),
	}
}

// If adds predicates to the transaction condition.
// Empty predicate list means always true (unconditional execution).
// If should be called before Then/Else.
func (tb *tx) If(predicates ...predicate.Predicate) txn.Tx {
	if tb.predicates.IsSome() {
		panic("predicates are already set")
	} else if tb.thenOps.IsSome() || tb.elseOps.IsSome() {
		panic("If can only be called before Then/Else")
	}

	tb.predicates = option.Some(predicates)

	return tb
}

// Then adds operations to execute if predicates evaluate to true.
// Then can only be called before Else.
func (tb *tx) Then(operations ...operation.Operation) txn.Tx {
	if tb.thenOps.IsSome() {
		panic("then operations are already set")
	} else if tb.elseOps.IsSome() {
		panic("Then can only be called before Else")
	}

	tb.thenOps = option.Some(operations)

	return tb
}

// Else adds operations to execute if predicates evaluate to false.
// This is optional.
func (tb *tx) Else(operations ...operation.Operation) txn.Tx {
	if tb.elseOps.IsSome() {
		panic("else operations are already set")
	}

	tb.elseOps = option.Some(operations)

	return tb
}

// Commit assembles the request and executes it through the driver.
func (tb *tx) Commit() (txn.Response, error) {
	request := txn.NewBuilder().
		If(tb.predicates.UnwrapOr(nil)...).
		Then(tb.thenOps.UnwrapOr(nil)...).
		Else(tb.elseOps.UnwrapOr(nil)...).
		Finalize()

	resp, err := tb.driver.Execute(tb.ctx, request)
	if err != nil {
		return txn.Response{}, fmt.Errorf("tx execute failed: %w", err)
	}

	return resp, nil
}
