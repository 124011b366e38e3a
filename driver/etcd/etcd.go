// Package etcd provides an etcd implementation of the transaction driver
// interface. It translates requests into etcd's native compare and operation
// records and wraps the decoded transaction reply.
package etcd

import (
	"context"
	"errors"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/replikv/go-kvtxn/driver"
	"github.com/replikv/go-kvtxn/txn"
)

// Client defines the minimal interface needed for etcd operations.
// This allows for easier testing and mock implementations.
type Client interface {
	// Txn creates a new transaction.
	Txn(ctx context.Context) etcd.Txn
}

// Driver is an etcd implementation of the transaction driver interface.
type Driver struct {
	client Client // etcd client interface.
}

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct

	// Static error definitions to avoid dynamic errors.
	errUnsupportedPredicateTarget  = errors.New("unsupported predicate target")
	errUnsupportedPredicateOp      = errors.New("unsupported predicate operation")
	errValuePredicateRequiresBytes = errors.New("value predicate requires []byte value")
	errCounterPredicateRequiresInt = errors.New("counter predicate requires int64 value")
	errUnsupportedOperationType    = errors.New("unsupported operation type")
)

// etcdClientAdapter wraps etcd.Client to implement our Client interface.
type etcdClientAdapter struct {
	client *etcd.Client
}

func (a *etcdClientAdapter) Txn(ctx context.Context) etcd.Txn {
	return a.client.Txn(ctx)
}

// New creates a new etcd driver instance using an existing etcd client.
// The client should be properly configured and connected to an etcd cluster.
func New(client *etcd.Client) *Driver {
	return &Driver{
		client: &etcdClientAdapter{client: client},
	}
}

// NewWithClient creates a driver over an arbitrary Client implementation.
func NewWithClient(client Client) *Driver {
	return &Driver{client: client}
}

// Execute implements the driver interface. It converts the request into etcd
// compares and operations, commits the transaction, and wraps the reply.
func (d Driver) Execute(ctx context.Context, request txn.Request) (txn.Response, error) {
	etcdTxn := d.client.Txn(ctx)

	cmps, err := predicatesToCmps(request.Predicates())
	if err != nil {
		return txn.Response{}, fmt.Errorf("failed to convert predicates: %w", err)
	}

	etcdTxn.If(cmps...)

	thenOps, err := operationsToEtcdOps(request.OnSuccess())
	if err != nil {
		return txn.Response{}, fmt.Errorf("failed to convert success operations: %w", err)
	}

	etcdTxn.Then(thenOps...)

	elseOps, err := operationsToEtcdOps(request.OnFailure())
	if err != nil {
		return txn.Response{}, fmt.Errorf("failed to convert failure operations: %w", err)
	}

	etcdTxn.Else(elseOps...)

	resp, err := etcdTxn.Commit()
	if err != nil {
		return txn.Response{}, fmt.Errorf("transaction failed: %w", err)
	}

	return responseFromEtcd(resp.Succeeded, resp.Responses), nil
}
