package etcd

import (
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/txn"
)

// operationsToEtcdOps converts branch operations to etcd operations.
func operationsToEtcdOps(ops []operation.Operation) ([]etcd.Op, error) {
	etcdOps := make([]etcd.Op, 0, len(ops))
	for _, branchOp := range ops {
		etcdOp, err := operationToEtcdOp(branchOp)
		if err != nil {
			return nil, err
		}

		etcdOps = append(etcdOps, etcdOp)
	}

	return etcdOps, nil
}

// operationToEtcdOp converts one operation union variant to an etcd operation.
func operationToEtcdOp(branchOp operation.Operation) (etcd.Op, error) {
	switch concrete := branchOp.(type) {
	case operation.Get:
		opts := rangeOpts(concrete.KeyRange())
		if concrete.Limit() > 0 {
			opts = append(opts, etcd.WithLimit(concrete.Limit()))
		}

		if concrete.CountOnly() {
			opts = append(opts, etcd.WithCountOnly())
		}

		return etcd.OpGet(string(concrete.KeyRange().Key()), opts...), nil
	case operation.Put:
		var opts []etcd.OpOption
		if concrete.PrevKV() {
			opts = append(opts, etcd.WithPrevKV())
		}

		return etcd.OpPut(string(concrete.Key()), string(concrete.Value()), opts...), nil
	case operation.Delete:
		opts := rangeOpts(concrete.KeyRange())
		if concrete.PrevKV() {
			opts = append(opts, etcd.WithPrevKV())
		}

		return etcd.OpDelete(string(concrete.KeyRange().Key()), opts...), nil
	case txn.Nested:
		return nestedToEtcdOp(concrete)
	default:
		return etcd.Op{}, fmt.Errorf("%w: %v", errUnsupportedOperationType, branchOp.Type())
	}
}

func nestedToEtcdOp(nested txn.Nested) (etcd.Op, error) {
	request := nested.Request()

	cmps, err := predicatesToCmps(request.Predicates())
	if err != nil {
		return etcd.Op{}, fmt.Errorf("failed to convert nested predicates: %w", err)
	}

	thenOps, err := operationsToEtcdOps(request.OnSuccess())
	if err != nil {
		return etcd.Op{}, fmt.Errorf("failed to convert nested success operations: %w", err)
	}

	elseOps, err := operationsToEtcdOps(request.OnFailure())
	if err != nil {
		return etcd.Op{}, fmt.Errorf("failed to convert nested failure operations: %w", err)
	}

	return etcd.OpTxn(cmps, thenOps, elseOps), nil
}

func rangeOpts(keyRange keyrange.KeyRange) []etcd.OpOption {
	if keyRange.IsSingle() {
		return nil
	}

	return []etcd.OpOption{etcd.WithRange(string(keyRange.RangeEnd()))}
}
