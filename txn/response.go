package txn

import (
	"github.com/tarantool/go-option"

	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/operation"
)

// Response contains the result of a transaction execution. It is built by
// drivers from the decoded server reply and holds the results of the branch
// that actually ran, in operation order.
type Response struct {
	// Succeeded indicates whether the transaction predicates evaluated to
	// true, that is, whether the success branch ran.
	Succeeded bool
	// Results contains one entry per operation of the executed branch.
	Results []Result
}

// Result is the per-operation result union, mirroring the operation union.
type Result interface {
	// Type specifies the result variant (Get, Put, Delete, Txn).
	Type() operation.Type
}

// GetResult holds the outcome of a read operation.
type GetResult struct {
	// KVs are the matched key-value pairs, empty for count-only reads.
	KVs []kv.KeyValue
	// Count is the number of keys the read matched.
	Count int64
	// More indicates the read was truncated by a limit.
	More bool
}

// Type implements the Result interface.
func (r GetResult) Type() operation.Type { return operation.TypeGet }

// PutResult holds the outcome of a write operation.
type PutResult struct {
	// PrevKV is the overwritten pair when the write asked for it.
	PrevKV option.Generic[kv.KeyValue]
}

// Type implements the Result interface.
func (r PutResult) Type() operation.Type { return operation.TypePut }

// DeleteResult holds the outcome of a delete operation.
type DeleteResult struct {
	// Deleted is the number of keys removed.
	Deleted int64
	// PrevKVs are the removed pairs when the delete asked for them.
	PrevKVs []kv.KeyValue
}

// Type implements the Result interface.
func (r DeleteResult) Type() operation.Type { return operation.TypeDelete }

// TxnResult holds the outcome of a nested transaction.
type TxnResult struct {
	// Response is the nested transaction's own branch selection and results.
	Response Response
}

// Type implements the Result interface.
func (r TxnResult) Type() operation.Type { return operation.TypeTxn }
