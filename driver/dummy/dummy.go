// Package dummy provides an in-memory implementation of the storage driver
// interface for demonstration and tests. It evaluates conditional
// transactions with the same branch-selection semantics as a real store:
// all predicates must hold at one point in history, and exactly one branch
// runs atomically.
package dummy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tarantool/go-option"

	"github.com/replikv/go-kvtxn/driver"
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
	"github.com/replikv/go-kvtxn/txn"
)

var (
	_ driver.Driver = &Driver{} //nolint:exhaustruct

	errUnsupportedOperation       = errors.New("unsupported operation type")
	errUnsupportedPredicateTarget = errors.New("unsupported predicate target")
)

// entry is one stored key with its revision bookkeeping.
type entry struct {
	value     []byte
	createRev int64
	modRev    int64
	version   int64
}

// Driver is a thread-safe in-memory implementation of the driver interface.
type Driver struct {
	mu       sync.Mutex
	data     map[string]entry
	revision int64
}

// New creates an empty in-memory driver.
func New() *Driver {
	return &Driver{
		mu:       sync.Mutex{},
		data:     make(map[string]entry),
		revision: 1,
	}
}

// Execute implements the driver interface. The whole transaction runs under
// one lock, so predicate evaluation and branch execution are atomic.
func (d *Driver) Execute(_ context.Context, request txn.Request) (txn.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A transaction consumes at most one revision, assigned up front so that
	// every write in the branch lands on the same revision.
	rev := d.revision + 1

	resp, mutated, err := d.execute(request, rev)
	if err != nil {
		return txn.Response{}, err
	}

	if mutated {
		d.revision = rev
	}

	return resp, nil
}

func (d *Driver) execute(request txn.Request, rev int64) (txn.Response, bool, error) {
	succeeded, err := d.checkPredicates(request.Predicates())
	if err != nil {
		return txn.Response{}, false, err
	}

	ops := request.OnFailure()
	if succeeded {
		ops = request.OnSuccess()
	}

	results, mutated, err := d.executeOps(ops, rev)
	if err != nil {
		return txn.Response{}, false, err
	}

	return txn.Response{
		Succeeded: succeeded,
		Results:   results,
	}, mutated, nil
}

// checkPredicates reports whether every predicate is satisfied by the
// current state. A single-key predicate on a missing key compares against a
// zero-valued record; a range predicate holds iff every existing key in the
// range satisfies it.
func (d *Driver) checkPredicates(predicates []predicate.Predicate) (bool, error) {
	for _, pred := range predicates {
		keyRange := pred.KeyRange()

		var entries []entry
		if keyRange.IsSingle() {
			entries = []entry{d.data[string(keyRange.Key())]}
		} else {
			for _, key := range d.keysInRange(keyRange) {
				entries = append(entries, d.data[key])
			}
		}

		for _, ent := range entries {
			holds, err := evaluate(pred, ent)
			if err != nil {
				return false, err
			}

			if !holds {
				return false, nil
			}
		}
	}

	return true, nil
}

func evaluate(pred predicate.Predicate, ent entry) (bool, error) {
	switch pred.Target() {
	case predicate.TargetVersion:
		return compareInt(ent.version, pred.Value(), pred.Operation()), nil
	case predicate.TargetCreateRevision:
		return compareInt(ent.createRev, pred.Value(), pred.Operation()), nil
	case predicate.TargetModRevision:
		return compareInt(ent.modRev, pred.Value(), pred.Operation()), nil
	case predicate.TargetValue:
		return compareValue(ent.value, pred.Value(), pred.Operation()), nil
	default:
		return false, fmt.Errorf("%w: %v", errUnsupportedPredicateTarget, pred.Target())
	}
}

func compareInt(stored int64, expected any, op predicate.Op) bool {
	want, ok := expected.(int64)
	if !ok {
		return false
	}

	switch op {
	case predicate.OpEqual:
		return stored == want
	case predicate.OpNotEqual:
		return stored != want
	case predicate.OpGreater:
		return stored > want
	case predicate.OpLess:
		return stored < want
	default:
		return false
	}
}

func compareValue(stored []byte, expected any, op predicate.Op) bool {
	want, ok := expected.([]byte)
	if !ok {
		return false
	}

	switch op {
	case predicate.OpEqual:
		return bytes.Equal(stored, want)
	case predicate.OpNotEqual:
		return !bytes.Equal(stored, want)
	case predicate.OpGreater:
		return bytes.Compare(stored, want) > 0
	case predicate.OpLess:
		return bytes.Compare(stored, want) < 0
	default:
		return false
	}
}

func (d *Driver) executeOps(ops []operation.Operation, rev int64) ([]txn.Result, bool, error) {
	results := make([]txn.Result, 0, len(ops))
	mutated := false

	for _, branchOp := range ops {
		switch concrete := branchOp.(type) {
		case operation.Get:
			results = append(results, d.executeGet(concrete))
		case operation.Put:
			results = append(results, d.executePut(concrete, rev))
			mutated = true
		case operation.Delete:
			result := d.executeDelete(concrete)
			if result.Deleted > 0 {
				mutated = true
			}

			results = append(results, result)
		case txn.Nested:
			nested, nestedMutated, err := d.execute(concrete.Request(), rev)
			if err != nil {
				return nil, false, err
			}

			if nestedMutated {
				mutated = true
			}

			results = append(results, txn.TxnResult{Response: nested})
		default:
			return nil, false, fmt.Errorf("%w: %v", errUnsupportedOperation, branchOp.Type())
		}
	}

	return results, mutated, nil
}

func (d *Driver) executeGet(get operation.Get) txn.GetResult {
	kvs := d.collect(get.KeyRange())
	count := int64(len(kvs))

	more := false
	if get.Limit() > 0 && count > get.Limit() {
		kvs = kvs[:get.Limit()]
		more = true
	}

	if get.CountOnly() {
		kvs = nil
	}

	return txn.GetResult{
		KVs:   kvs,
		Count: count,
		More:  more,
	}
}

func (d *Driver) executePut(put operation.Put, rev int64) txn.PutResult {
	key := string(put.Key())
	prev, existed := d.data[key]

	next := entry{
		value:     put.Value(),
		createRev: rev,
		modRev:    rev,
		version:   1,
	}
	if existed {
		next.createRev = prev.createRev
		next.version = prev.version + 1
	}

	d.data[key] = next

	prevKV := option.None[kv.KeyValue]()
	if put.PrevKV() && existed {
		prevKV = option.Some(asKeyValue(key, prev))
	}

	return txn.PutResult{PrevKV: prevKV}
}

func (d *Driver) executeDelete(del operation.Delete) txn.DeleteResult {
	var removed []kv.KeyValue

	for _, key := range d.keysInRange(del.KeyRange()) {
		removed = append(removed, asKeyValue(key, d.data[key]))
		delete(d.data, key)
	}

	result := txn.DeleteResult{
		Deleted: int64(len(removed)),
		PrevKVs: nil,
	}
	if del.PrevKV() {
		result.PrevKVs = removed
	}

	return result
}

// keysInRange returns the existing keys inside the range in lexicographic
// order.
func (d *Driver) keysInRange(keyRange keyrange.KeyRange) []string {
	var keys []string

	for key := range d.data {
		if keyRange.Contains([]byte(key)) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func (d *Driver) collect(keyRange keyrange.KeyRange) []kv.KeyValue {
	keys := d.keysInRange(keyRange)

	kvs := make([]kv.KeyValue, 0, len(keys))
	for _, key := range keys {
		kvs = append(kvs, asKeyValue(key, d.data[key]))
	}

	return kvs
}

func asKeyValue(key string, ent entry) kv.KeyValue {
	return kv.KeyValue{
		Key:            []byte(key),
		Value:          ent.value,
		CreateRevision: ent.createRev,
		ModRevision:    ent.modRev,
		Version:        ent.version,
	}
}
