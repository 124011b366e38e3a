package etcd

import (
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/replikv/go-kvtxn/predicate"
)

// predicatesToCmps converts a predicate list to an etcd comparison list.
func predicatesToCmps(predicates []predicate.Predicate) ([]etcd.Cmp, error) {
	cmps := make([]etcd.Cmp, 0, len(predicates))
	for _, pred := range predicates {
		cmp, err := predicateToCmp(pred)
		if err != nil {
			return nil, err
		}

		cmps = append(cmps, cmp)
	}

	return cmps, nil
}

// predicateToCmp converts a predicate to an etcd comparison.
func predicateToCmp(pred predicate.Predicate) (etcd.Cmp, error) {
	key := string(pred.KeyRange().Key())

	target, err := predicateTarget(pred, key)
	if err != nil {
		return etcd.Cmp{}, err
	}

	result, err := predicateResult(pred.Operation())
	if err != nil {
		return etcd.Cmp{}, err
	}

	// The etcd client accepts value comparisons as strings only.
	value := pred.Value()
	if raw, ok := value.([]byte); ok {
		value = string(raw)
	}

	cmp := etcd.Compare(target, result, value)
	if !pred.KeyRange().IsSingle() {
		cmp = cmp.WithRange(string(pred.KeyRange().RangeEnd()))
	}

	return cmp, nil
}

func predicateTarget(pred predicate.Predicate, key string) (etcd.Cmp, error) {
	switch pred.Target() {
	case predicate.TargetVersion:
		if _, ok := pred.Value().(int64); !ok {
			return etcd.Cmp{}, errCounterPredicateRequiresInt
		}

		return etcd.Version(key), nil
	case predicate.TargetCreateRevision:
		if _, ok := pred.Value().(int64); !ok {
			return etcd.Cmp{}, errCounterPredicateRequiresInt
		}

		return etcd.CreateRevision(key), nil
	case predicate.TargetModRevision:
		if _, ok := pred.Value().(int64); !ok {
			return etcd.Cmp{}, errCounterPredicateRequiresInt
		}

		return etcd.ModRevision(key), nil
	case predicate.TargetValue:
		if _, ok := pred.Value().([]byte); !ok {
			return etcd.Cmp{}, errValuePredicateRequiresBytes
		}

		return etcd.Value(key), nil
	default:
		return etcd.Cmp{}, fmt.Errorf("%w: %v", errUnsupportedPredicateTarget, pred.Target())
	}
}

func predicateResult(op predicate.Op) (string, error) {
	switch op {
	case predicate.OpEqual:
		return "=", nil
	case predicate.OpNotEqual:
		return "!=", nil
	case predicate.OpGreater:
		return ">", nil
	case predicate.OpLess:
		return "<", nil
	default:
		return "", fmt.Errorf("%w: %v", errUnsupportedPredicateOp, op)
	}
}
