package etcd

import (
	"github.com/tarantool/go-option"
	"go.etcd.io/etcd/api/v3/etcdserverpb"
	"go.etcd.io/etcd/api/v3/mvccpb"

	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/txn"
)

// responseFromEtcd wraps a decoded etcd transaction reply. Nested
// transaction results are converted recursively.
func responseFromEtcd(succeeded bool, responses []*etcdserverpb.ResponseOp) txn.Response {
	results := make([]txn.Result, 0, len(responses))

	for _, resp := range responses {
		switch {
		case resp.GetResponseRange() != nil:
			results = append(results, rangeResult(resp.GetResponseRange()))
		case resp.GetResponsePut() != nil:
			results = append(results, putResult(resp.GetResponsePut()))
		case resp.GetResponseDeleteRange() != nil:
			results = append(results, deleteResult(resp.GetResponseDeleteRange()))
		case resp.GetResponseTxn() != nil:
			nested := resp.GetResponseTxn()
			results = append(results, txn.TxnResult{
				Response: responseFromEtcd(nested.Succeeded, nested.Responses),
			})
		}
	}

	return txn.Response{
		Succeeded: succeeded,
		Results:   results,
	}
}

func rangeResult(resp *etcdserverpb.RangeResponse) txn.GetResult {
	kvs := make([]kv.KeyValue, 0, len(resp.Kvs))
	for _, etcdKv := range resp.Kvs {
		kvs = append(kvs, asKeyValue(etcdKv))
	}

	return txn.GetResult{
		KVs:   kvs,
		Count: resp.Count,
		More:  resp.More,
	}
}

func putResult(resp *etcdserverpb.PutResponse) txn.PutResult {
	prevKV := option.None[kv.KeyValue]()
	if resp.PrevKv != nil {
		prevKV = option.Some(asKeyValue(resp.PrevKv))
	}

	return txn.PutResult{PrevKV: prevKV}
}

func deleteResult(resp *etcdserverpb.DeleteRangeResponse) txn.DeleteResult {
	prevKVs := make([]kv.KeyValue, 0, len(resp.PrevKvs))
	for _, etcdKv := range resp.PrevKvs {
		prevKVs = append(prevKVs, asKeyValue(etcdKv))
	}

	return txn.DeleteResult{
		Deleted: resp.Deleted,
		PrevKVs: prevKVs,
	}
}

func asKeyValue(etcdKv *mvccpb.KeyValue) kv.KeyValue {
	return kv.KeyValue{
		Key:            etcdKv.Key,
		Value:          etcdKv.Value,
		CreateRevision: etcdKv.CreateRevision,
		ModRevision:    etcdKv.ModRevision,
		Version:        etcdKv.Version,
	}
}
