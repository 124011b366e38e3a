package tnt

import (
	"errors"
	"fmt"

	"github.com/tarantool/go-option"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/txn"
)

// ErrUnknownResultType is returned when a reply carries a result of an
// unknown kind.
var ErrUnknownResultType = errors.New("unknown result type")

type txnRequest struct {
	_msgpack struct{} `msgpack:",omitempty"`

	Predicates []predicate `msgpack:"predicates"`
	OnSuccess  []operation `msgpack:"on_success"`
	OnFailure  []operation `msgpack:"on_failure"`
}

func newTxnRequest(request txn.Request) txnRequest {
	return txnRequest{
		_msgpack:   struct{}{},
		Predicates: newPredicates(request.Predicates()),
		OnSuccess:  newOperations(request.OnSuccess()),
		OnFailure:  newOperations(request.OnFailure()),
	}
}

type wireKeyValue struct {
	Path           []byte `msgpack:"path"`
	Value          []byte `msgpack:"value"`
	CreateRevision int64  `msgpack:"create_revision"`
	ModRevision    int64  `msgpack:"mod_revision"`
	Version        int64  `msgpack:"version"`
}

func (w wireKeyValue) asKeyValue() kv.KeyValue {
	return kv.KeyValue{
		Key:            w.Path,
		Value:          w.Value,
		CreateRevision: w.CreateRevision,
		ModRevision:    w.ModRevision,
		Version:        w.Version,
	}
}

type wireResult struct {
	Type    string           `msgpack:"type"`
	KVs     []wireKeyValue   `msgpack:"kvs"`
	Count   int64            `msgpack:"count"`
	More    bool             `msgpack:"more"`
	Deleted int64            `msgpack:"deleted"`
	PrevKV  *wireKeyValue    `msgpack:"prev_kv"`
	PrevKVs []wireKeyValue   `msgpack:"prev_kvs"`
	Txn     *txnResponseData `msgpack:"txn"`
}

func (w wireResult) asResult() (txn.Result, error) {
	switch w.Type {
	case "get":
		kvs := make([]kv.KeyValue, 0, len(w.KVs))
		for _, wireKV := range w.KVs {
			kvs = append(kvs, wireKV.asKeyValue())
		}

		return txn.GetResult{KVs: kvs, Count: w.Count, More: w.More}, nil
	case "put":
		prevKV := option.None[kv.KeyValue]()
		if w.PrevKV != nil {
			prevKV = option.Some(w.PrevKV.asKeyValue())
		}

		return txn.PutResult{PrevKV: prevKV}, nil
	case "delete":
		prevKVs := make([]kv.KeyValue, 0, len(w.PrevKVs))
		for _, wireKV := range w.PrevKVs {
			prevKVs = append(prevKVs, wireKV.asKeyValue())
		}

		return txn.DeleteResult{Deleted: w.Deleted, PrevKVs: prevKVs}, nil
	case "txn":
		if w.Txn == nil {
			return nil, NewResponseDecodingError("missing nested txn data",
				ErrUnknownResultType)
		}

		nested, err := w.Txn.asResponse()
		if err != nil {
			return nil, err
		}

		return txn.TxnResult{Response: nested}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResultType, w.Type)
	}
}

type txnResponseData struct {
	IsSuccess bool         `msgpack:"is_success"`
	Responses []wireResult `msgpack:"responses"`
}

func (d txnResponseData) asResponse() (txn.Response, error) {
	results := make([]txn.Result, 0, len(d.Responses))
	for _, wire := range d.Responses {
		result, err := wire.asResult()
		if err != nil {
			return txn.Response{}, err
		}

		results = append(results, result)
	}

	return txn.Response{
		Succeeded: d.IsSuccess,
		Results:   results,
	}, nil
}

type txnResponse struct {
	Data     txnResponseData `msgpack:"data"`
	Revision int64           `msgpack:"revision"`
}

func (r *txnResponse) DecodeMsgpack(decoder *msgpack.Decoder) error {
	type plain txnResponse

	var decoded plain

	err := decoder.Decode(&decoded)
	if err != nil {
		return NewResponseDecodingError("decode body", err)
	}

	*r = txnResponse(decoded)

	return nil
}

func (r txnResponse) asTxnResponse() (txn.Response, error) {
	return r.Data.asResponse()
}
