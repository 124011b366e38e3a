package tnt

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	goOperation "github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/txn"
)

var (
	// ErrUnknownOperation is returned when the operation is unknown.
	ErrUnknownOperation = errors.New("unknown operation")

	_ msgpack.CustomEncoder = operation{Operation: nil}
)

const (
	// getOperationArrayLen is the length of the array that encodes a get
	// operation: name, key, range end, limit, count-only flag.
	getOperationArrayLen = 5
	// putOperationArrayLen is the length of the array that encodes a put
	// operation: name, key, value, previous-pair flag.
	putOperationArrayLen = 4
	// deleteOperationArrayLen is the length of the array that encodes a
	// delete operation: name, key, range end, previous-pairs flag.
	deleteOperationArrayLen = 4
	// txnOperationArrayLen is the length of the array that encodes a nested
	// transaction: name and the embedded request.
	txnOperationArrayLen = 2
)

type operation struct {
	goOperation.Operation
}

// newOperations returns a slice of wire operations from a slice of
// branch operations.
func newOperations(inOperations []goOperation.Operation) []operation {
	outOperations := make([]operation, 0, len(inOperations))
	for _, o := range inOperations {
		outOperations = append(outOperations, operation{o})
	}

	return outOperations
}

func (o operation) EncodeMsgpack(encoder *msgpack.Encoder) error {
	switch concrete := o.Operation.(type) {
	case goOperation.Get:
		return encodeGet(encoder, concrete)
	case goOperation.Put:
		return encodePut(encoder, concrete)
	case goOperation.Delete:
		return encodeDelete(encoder, concrete)
	case txn.Nested:
		return encodeNested(encoder, concrete)
	default:
		return ErrUnknownOperation
	}
}

func encodeGet(encoder *msgpack.Encoder, get goOperation.Get) error {
	err := encoder.EncodeArrayLen(getOperationArrayLen)
	if err != nil {
		return NewOperationEncodingError("encode get operation array length", err)
	}

	err = encoder.EncodeString("get")
	if err != nil {
		return NewOperationEncodingError("encode get operation", err)
	}

	// We're deliberately using here conversion from byte to string, since MsgPack API doesn't have a way to
	// write byte array as string.
	err = encoder.EncodeString(string(get.KeyRange().Key()))
	if err != nil {
		return NewOperationEncodingError("encode get operation key", err)
	}

	err = encoder.EncodeString(string(get.KeyRange().RangeEnd()))
	if err != nil {
		return NewOperationEncodingError("encode get operation range end", err)
	}

	err = encoder.EncodeInt(get.Limit())
	if err != nil {
		return NewOperationEncodingError("encode get operation limit", err)
	}

	err = encoder.EncodeBool(get.CountOnly())
	if err != nil {
		return NewOperationEncodingError("encode get operation count flag", err)
	}

	return nil
}

func encodePut(encoder *msgpack.Encoder, put goOperation.Put) error {
	err := encoder.EncodeArrayLen(putOperationArrayLen)
	if err != nil {
		return NewOperationEncodingError("encode put operation array length", err)
	}

	err = encoder.EncodeString("put")
	if err != nil {
		return NewOperationEncodingError("encode put operation", err)
	}

	err = encoder.EncodeString(string(put.Key()))
	if err != nil {
		return NewOperationEncodingError("encode put operation key", err)
	}

	err = encoder.EncodeString(string(put.Value()))
	if err != nil {
		return NewOperationEncodingError("encode put operation value", err)
	}

	err = encoder.EncodeBool(put.PrevKV())
	if err != nil {
		return NewOperationEncodingError("encode put operation prev flag", err)
	}

	return nil
}

func encodeDelete(encoder *msgpack.Encoder, del goOperation.Delete) error {
	err := encoder.EncodeArrayLen(deleteOperationArrayLen)
	if err != nil {
		return NewOperationEncodingError("encode delete operation array length", err)
	}

	err = encoder.EncodeString("delete")
	if err != nil {
		return NewOperationEncodingError("encode delete operation", err)
	}

	err = encoder.EncodeString(string(del.KeyRange().Key()))
	if err != nil {
		return NewOperationEncodingError("encode delete operation key", err)
	}

	err = encoder.EncodeString(string(del.KeyRange().RangeEnd()))
	if err != nil {
		return NewOperationEncodingError("encode delete operation range end", err)
	}

	err = encoder.EncodeBool(del.PrevKV())
	if err != nil {
		return NewOperationEncodingError("encode delete operation prev flag", err)
	}

	return nil
}

func encodeNested(encoder *msgpack.Encoder, nested txn.Nested) error {
	err := encoder.EncodeArrayLen(txnOperationArrayLen)
	if err != nil {
		return NewOperationEncodingError("encode txn operation array length", err)
	}

	err = encoder.EncodeString("txn")
	if err != nil {
		return NewOperationEncodingError("encode txn operation", err)
	}

	err = encoder.Encode(newTxnRequest(nested.Request()))
	if err != nil {
		return NewOperationEncodingError("encode txn operation request", err)
	}

	return nil
}
