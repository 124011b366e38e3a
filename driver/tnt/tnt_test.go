// Package tnt_test provides unit tests for the Tarantool driver. It uses a
// mock connection, so no running Tarantool instance is required.
package tnt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replikv/go-kvtxn/driver/tnt"
	mocks "github.com/replikv/go-kvtxn/internal/testing"
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/kv"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
	"github.com/replikv/go-kvtxn/txn"
)

func testRequest() txn.Request {
	return txn.NewBuilder().
		WhenVersion(keyrange.One([]byte("test-key")), predicate.OpEqual, 1).
		Then(operation.NewPut([]byte("test-key"), []byte("test-value"))).
		Else(operation.NewGet(keyrange.One([]byte("test-key")))).
		Finalize()
}

func TestNew(t *testing.T) {
	t.Parallel()

	driver := tnt.New(mocks.NewMockDoer(t))

	assert.NotNil(t, driver)
}

func TestDriver_Execute_SuccessBranch(t *testing.T) {
	t.Parallel()

	body := []any{
		map[string]any{
			"data": map[string]any{
				"is_success": true,
				"responses": []any{
					map[string]any{"type": "put"},
				},
			},
			"revision": 7,
		},
	}

	mockDoer := mocks.NewMockDoer(t, mocks.NewMockResponse(t, body))
	driver := tnt.New(mockDoer)

	resp, err := driver.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, mockDoer.Requests, 1)
	assert.True(t, resp.Succeeded)
	require.Len(t, resp.Results, 1)

	put, ok := resp.Results[0].(txn.PutResult)
	require.True(t, ok)
	assert.False(t, put.PrevKV.IsSome())
}

func TestDriver_Execute_FailureBranch(t *testing.T) {
	t.Parallel()

	body := []any{
		map[string]any{
			"data": map[string]any{
				"is_success": false,
				"responses": []any{
					map[string]any{
						"type": "get",
						"kvs": []any{
							map[string]any{
								"path":            "test-key",
								"value":           "test-value",
								"create_revision": 1,
								"mod_revision":    2,
								"version":         2,
							},
						},
						"count": 1,
						"more":  false,
					},
				},
			},
			"revision": 7,
		},
	}

	mockDoer := mocks.NewMockDoer(t, mocks.NewMockResponse(t, body))
	driver := tnt.New(mockDoer)

	resp, err := driver.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.False(t, resp.Succeeded)
	require.Len(t, resp.Results, 1)

	get, ok := resp.Results[0].(txn.GetResult)
	require.True(t, ok)
	require.Len(t, get.KVs, 1)
	assert.Equal(t, kv.KeyValue{
		Key:            []byte("test-key"),
		Value:          []byte("test-value"),
		CreateRevision: 1,
		ModRevision:    2,
		Version:        2,
	}, get.KVs[0])
	assert.Equal(t, int64(1), get.Count)
}

func TestDriver_Execute_NestedResult(t *testing.T) {
	t.Parallel()

	body := []any{
		map[string]any{
			"data": map[string]any{
				"is_success": true,
				"responses": []any{
					map[string]any{
						"type": "txn",
						"txn": map[string]any{
							"is_success": false,
							"responses": []any{
								map[string]any{"type": "delete", "deleted": 2},
							},
						},
					},
				},
			},
			"revision": 9,
		},
	}

	mockDoer := mocks.NewMockDoer(t, mocks.NewMockResponse(t, body))
	driver := tnt.New(mockDoer)

	resp, err := driver.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	nested, ok := resp.Results[0].(txn.TxnResult)
	require.True(t, ok)
	assert.False(t, nested.Response.Succeeded)
	require.Len(t, nested.Response.Results, 1)

	del, ok := nested.Response.Results[0].(txn.DeleteResult)
	require.True(t, ok)
	assert.Equal(t, int64(2), del.Deleted)
}

func TestDriver_Execute_ConnectionError(t *testing.T) {
	t.Parallel()

	connErr := errors.New("connection refused")

	mockDoer := mocks.NewMockDoer(t, connErr)
	driver := tnt.New(mockDoer)

	_, err := driver.Execute(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
}

func TestDriver_Execute_UnexpectedResponse(t *testing.T) {
	t.Parallel()

	mockDoer := mocks.NewMockDoer(t, mocks.NewMockResponse(t, []any{}))
	driver := tnt.New(mockDoer)

	_, err := driver.Execute(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, tnt.ErrUnexpectedResponse)
}

func TestDriver_Execute_UnknownResultType(t *testing.T) {
	t.Parallel()

	body := []any{
		map[string]any{
			"data": map[string]any{
				"is_success": true,
				"responses": []any{
					map[string]any{"type": "merge"},
				},
			},
			"revision": 1,
		},
	}

	mockDoer := mocks.NewMockDoer(t, mocks.NewMockResponse(t, body))
	driver := tnt.New(mockDoer)

	_, err := driver.Execute(context.Background(), testRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, tnt.ErrUnknownResultType)
}
