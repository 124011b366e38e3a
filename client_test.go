package kvtxn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kvtxn "github.com/replikv/go-kvtxn"
	"github.com/replikv/go-kvtxn/driver/dummy"
	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/operation"
	"github.com/replikv/go-kvtxn/predicate"
	"github.com/replikv/go-kvtxn/txn"
)

func newTestClient(t *testing.T) kvtxn.Client {
	t.Helper()

	return kvtxn.New(dummy.New())
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	request := txn.NewBuilder().
		Then(operation.NewPut([]byte("test-key"), []byte("test-value"))).
		Finalize()

	resp, err := client.Do(ctx, request)

	require.NoError(t, err)
	assert.True(t, resp.Succeeded)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, operation.TypePut, resp.Results[0].Type())
}

func TestClient_Range(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Txn(ctx).
		Then(
			operation.NewPut([]byte("config/a"), []byte("1")),
			operation.NewPut([]byte("config/b"), []byte("2")),
			operation.NewPut([]byte("other"), []byte("3")),
		).
		Commit()
	require.NoError(t, err)

	kvs, err := client.Range(ctx, keyrange.Prefix([]byte("config/")))

	require.NoError(t, err)
	require.Len(t, kvs, 2)
	assert.Equal(t, []byte("config/a"), kvs[0].Key)
	assert.Equal(t, []byte("config/b"), kvs[1].Key)
}

func TestClient_RangeWithLimit(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Txn(ctx).
		Then(
			operation.NewPut([]byte("config/a"), []byte("1")),
			operation.NewPut([]byte("config/b"), []byte("2")),
			operation.NewPut([]byte("config/c"), []byte("3")),
		).
		Commit()
	require.NoError(t, err)

	kvs, err := client.Range(ctx, keyrange.Prefix([]byte("config/")), kvtxn.WithLimit(2))

	require.NoError(t, err)
	assert.Len(t, kvs, 2)
}

func TestClient_TxnConditional(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.Txn(ctx).
		Then(operation.NewPut([]byte("foo"), []byte("bar"))).
		Commit()
	require.NoError(t, err)

	resp, err := client.Txn(ctx).
		If(predicate.Value(keyrange.One([]byte("foo")), predicate.OpEqual, []byte("bar"))).
		Then(operation.NewPut([]byte("foo"), []byte("baz"))).
		Else(operation.NewGet(keyrange.One([]byte("foo")))).
		Commit()

	require.NoError(t, err)
	assert.True(t, resp.Succeeded)

	kvs, err := client.Range(ctx, keyrange.One([]byte("foo")))
	require.NoError(t, err)
	require.Len(t, kvs, 1)
	assert.Equal(t, []byte("baz"), kvs[0].Value)
}

func TestClient_TxnSetOncePanics(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	pred := predicate.Version(keyrange.One([]byte("test-key")), predicate.OpEqual, 1)
	put := operation.NewPut([]byte("test-key"), []byte("test-value"))

	assert.PanicsWithValue(t, "predicates are already set", func() {
		client.Txn(ctx).If(pred).If(pred)
	})

	assert.PanicsWithValue(t, "If can only be called before Then/Else", func() {
		client.Txn(ctx).Then(put).If(pred)
	})

	assert.PanicsWithValue(t, "then operations are already set", func() {
		client.Txn(ctx).Then(put).Then(put)
	})

	assert.PanicsWithValue(t, "Then can only be called before Else", func() {
		client.Txn(ctx).Else(put).Then(put)
	})

	assert.PanicsWithValue(t, "else operations are already set", func() {
		client.Txn(ctx).Else(put).Else(put)
	})
}

func TestClient_TxnEmptyCommit(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	resp, err := client.Txn(context.Background()).Commit()

	require.NoError(t, err)
	assert.True(t, resp.Succeeded)
	assert.Empty(t, resp.Results)
}
