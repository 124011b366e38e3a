package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replikv/go-kvtxn/codec"
)

type testValue struct {
	Name    string `msgpack:"name"    yaml:"name"`
	Replica int    `msgpack:"replica" yaml:"replica"`
}

func TestMsgpackRoundTrip(t *testing.T) {
	t.Parallel()

	in := testValue{Name: "test-name", Replica: 3}

	encoded, err := codec.Msgpack{}.Marshal(in)
	require.NoError(t, err)

	var out testValue

	require.NoError(t, codec.Msgpack{}.Unmarshal(encoded, &out))
	assert.Equal(t, in, out)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	in := testValue{Name: "test-name", Replica: 3}

	encoded, err := codec.YAML{}.Marshal(in)
	require.NoError(t, err)

	var out testValue

	require.NoError(t, codec.YAML{}.Unmarshal(encoded, &out))
	assert.Equal(t, in, out)
}

func TestYAMLUnmarshalError(t *testing.T) {
	t.Parallel()

	var out testValue

	err := codec.YAML{}.Unmarshal([]byte("\t: not yaml"), &out)

	require.Error(t, err)

	var unmarshalErr codec.UnmarshalError

	require.ErrorAs(t, err, &unmarshalErr)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestMsgpackUnmarshalError(t *testing.T) {
	t.Parallel()

	var out testValue

	err := codec.Msgpack{}.Unmarshal([]byte{0xc1}, &out)

	require.Error(t, err)

	var unmarshalErr codec.UnmarshalError

	assert.ErrorAs(t, err, &unmarshalErr)
}

func TestTypedRoundTrip(t *testing.T) {
	t.Parallel()

	typed := codec.NewTyped[testValue](codec.YAML{})

	encoded, err := typed.Marshal(testValue{Name: "test-name", Replica: 1})
	require.NoError(t, err)

	out, err := typed.Unmarshal(encoded)

	require.NoError(t, err)
	assert.Equal(t, testValue{Name: "test-name", Replica: 1}, out)
}

func TestTypedUnmarshalErrorReturnsZero(t *testing.T) {
	t.Parallel()

	typed := codec.NewTyped[testValue](codec.Msgpack{})

	out, err := typed.Unmarshal([]byte{0xc1})

	require.Error(t, err)
	assert.Equal(t, testValue{}, out) //nolint:exhaustruct
}
