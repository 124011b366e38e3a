package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/replikv/go-kvtxn/keyrange"
	"github.com/replikv/go-kvtxn/predicate"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	keyRange := keyrange.One([]byte("test-key"))
	p := predicate.Version(keyRange, predicate.OpEqual, 42)

	assert.Equal(t, keyRange, p.KeyRange())
	assert.Equal(t, predicate.OpEqual, p.Operation())
	assert.Equal(t, predicate.TargetVersion, p.Target())
	assert.Equal(t, int64(42), p.Value())
}

func TestCreateRevision(t *testing.T) {
	t.Parallel()

	keyRange := keyrange.One([]byte("test-key"))
	p := predicate.CreateRevision(keyRange, predicate.OpGreater, 7)

	assert.Equal(t, keyRange, p.KeyRange())
	assert.Equal(t, predicate.OpGreater, p.Operation())
	assert.Equal(t, predicate.TargetCreateRevision, p.Target())
	assert.Equal(t, int64(7), p.Value())
}

func TestModRevision(t *testing.T) {
	t.Parallel()

	keyRange := keyrange.Prefix([]byte("config/"))
	p := predicate.ModRevision(keyRange, predicate.OpLess, 100)

	assert.Equal(t, keyRange, p.KeyRange())
	assert.Equal(t, predicate.OpLess, p.Operation())
	assert.Equal(t, predicate.TargetModRevision, p.Target())
	assert.Equal(t, int64(100), p.Value())
}

func TestValue(t *testing.T) {
	t.Parallel()

	keyRange := keyrange.One([]byte("test-key"))
	p := predicate.Value(keyRange, predicate.OpNotEqual, []byte("test-value"))

	assert.Equal(t, keyRange, p.KeyRange())
	assert.Equal(t, predicate.OpNotEqual, p.Operation())
	assert.Equal(t, predicate.TargetValue, p.Target())
	assert.Equal(t, []byte("test-value"), p.Value())
}
