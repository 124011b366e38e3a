package testing

import (
	"bytes"
	"context"
	"io"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MockRequest is a no-op request used to build futures for canned responses.
type MockRequest struct{}

var _ tarantool.Request = MockRequest{}

// NewMockRequest returns a new mock request.
func NewMockRequest() MockRequest {
	return MockRequest{}
}

// Type returns the request type.
func (r MockRequest) Type() iproto.Type {
	return iproto.IPROTO_CALL
}

// Async reports whether the request expects no response.
func (r MockRequest) Async() bool {
	return false
}

// Body encodes an empty request body.
func (r MockRequest) Body(_ tarantool.SchemaResolver, enc *msgpack.Encoder) error {
	return enc.EncodeMapLen(0)
}

// Ctx returns the request context.
func (r MockRequest) Ctx() context.Context {
	return context.Background()
}

// Response decodes a canned response body.
func (r MockRequest) Response(header tarantool.Header, body io.Reader) (tarantool.Response, error) {
	return tarantool.DecodeBaseResponse(header, body)
}

// MockResponse is a canned reply payload for MockDoer.
type MockResponse struct {
	header tarantool.Header
	data   []byte
}

// NewMockResponse encodes the given body as the data field of a call reply.
func NewMockResponse(t T, body any) *MockResponse {
	t.Helper()

	var buf bytes.Buffer

	encoder := msgpack.NewEncoder(&buf)

	if err := encoder.EncodeMapLen(1); err != nil {
		t.Fatalf("failed to encode response map: %v", err)
	}

	if err := encoder.EncodeUint(uint64(iproto.IPROTO_DATA)); err != nil {
		t.Fatalf("failed to encode response key: %v", err)
	}

	if err := encoder.Encode(body); err != nil {
		t.Fatalf("failed to encode response body: %v", err)
	}

	return &MockResponse{
		header: tarantool.Header{}, //nolint:exhaustruct
		data:   buf.Bytes(),
	}
}
