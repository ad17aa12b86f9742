package restclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string            `json:"name"`
	Count  int               `json:"count"`
	Tags   []string          `json:"tags,omitempty"`
	Nested map[string]string `json:"nested,omitempty"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		in := payload{Name: "widget", Count: 3, Tags: []string{"a", "b"}}
		raw, err := encodeBody(in)
		require.NoError(t, err)

		out, err := decodeBody[payload](raw)
		require.NoError(t, err)
		assert.Equal(t, in, *out)
	})

	t.Run("empty object", func(t *testing.T) {
		raw, err := encodeBody(payload{})
		require.NoError(t, err)

		out, err := decodeBody[payload](raw)
		require.NoError(t, err)
		assert.Equal(t, payload{}, *out)
	})

	t.Run("string", func(t *testing.T) {
		raw, err := encodeBody("hello")
		require.NoError(t, err)
		assert.Equal(t, `"hello"`, raw)

		out, err := decodeBody[string](raw)
		require.NoError(t, err)
		assert.Equal(t, "hello", *out)
	})

	t.Run("number", func(t *testing.T) {
		raw, err := encodeBody(42)
		require.NoError(t, err)

		out, err := decodeBody[int](raw)
		require.NoError(t, err)
		assert.Equal(t, 42, *out)
	})

	t.Run("nested map and list", func(t *testing.T) {
		in := map[string]any{
			"items": []any{"a", "b"},
			"meta":  map[string]any{"depth": float64(2)},
		}
		raw, err := encodeBody(in)
		require.NoError(t, err)

		out, err := decodeBody[map[string]any](raw)
		require.NoError(t, err)
		assert.Equal(t, in, *out)
	})
}

func TestDecodeBodyPlainTextFallback(t *testing.T) {
	out, err := decodeBody[string]("not json at all")
	require.NoError(t, err)
	assert.Equal(t, "not json at all", *out)
}

func TestDecodeBodyTypedMismatch(t *testing.T) {
	out, err := decodeBody[payload]("not json at all")
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, SerializationError))
}

func TestEncodeBodyUnsupportedValue(t *testing.T) {
	_, err := encodeBody(func() {})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, SerializationError))
}

func TestNormalize(t *testing.T) {
	now := time.Now()

	t.Run("typed body", func(t *testing.T) {
		raw := &RawResponse{
			StatusCode: 200,
			RawBody:    `{"name":"widget","count":1}`,
			Headers:    map[string][]string{"X-Test": {"1"}},
			Timestamp:  now,
		}
		resp := Normalize[payload](raw)
		require.NotNil(t, resp.Body)
		assert.Equal(t, "widget", resp.Body.Name)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, raw.Headers, resp.Headers)
		assert.Equal(t, raw.RawBody, resp.RawBody)
		assert.Equal(t, now, resp.Timestamp)
		assert.NoError(t, resp.Err)
		assert.True(t, resp.IsSuccess())
	})

	t.Run("empty body yields nil body and no error", func(t *testing.T) {
		raw := &RawResponse{StatusCode: 202, Timestamp: now}
		resp := Normalize[payload](raw)
		assert.Nil(t, resp.Body)
		assert.NoError(t, resp.Err)
		assert.True(t, resp.IsSuccess())
	})

	t.Run("decode failure recorded", func(t *testing.T) {
		raw := &RawResponse{StatusCode: 200, RawBody: "garbage", Timestamp: now}
		resp := Normalize[payload](raw)
		assert.Nil(t, resp.Body)
		require.Error(t, resp.Err)
		assert.True(t, IsErrorType(resp.Err, SerializationError))
		assert.Equal(t, "garbage", resp.RawBody)
	})

	t.Run("transport error takes precedence over decode error", func(t *testing.T) {
		transportErr := NewNetworkError("boom", nil)
		raw := &RawResponse{RawBody: "garbage", Timestamp: now, Err: transportErr}
		resp := Normalize[payload](raw)
		assert.Equal(t, transportErr, resp.Err)
	})
}
