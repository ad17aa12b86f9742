package restclient

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoGroup(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		hits.Add(1)
		_, _ = fmt.Fprintf(w, "%q", r.URL.Path)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	reqs := make([]GroupRequest, 5)
	for i := range reqs {
		reqs[i] = GroupRequest{
			Method:  nethttp.MethodGet,
			Request: &Request{Endpoint: fmt.Sprintf("items/%d", i)},
		}
	}

	results, err := c.DoGroup(context.Background(), 2, reqs)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, int32(5), hits.Load())

	// Results land in input order.
	for i, raw := range results {
		require.NotNil(t, raw)
		assert.Equal(t, 200, raw.StatusCode)
		assert.Equal(t, fmt.Sprintf("%q", fmt.Sprintf("/items/%d", i)), raw.RawBody)
	}
}

func TestDoGroupConstructionErrorCancelsBatch(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	reqs := []GroupRequest{
		{Method: nethttp.MethodGet, Request: &Request{Endpoint: "ok"}},
		{Method: nethttp.MethodPost, Request: &Request{Endpoint: "bad", Body: func() {}}},
	}

	results, err := c.DoGroup(context.Background(), 0, reqs)
	assert.Nil(t, results)
	assert.True(t, IsErrorType(err, SerializationError))
}

func TestDoGroupEmpty(t *testing.T) {
	c := newTestClient(t, "http://example.com")
	results, err := c.DoGroup(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
