package restclient

import (
	"context"
	nethttp "net/http"
)

// Do performs a blocking request and normalizes the result into a typed
// Response. The error return covers construction-time failures only; I/O and
// decode failures are carried on the response.
func Do[T any](ctx context.Context, c *Client, method string, req *Request) (*Response[T], error) {
	raw, err := c.Do(ctx, method, req)
	if err != nil {
		return nil, err
	}
	return Normalize[T](raw), nil
}

// Get performs a typed blocking GET request.
func Get[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, nethttp.MethodGet, req)
}

// Post performs a typed blocking POST request.
func Post[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, nethttp.MethodPost, req)
}

// Put performs a typed blocking PUT request.
func Put[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, nethttp.MethodPut, req)
}

// Patch performs a typed blocking PATCH request.
func Patch[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, nethttp.MethodPatch, req)
}

// Delete performs a typed blocking DELETE request.
func Delete[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, nethttp.MethodDelete, req)
}

// Multipart performs a typed blocking multipart POST request.
func Multipart[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	return Do[T](ctx, c, MethodMultipart, req)
}
