package restclient

import (
	"time"
)

// Query is a single URL query parameter. Queries are kept as an ordered list
// so the composed URL reproduces the caller's ordering.
type Query struct {
	Key   string
	Value string
}

// Header is a single HTTP header. Headers are a list rather than a map so
// duplicate keys are permitted and ordering is preserved.
type Header struct {
	Key   string
	Value string
}

// Part is one section of a multipart/form-data request. Exactly one of Body
// and FilePath must be set: Body is JSON-encoded inline, FilePath is streamed
// from disk in fixed-size chunks.
type Part struct {
	Name        string
	Body        any
	FilePath    string
	ContentType string
}

// Request describes a single HTTP call against the client's base URL.
type Request struct {
	// Endpoint is joined to the client's base URL with a "/" separator.
	Endpoint string
	// Queries are appended percent-encoded to the composed URL.
	Queries []Query
	// Headers are applied after the client's default headers, so a per-call
	// value for the same key appears later and wins for readers that take
	// the last occurrence.
	Headers []Header
	// Body is JSON-encoded for POST/PUT/PATCH requests. Ignored for GET and
	// DELETE.
	Body any
	// Parts holds the sections of a multipart request. Only used by Multipart.
	Parts []Part
}

// RawResponse is the untyped transport-level result of a single attempt.
// A zero StatusCode signals that no response was received at all. Transport
// failures are captured in Err rather than returned as hard errors.
type RawResponse struct {
	StatusCode int
	RawBody    string
	Headers    map[string][]string
	Timestamp  time.Time
	Err        error
}

// Response is the typed, caller-facing result envelope. Body is nil when the
// response had no body or when decoding failed; in the latter case Err holds
// the decode error unless a transport error was already recorded.
type Response[T any] struct {
	StatusCode int
	Body       *T
	Headers    map[string][]string
	RawBody    string
	Timestamp  time.Time
	Err        error
}

// IsSuccess reports whether the response completed without a captured error
// and with a 2xx status.
func (r *Response[T]) IsSuccess() bool {
	return r.Err == nil && IsSuccessStatus(r.StatusCode)
}

// Authorization is a pre-built Authorization header value, either Basic
// credentials or a Bearer token.
type Authorization struct {
	Username string
	Password string
	Bearer   string
}
