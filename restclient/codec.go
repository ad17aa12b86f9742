package restclient

import (
	"encoding/json"
)

// encodeBody serializes a request payload to its JSON representation.
func encodeBody(value any) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", NewSerializationError("failed to encode request body", err)
	}
	return string(b), nil
}

// decodeBody attempts a typed decode of a raw response body. A body that is
// not valid JSON for the target type is returned verbatim when the target is
// a plain string (the payload is treated as text); any other decode failure
// yields a nil body and a serialization error for the caller to record.
func decodeBody[T any](raw string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		if s, ok := any(&v).(*string); ok {
			*s = raw
			return &v, nil
		}
		return nil, NewSerializationError("failed to decode response body", err)
	}
	return &v, nil
}

// Normalize converts a transport-level RawResponse into a typed Response.
// Status, headers, raw body, and timestamp pass through unchanged. The body
// is decoded only when present; a transport error already recorded on the
// raw response takes precedence over any decode error.
func Normalize[T any](raw *RawResponse) *Response[T] {
	resp := &Response[T]{
		StatusCode: raw.StatusCode,
		Headers:    raw.Headers,
		RawBody:    raw.RawBody,
		Timestamp:  raw.Timestamp,
		Err:        raw.Err,
	}
	if raw.RawBody == "" {
		return resp
	}
	body, err := decodeBody[T](raw.RawBody)
	resp.Body = body
	if err != nil && resp.Err == nil {
		resp.Err = err
	}
	return resp
}
