package restclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/gaborage/go-restkit/logger"
	"github.com/gaborage/go-restkit/trace"
)

const (
	// DefaultConnectTimeout is the default connection-establishment timeout
	DefaultConnectTimeout = 10 * time.Second

	// DefaultReadTimeout is the default whole-request timeout
	DefaultReadTimeout = 30 * time.Second

	// DefaultUploadBufferSize is the chunk size used when streaming file
	// parts from disk
	DefaultUploadBufferSize = 32 * 1024

	// MethodMultipart routes a request through the multipart encoder. The
	// request goes out as a POST with a multipart/form-data body.
	MethodMultipart = "MULTIPART"

	jsonContentType = "application/json; charset=UTF-8"

	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
)

// Client executes typed HTTP requests against a single base URL. All verb
// methods are safe for concurrent use: each call builds its own request and
// shares no mutable state beyond the default-header snapshot, which is
// replaced wholesale rather than mutated in place.
type Client struct {
	httpClient *nethttp.Client
	log        logger.Logger
	baseURL    string
	auth       *Authorization
	bufSize    int
	retry      *RetryPolicy
	limiter    *rate.Limiter
	readTO     time.Duration

	// defaults holds an immutable snapshot of the default headers so
	// in-flight requests always observe a consistent set.
	defaults atomic.Pointer[[]Header]
}

// Builder assembles a Client. Zero-value timeouts fall back to the package
// defaults; explicitly non-positive timeouts are rejected by Build.
type Builder struct {
	log       logger.Logger
	baseURL   string
	connectTO time.Duration
	readTO    time.Duration
	bufSize   int
	headers   []Header
	auth      *Authorization
	retry     *RetryPolicy
	limiter   *rate.Limiter
	client    *nethttp.Client
}

// NewBuilder creates a client builder for the given base URL.
func NewBuilder(log logger.Logger, baseURL string) *Builder {
	return &Builder{
		log:       log,
		baseURL:   baseURL,
		connectTO: DefaultConnectTimeout,
		readTO:    DefaultReadTimeout,
		bufSize:   DefaultUploadBufferSize,
	}
}

// WithTimeouts sets the connection and read timeouts.
func (b *Builder) WithTimeouts(connect, read time.Duration) *Builder {
	b.connectTO = connect
	b.readTO = read
	return b
}

// WithDefaultHeaders sets the headers sent with every request.
func (b *Builder) WithDefaultHeaders(headers ...Header) *Builder {
	b.headers = headers
	return b
}

// WithBasicAuth pre-injects a Basic Authorization header.
func (b *Builder) WithBasicAuth(username, password string) *Builder {
	b.auth = &Authorization{Username: username, Password: password}
	return b
}

// WithBearerToken pre-injects a Bearer Authorization header.
func (b *Builder) WithBearerToken(token string) *Builder {
	b.auth = &Authorization{Bearer: token}
	return b
}

// WithRetryPolicy enables the retry coordinator for every request.
func (b *Builder) WithRetryPolicy(policy *RetryPolicy) *Builder {
	b.retry = policy
	return b
}

// WithUploadBufferSize sets the chunk size for streaming file parts.
func (b *Builder) WithUploadBufferSize(size int) *Builder {
	b.bufSize = size
	return b
}

// WithRateLimit throttles outgoing requests to rps requests per second with
// the given burst.
func (b *Builder) WithRateLimit(rps float64, burst int) *Builder {
	b.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return b
}

// WithHTTPClient supplies a custom *http.Client, overriding the timeouts
// configured on the builder.
func (b *Builder) WithHTTPClient(client *nethttp.Client) *Builder {
	b.client = client
	return b
}

// Build validates the configuration and creates the client. Configuration
// errors (non-positive timeouts or buffer size, missing base URL, invalid
// retry policy) are returned synchronously here, never deferred into a
// response.
func (b *Builder) Build() (*Client, error) {
	if b.baseURL == "" {
		return nil, NewValidationError("base URL cannot be empty", "baseURL")
	}
	if b.connectTO <= 0 {
		return nil, NewValidationError("connect timeout must be positive", "connectTimeout")
	}
	if b.readTO <= 0 {
		return nil, NewValidationError("read timeout must be positive", "readTimeout")
	}
	if b.bufSize <= 0 {
		return nil, NewValidationError("upload buffer size must be positive", "uploadBufferSize")
	}
	if b.retry != nil {
		if err := b.retry.validate(); err != nil {
			return nil, err
		}
	}

	httpClient := b.client
	if httpClient == nil {
		httpClient = &nethttp.Client{
			Timeout: b.readTO,
			Transport: &nethttp.Transport{
				DialContext: (&net.Dialer{Timeout: b.connectTO}).DialContext,
			},
		}
	}

	c := &Client{
		httpClient: httpClient,
		log:        b.log,
		baseURL:    b.baseURL,
		auth:       b.auth,
		bufSize:    b.bufSize,
		retry:      b.retry,
		limiter:    b.limiter,
		readTO:     b.readTO,
	}
	c.SetDefaultHeaders(b.headers)
	return c, nil
}

// SetDefaultHeaders replaces the default-header set wholesale. In-flight
// requests keep the snapshot they already read.
func (c *Client) SetDefaultHeaders(headers []Header) {
	snapshot := make([]Header, len(headers))
	copy(snapshot, headers)
	c.defaults.Store(&snapshot)
}

// ClearDefaultHeaders removes all default headers.
func (c *Client) ClearDefaultHeaders() {
	c.SetDefaultHeaders(nil)
}

// DefaultHeaders returns a copy of the current default-header snapshot.
func (c *Client) DefaultHeaders() []Header {
	snapshot := c.defaults.Load()
	if snapshot == nil {
		return nil
	}
	out := make([]Header, len(*snapshot))
	copy(out, *snapshot)
	return out
}

// Get performs a blocking GET request.
func (c *Client) Get(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, nethttp.MethodGet, req)
}

// Post performs a blocking POST request with a JSON body.
func (c *Client) Post(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, nethttp.MethodPost, req)
}

// Put performs a blocking PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, nethttp.MethodPut, req)
}

// Patch performs a blocking PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, nethttp.MethodPatch, req)
}

// Delete performs a blocking DELETE request.
func (c *Client) Delete(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, nethttp.MethodDelete, req)
}

// Multipart performs a blocking POST with a multipart/form-data body built
// from req.Parts.
func (c *Client) Multipart(ctx context.Context, req *Request) (*RawResponse, error) {
	return c.Do(ctx, MethodMultipart, req)
}

// Do performs a blocking request with the specified method, applying the
// client's retry policy when one is configured. The returned error is
// non-nil only for construction-time failures: a nil or invalid request,
// a body that cannot be serialized, or a URL the transport cannot parse.
// Transport and read failures are captured in RawResponse.Err instead.
func (c *Client) Do(ctx context.Context, method string, req *Request) (*RawResponse, error) {
	if req == nil {
		return nil, NewValidationError("request cannot be nil", "request")
	}

	body, contentType, err := c.buildBody(method, req)
	if err != nil {
		return nil, err
	}

	url := joinURL(c.baseURL, req.Endpoint, req.Queries)

	// Surface malformed URLs as a hard failure before any attempt runs.
	if _, err := nethttp.NewRequestWithContext(ctx, wireMethod(method), url, nil); err != nil {
		return nil, NewValidationError("malformed request URL: "+err.Error(), "url")
	}

	attempt := func(ctx context.Context) *RawResponse {
		return c.attempt(ctx, method, url, req, body, contentType)
	}

	if c.retry == nil || c.retry.Count <= 0 {
		return attempt(ctx), nil
	}
	return c.retry.execute(ctx, attempt), nil
}

// wireMethod maps the pseudo multipart method to the verb actually sent.
func wireMethod(method string) string {
	if method == MethodMultipart {
		return nethttp.MethodPost
	}
	return method
}

// buildBody serializes the request payload for the given method and returns
// the body bytes plus the content type implied by the encoding, if any.
func (c *Client) buildBody(method string, req *Request) ([]byte, string, error) {
	switch method {
	case nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodPatch:
		if req.Body == nil {
			return nil, "", nil
		}
		encoded, err := encodeBody(req.Body)
		if err != nil {
			return nil, "", err
		}
		return []byte(encoded), jsonContentType, nil
	case MethodMultipart:
		if err := validateParts(req.Parts); err != nil {
			return nil, "", err
		}
		var buf bytes.Buffer
		if err := encodeMultipart(&buf, req.Parts, c.bufSize); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), MultipartContentType, nil
	default:
		return nil, "", nil
	}
}

// attempt runs one request/response cycle. All I/O failures are captured in
// the returned RawResponse.
func (c *Client) attempt(ctx context.Context, method, url string, req *Request, body []byte, contentType string) *RawResponse {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RawResponse{
				Timestamp: time.Now(),
				Err:       NewNetworkError("rate limiter wait aborted", err),
			}
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := nethttp.NewRequestWithContext(ctx, wireMethod(method), url, reader)
	if err != nil {
		return &RawResponse{
			Timestamp: time.Now(),
			Err:       NewNetworkError("failed to build HTTP request", err),
		}
	}

	c.applyHeaders(httpReq, req, contentType, body != nil)
	c.applyAuth(httpReq)
	c.applyTrace(ctx, httpReq)
	c.logRequest(method, url, httpReq, body)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		raw := &RawResponse{Timestamp: time.Now()}
		if c.isTimeout(err) {
			raw.Err = NewTimeoutError("request timed out", c.readTO)
		} else {
			raw.Err = NewNetworkError("request execution failed", err)
		}
		c.logFailure(method, url, raw.Err)
		return raw
	}
	defer httpResp.Body.Close()

	raw := &RawResponse{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Timestamp:  time.Now(),
	}
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		raw.Err = NewNetworkError("failed to read response body", err)
	} else {
		raw.RawBody = string(respBody)
	}

	c.logResponse(method, url, raw)
	return raw
}

// applyHeaders merges the default-header snapshot with the per-call headers.
// Defaults go first and per-call values are appended after, so an explicit
// header for the same key overrides the default for readers taking the last
// occurrence, while duplicates stay visible.
func (c *Client) applyHeaders(httpReq *nethttp.Request, req *Request, contentType string, hasBody bool) {
	if snapshot := c.defaults.Load(); snapshot != nil {
		for _, h := range *snapshot {
			httpReq.Header.Add(h.Key, h.Value)
		}
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Key, h.Value)
	}
	if hasBody && contentType != "" && httpReq.Header.Get(headerContentType) == "" {
		httpReq.Header.Set(headerContentType, contentType)
	}
}

// applyAuth injects the configured Authorization header unless the request
// already carries one.
func (c *Client) applyAuth(httpReq *nethttp.Request) {
	if c.auth == nil || httpReq.Header.Get(headerAuthorization) != "" {
		return
	}
	if c.auth.Bearer != "" {
		httpReq.Header.Set(headerAuthorization, "Bearer "+c.auth.Bearer)
		return
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.auth.Username + ":" + c.auth.Password))
	httpReq.Header.Set(headerAuthorization, "Basic "+creds)
}

// applyTrace stamps the outgoing request with a request ID and, when the
// context carries one, the W3C traceparent value.
func (c *Client) applyTrace(ctx context.Context, httpReq *nethttp.Request) {
	if httpReq.Header.Get(trace.HeaderXRequestID) == "" {
		httpReq.Header.Set(trace.HeaderXRequestID, trace.EnsureRequestID(ctx))
	}
	if tp, ok := trace.ParentFromContext(ctx); ok && httpReq.Header.Get(trace.HeaderTraceParent) == "" {
		httpReq.Header.Set(trace.HeaderTraceParent, tp)
	}
}

func (c *Client) isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) logRequest(method, url string, httpReq *nethttp.Request, body []byte) {
	if c.log == nil {
		return
	}
	logEvent := c.log.Info().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", url).
		Interface("headers", map[string][]string(httpReq.Header))

	if len(body) > 0 {
		logEvent = logEvent.Int("body_bytes", len(body))
	}
	logEvent.Msg("REST client request")
}

func (c *Client) logResponse(method, url string, raw *RawResponse) {
	if c.log == nil {
		return
	}
	logEvent := c.log.Info().
		Str("direction", "inbound").
		Str("method", method).
		Str("url", url).
		Int("status", raw.StatusCode)

	if raw.Err != nil {
		logEvent = logEvent.Err(raw.Err)
	}
	logEvent.Msg("REST client response")
}

func (c *Client) logFailure(method, url string, err error) {
	if c.log == nil {
		return
	}
	c.log.Error().
		Str("method", method).
		Str("url", url).
		Err(err).
		Msg("REST client request failed")
}
