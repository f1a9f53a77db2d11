package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bosko-storefront/internal/diagnostics"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer credential of the calling device and is told
// when the backend rejects it.
type TokenSource interface {
	Token() string
	Invalidate(ctx context.Context)
}

// Backend holds what is shared by every device: base URLs, the HTTP client and
// the diagnostics sink.
type Backend struct {
	baseURL   string
	assetBase string
	http      *http.Client
	sink      diagnostics.Sink
	logger    *log.Logger
}

type Options struct {
	BaseURL   string
	AssetBase string
	// Timeout of zero means requests are bounded only by their context.
	Timeout   time.Duration
	Transport http.RoundTripper
	Sink      diagnostics.Sink
	Logger    *log.Logger
}

func NewBackend(opts Options) *Backend {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	sink := opts.Sink
	if sink == nil {
		sink = diagnostics.NewLogSink(logger)
	}
	assetBase := opts.AssetBase
	if assetBase == "" {
		assetBase = deriveAssetBase(opts.BaseURL)
	}
	return &Backend{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		assetBase: strings.TrimRight(assetBase, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		sink:   sink,
		logger: logger,
	}
}

// deriveAssetBase strips a trailing /api from the base URL.
func deriveAssetBase(base string) string {
	base = strings.TrimRight(base, "/")
	return strings.TrimSuffix(base, "/api")
}

func (b *Backend) ImageURL(ref string) string {
	return ResolveImageURL(b.assetBase, ref)
}

// Client calls the backend on behalf of one device. A nil TokenSource calls anonymously.
func (b *Backend) Client(ts TokenSource) *Client {
	return &Client{backend: b, tokens: ts}
}

type Client struct {
	backend *Backend
	tokens  TokenSource
}

// Envelope is the standard response wrapper of the backend.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    T        `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

// Paged is the paging shape used by list endpoints.
type Paged[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"totalCount"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// ListQuery carries the common list parameters plus resource specific filters.
type ListQuery struct {
	Page           int
	PageSize       int
	Search         string
	SortBy         string
	SortDescending bool
	Filters        map[string]string
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
		v.Set("sortDescending", strconv.FormatBool(q.SortDescending))
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// anonymousEndpoints never carry the bearer credential, and a 401 from them
// leaves the session alone. Password reset is among them: it is authorized by
// the emailed reset token, not by a signed-in session.
var anonymousEndpoints = []string{
	"/auth/login",
	"/auth/register",
	"/auth/google-login",
	"/auth/forgot-password",
	"/auth/reset-password",
}

func isAnonymousEndpoint(path string) bool {
	for _, p := range anonymousEndpoints {
		if path == p {
			return true
		}
	}
	return false
}

const maxDiagnosticBody = 64 << 10

// do sends one request and decodes the response into out. Responses wrapped in
// an Envelope are unwrapped; bare payloads are decoded directly. Nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	b := c.backend
	endpoint := b.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil && !isAnonymousEndpoint(path) {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := b.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		b.logger.Printf("backend %s %s unreachable: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.tokens != nil && !isAnonymousEndpoint(path) {
			c.tokens.Invalidate(ctx)
			return ErrUnauthorized
		}
		return parseValidationError(resp.StatusCode, respBody)
	case resp.StatusCode >= 500:
		b.sink.Report(ctx, diagnostics.Report{
			RequestID:    requestID,
			Method:       method,
			Endpoint:     path,
			Status:       resp.StatusCode,
			RequestBody:  truncate(payload),
			ResponseBody: truncate(respBody),
			OccurredAt:   time.Now().UTC(),
		})
		return &ServerError{Status: resp.StatusCode, Method: method, Endpoint: path}
	case resp.StatusCode >= 400:
		return parseValidationError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return decodeData(respBody, out)
}

func decodeData(body []byte, out interface{}) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err == nil {
		_, hasSuccess := probe["success"]
		data, hasData := probe["data"]
		if hasSuccess && hasData {
			if ok := string(probe["success"]); ok == "false" {
				var env Envelope[json.RawMessage]
				_ = json.Unmarshal(body, &env)
				return &ValidationError{Status: http.StatusOK, Message: env.Message, Errors: env.Errors}
			}
			body = data
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(b []byte) string {
	if len(b) > maxDiagnosticBody {
		return string(b[:maxDiagnosticBody]) + "...(truncated)"
	}
	return string(b)
}

// IsUnreachable reports whether err is a transport failure.
func IsUnreachable(err error) bool { return errors.Is(err, ErrUnreachable) }
