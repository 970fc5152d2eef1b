package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/version"
)

const (
	// RequestIDHeader carries a per-request id the backend can log
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 1 << 20
)

// Client represents an HTTP client for the product backend
type Client struct {
	// BaseURL is the backend base URL (e.g., "http://localhost:4000")
	BaseURL string

	// HTTPClient is the underlying HTTP client. Its Timeout is zero unless
	// configured: a slow backend is waited for, not aborted.
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string

	// newRequestID generates X-Request-ID values
	newRequestID func() string
}

// NewClient creates a new backend client for baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{},
		UserAgent:    "registrar/" + version.Version,
		newRequestID: func() string { return uuid.NewString() },
	}
}

// SetTimeout sets the HTTP request timeout (0 disables it)
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Post sends body as JSON to BaseURL+path and decodes the {"msg"} envelope.
//
// A 2xx answer yields the decoded response; a body that is empty or not JSON
// is tolerated and yields an empty message. Any other status yields an
// *APIError of type ErrTypeHTTP whose Payload holds the decoded envelope, if
// the backend sent one. Transport failures yield a classified *APIError.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, NewParseError("failed to encode request body", err)
	}

	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, NewRequestError("failed to create POST request", err)
	}

	requestID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogHTTPRequest(requestID, req.Method, url)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewNetworkError("POST request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogHTTPResponse(requestID, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}
	envelope := decodeEnvelope(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewHTTPError(resp.StatusCode, envelope)
	}

	if envelope == nil {
		envelope = &Response{}
	}
	return envelope, nil
}

// CreateProduct registers a product (POST /producto/registrar)
func (c *Client) CreateProduct(ctx context.Context, req CreateRequest) (*Response, error) {
	return c.Post(ctx, RegisterPath, req)
}

func (c *Client) requestID() string {
	if c.newRequestID == nil {
		return uuid.NewString()
	}
	return c.newRequestID()
}

// decodeEnvelope returns nil when raw is not a JSON object.
func decodeEnvelope(raw []byte) *Response {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil
	}
	return &r
}
