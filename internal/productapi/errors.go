package productapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request timed out
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeParse indicates a request or response body could not be encoded or decoded
	ErrTypeParse
	// ErrTypeRequest indicates the request could not be built (bad URL, bad method)
	ErrTypeRequest
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeRequest:
		return "Request Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError is the rejected outcome of a backend call. Payload carries the
// decoded {"msg": ...} envelope when the backend sent one.
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Payload    *Response
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyNetworkError maps a transport error onto an ErrorType.
func classifyNetworkError(message string, err error) *APIError {
	if os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("%s: cannot resolve %s", message, dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{Type: ErrTypeConnectionRefused, Message: message, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return classifyNetworkError(message, urlErr.Err)
	}

	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewNetworkError creates a transport error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	return classifyNetworkError(message, err)
}

// NewHTTPError creates an error for a non-2xx response
func NewHTTPError(statusCode int, payload *Response) *APIError {
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		Payload:    payload,
	}
}

// NewParseError creates an encoding or decoding error
func NewParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewRequestError creates an error for a request that could not be built
func NewRequestError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeRequest, Message: message, Err: err}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a transport failure (including
// timeouts, refused connections and DNS errors).
func IsNetworkError(err error) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsHTTPError reports whether err is a non-2xx response
func IsHTTPError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeHTTP
}

// ServerMessage returns the backend's msg carried by err, or "" when the
// failure has no payload (transport errors, empty bodies).
func ServerMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok || apiErr.Payload == nil {
		return ""
	}
	return apiErr.Payload.Msg
}

// GetShortErrorMessage returns a concise description of err for logs and
// the headless submit output.
func GetShortErrorMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Backend refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve backend hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		if msg := ServerMessage(err); msg != "" {
			return fmt.Sprintf("Backend error (HTTP %d): %s", apiErr.StatusCode, msg)
		}
		return fmt.Sprintf("Backend error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse backend response"
	default:
		return apiErr.Message
	}
}

// Troubleshooting returns hints for the failure box of the submit command.
func Troubleshooting(err error) []string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return nil
	}

	switch apiErr.Type {
	case ErrTypeConnectionRefused, ErrTypeNetwork, ErrTypeTimeout:
		return []string{
			"Check that the backend is running",
			"Verify REGISTRAR_BACKEND_URL or --backend points at it",
			"Run 'registrar backend' for a local development backend",
		}
	case ErrTypeDNS:
		return []string{
			"Check the hostname in the backend URL",
			"Use an IP address instead of a hostname",
		}
	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return []string{"The backend failed to process the request; contact the administrator"}
		}
		return []string{"The backend rejected the product; check the id and name"}
	default:
		return nil
	}
}
