package productapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "timeout",
			err:  &url.Error{Op: "Post", URL: "http://x", Err: timeoutErr{}},
			want: ErrTypeTimeout,
		},
		{
			name: "dns",
			err:  &url.Error{Op: "Post", URL: "http://x", Err: &net.DNSError{Name: "backend.invalid", Err: "no such host"}},
			want: ErrTypeDNS,
		},
		{
			name: "connection refused",
			err:  &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			want: ErrTypeConnectionRefused,
		},
		{
			name: "generic",
			err:  errors.New("boom"),
			want: ErrTypeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNetworkError("POST request failed", tt.err)
			if got.Type != tt.want {
				t.Errorf("Type = %v, want %v", got.Type, tt.want)
			}
			if !IsNetworkError(got) {
				t.Error("IsNetworkError() = false, want true")
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("register: %w", NewNetworkError("POST request failed", cause))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the root cause through APIError")
	}

	if !IsNetworkError(err) {
		t.Error("helpers should see through wrapping")
	}
}

func TestServerMessage(t *testing.T) {
	if got := ServerMessage(errors.New("plain")); got != "" {
		t.Errorf("ServerMessage(plain) = %q, want empty", got)
	}

	if got := ServerMessage(NewHTTPError(400, nil)); got != "" {
		t.Errorf("ServerMessage(no payload) = %q, want empty", got)
	}

	if got := ServerMessage(NewHTTPError(400, &Response{Msg: "faltan datos"})); got != "faltan datos" {
		t.Errorf("ServerMessage() = %q, want faltan datos", got)
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewHTTPError(409, &Response{Msg: "duplicado"}), "Backend error (HTTP 409): duplicado"},
		{NewHTTPError(502, nil), "Backend error (HTTP 502)"},
		{&APIError{Type: ErrTypeConnectionRefused}, "refused"},
		{&APIError{Type: ErrTypeTimeout}, "timeout"},
		{errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		if got := GetShortErrorMessage(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("GetShortErrorMessage(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}

func TestTroubleshooting(t *testing.T) {
	if hints := Troubleshooting(&APIError{Type: ErrTypeConnectionRefused}); len(hints) == 0 {
		t.Error("connection refused should have hints")
	}

	if hints := Troubleshooting(errors.New("plain")); hints != nil {
		t.Errorf("plain errors should have no hints, got %v", hints)
	}
}
