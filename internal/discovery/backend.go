package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Backend is a registrar backend found on the local network
type Backend struct {
	// Instance is the advertised instance name (e.g., "registrar-backend")
	Instance string

	// Hostname is the mDNS hostname (e.g., "devbox.local.")
	Hostname string

	// IP is the preferred address, IPv4 when the entry has one
	IP string

	// Port is the HTTP port the backend listens on
	Port int

	// Metadata holds the TXT records ("path", "version")
	Metadata map[string]string

	// DiscoveredAt is when the entry was received
	DiscoveredAt time.Time
}

// String returns a human-readable description of the backend
func (b *Backend) String() string {
	return fmt.Sprintf("%s (%s) at %s", b.Instance, strings.TrimSuffix(b.Hostname, "."), b.BaseURL())
}

// BaseURL returns the HTTP base URL of the backend, including the "path"
// TXT record when one was advertised.
func (b *Backend) BaseURL() string {
	u := "http://" + net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
	if p := strings.Trim(b.GetMetadata("path"), "/"); p != "" {
		u += "/" + p
	}
	return u
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Backend) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
