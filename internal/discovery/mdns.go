package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/joannywerner/registrar/internal/logging"
)

const (
	// ServiceType is the mDNS service type registrar backends advertise
	ServiceType = "_registrar._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for backend discovery
	DefaultScanTimeout = 3 * time.Second

	// DefaultInstance is the instance name used when none is given
	DefaultInstance = "registrar-backend"
)

// ErrNoBackend is returned by Find when nothing answered before the timeout.
var ErrNoBackend = errors.New("no registrar backend found on the local network")

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration

	// browse starts an mDNS browse; replaced in tests
	browse func(ctx context.Context, entries chan *zeroconf.ServiceEntry) error
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
		browse:  browseZeroconf,
	}
}

func browseZeroconf(ctx context.Context, entries chan *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}
	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

// Scan collects every backend that answers within the timeout.
func (s *Scanner) Scan(ctx context.Context) ([]*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		backends []*Backend
	)
	err := s.run(ctx, func(b *Backend) bool {
		mu.Lock()
		defer mu.Unlock()
		for _, seen := range backends {
			if seen.BaseURL() == b.BaseURL() {
				return true
			}
		}
		backends = append(backends, b)
		return true
	})
	if err != nil {
		return nil, err
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Backend(nil), backends...), nil
}

// Find returns the first backend that answers, or ErrNoBackend after the timeout.
func (s *Scanner) Find(ctx context.Context) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Backend, 1)
	err := s.run(ctx, func(b *Backend) bool {
		select {
		case found <- b:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case b := <-found:
		return b, nil
	case <-ctx.Done():
		// cancel() from the callback races the send above
		select {
		case b := <-found:
			return b, nil
		default:
		}
		return nil, ErrNoBackend
	}
}

// run starts browsing and feeds parsed entries to fn until it returns false
// or the context ends.
func (s *Scanner) run(ctx context.Context, fn func(*Backend) bool) error {
	entries := make(chan *zeroconf.ServiceEntry)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				b := parseServiceEntry(entry)
				if b == nil {
					continue
				}
				logging.Debug("Backend discovered",
					zap.String("instance", b.Instance),
					zap.String("url", b.BaseURL()),
				)
				if !fn(b) {
					return
				}
			}
		}
	}()

	return s.browse(ctx, entries)
}

// parseServiceEntry converts a zeroconf service entry to a Backend.
// Returns nil when the entry carries no usable address or port.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Backend {
	if entry == nil || entry.Port <= 0 {
		return nil
	}

	// prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	// TXT records are "key=value"; a bare key maps to ""
	metadata := make(map[string]string, len(entry.Text))
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if key != "" {
			metadata[key] = value
		}
	}

	return &Backend{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Advertisement is a running mDNS announcement of a local backend.
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise announces a backend listening on port. txt entries are
// "key=value" strings. Call Shutdown to withdraw it.
func Advertise(instance string, port int, txt []string) (*Advertisement, error) {
	if instance == "" {
		instance = DefaultInstance
	}
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising backend over mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the announcement. Safe on a nil receiver.
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
}

// FindBackend looks for a backend with the default timeout and returns its base URL.
func FindBackend(ctx context.Context) (string, error) {
	b, err := NewScanner().Find(ctx)
	if err != nil {
		return "", err
	}
	return b.BaseURL(), nil
}
