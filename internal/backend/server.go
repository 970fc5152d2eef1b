package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/joannywerner/registrar/internal/discovery"
	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/version"
)

const shutdownTimeout = 10 * time.Second

// Config holds the backend configuration
type Config struct {
	Host string
	Port int // 0 picks a free port

	// Expiration forgets registered ids after this long (0 keeps them)
	Expiration time.Duration

	// Advertise announces the backend over mDNS as Instance
	Advertise bool
	Instance  string
}

// DefaultConfig listens where the form looks by default.
func DefaultConfig() *Config {
	return &Config{Host: "localhost", Port: 4000, Instance: discovery.DefaultInstance}
}

// Server is the development backend
type Server struct {
	config *Config
	store  *Store
	hub    *Hub

	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
	ad         *discovery.Advertisement
}

// New creates a new Server instance
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		config: config,
		store:  NewStore(config.Expiration),
		hub:    NewHub(),
	}
}

// Store returns the product store.
func (s *Server) Store() *Store { return s.store }

// Hub returns the events hub.
func (s *Server) Hub() *Hub { return s.hub }

// Addr returns the listening address once Start has bound it, else "".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = httpServer
	s.mu.Unlock()

	port := listener.Addr().(*net.TCPAddr).Port
	logging.Info("Starting registrar backend",
		zap.String("addr", listener.Addr().String()),
		zap.Duration("expiration", s.config.Expiration),
		zap.Bool("advertise", s.config.Advertise),
	)

	if s.config.Advertise {
		ad, err := discovery.Advertise(s.config.Instance, port, []string{"path=/", "version=" + version.Version})
		if err != nil {
			_ = listener.Close()
			return err
		}
		s.mu.Lock()
		s.ad = ad
		s.mu.Unlock()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping backend...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("backend stopped: %w", err)
	}
}

// Shutdown withdraws the mDNS announcement, disconnects watchers and waits
// for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down backend...")

	s.mu.Lock()
	ad, httpServer := s.ad, s.httpServer
	s.ad = nil
	s.mu.Unlock()

	ad.Shutdown()
	s.hub.Close()

	if httpServer == nil {
		return nil
	}
	if err := httpServer.Shutdown(ctx); err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		return httpServer.Close()
	}

	logging.Info("Backend stopped", zap.Int("products", s.store.Count()))
	logging.Sync()
	return nil
}
