package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Source names the layer a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceDefault Source = "default"

	// SourceDiscovery marks a backend URL found over mDNS
	SourceDiscovery Source = "mdns"
)

// Overrides are command-line values. Empty fields are unset.
type Overrides struct {
	BackendURL string
	LogLevel   string
	LogFile    string
}

// Config is the resolved runtime configuration.
type Config struct {
	BackendURL       string
	BackendURLSource Source
	DashboardURL     string
	RequestTimeout   time.Duration
	LogLevel         string
	LogFile          string
}

// Resolve merges the layers and validates the backend URL. file may be nil.
func Resolve(flags Overrides, env Env, file *Settings) (Config, error) {
	if file == nil {
		file = &Settings{}
	}

	var cfg Config
	cfg.BackendURL, cfg.BackendURLSource = pick(flags.BackendURL, env.BackendURL, file.BackendURL, DefaultBackendURL)
	cfg.DashboardURL, _ = pick("", env.DashboardURL, file.DashboardURL, DefaultDashboardURL)
	cfg.LogLevel, _ = pick(flags.LogLevel, env.LogLevel, file.LogLevel, "")
	cfg.LogFile, _ = pick(flags.LogFile, env.LogFile, "", "")

	cfg.RequestTimeout = file.RequestTimeout
	if env.RequestTimeout != 0 {
		cfg.RequestTimeout = env.RequestTimeout
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request timeout must not be negative, got %s", cfg.RequestTimeout)
	}

	backend, err := NormalizeURL(cfg.BackendURL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid backend URL from %s: %w", cfg.BackendURLSource, err)
	}
	cfg.BackendURL = backend

	return cfg, nil
}

func pick(flag, env, file, def string) (string, Source) {
	switch {
	case flag != "":
		return flag, SourceFlag
	case env != "":
		return env, SourceEnv
	case file != "":
		return file, SourceFile
	default:
		return def, SourceDefault
	}
}

// NormalizeURL checks that raw is an absolute http(s) URL with a host and
// returns it without trailing slashes.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
