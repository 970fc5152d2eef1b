package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "registrar"
	configFile = "config.yaml"

	// CurrentVersion is the settings file format version.
	CurrentVersion = 1

	DefaultBackendURL   = "http://localhost:4000"
	DefaultDashboardURL = "http://localhost:3000/dashboard"
)

// ErrUnsupportedVersion is returned for settings files of another format version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// fileMutex serializes Save calls within the process.
var fileMutex sync.Mutex

// Settings is the on-disk settings file.
type Settings struct {
	Version        int           `yaml:"version"`
	BackendURL     string        `yaml:"backend_url,omitempty"`
	DashboardURL   string        `yaml:"dashboard_url,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"` // 0 means no timeout
	LogLevel       string        `yaml:"log_level,omitempty"`
}

// Default returns the settings written by "registrar config init".
func Default() *Settings {
	return &Settings{
		Version:      CurrentVersion,
		BackendURL:   DefaultBackendURL,
		DashboardURL: DefaultDashboardURL,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/registrar or $HOME/.config/registrar
//   - macOS: $HOME/.config/registrar
//   - Windows: %LOCALAPPDATA%\registrar
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the settings file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the settings file at the default path.
func Load() (*Settings, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads the settings file at path. A missing file yields Default().
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if s.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, s.Version, CurrentVersion)
	}
	if s.RequestTimeout < 0 {
		return nil, fmt.Errorf("request_timeout must not be negative, got %s", s.RequestTimeout)
	}
	return &s, nil
}

// Save writes s to path atomically, creating the directory if needed.
func (s *Settings) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Registrar settings
# Overridden by REGISTRAR_* environment variables and command-line flags.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
