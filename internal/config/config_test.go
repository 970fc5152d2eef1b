package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "registrar") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/registrar", dir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", path)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *s != *Default() {
		t.Errorf("LoadFile() = %+v, want defaults %+v", s, Default())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &Settings{
		Version:        CurrentVersion,
		BackendURL:     "https://api.example.com",
		DashboardURL:   "https://app.example.com",
		RequestTimeout: 5 * time.Second,
		LogLevel:       "debug",
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Registrar settings") {
		t.Errorf("saved file missing header:\n%s", data)
	}
	if !strings.Contains(string(data), "request_timeout: 5s") {
		t.Errorf("timeout not written as duration:\n%s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != *want {
		t.Errorf("LoadFile() = %+v, want %+v", got, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad yaml", "version: [", nil},
		{"wrong version", "version: 2\n", ErrUnsupportedVersion},
		{"negative timeout", "version: 1\nrequest_timeout: -1s\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("REGISTRAR_BACKEND_URL", "http://env:9000")
	t.Setenv("REGISTRAR_REQUEST_TIMEOUT", "10s")
	t.Setenv("REGISTRAR_LOG_LEVEL", "warn")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.BackendURL != "http://env:9000" {
		t.Errorf("BackendURL = %q", env.BackendURL)
	}
	if env.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", env.RequestTimeout)
	}
	if env.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", env.LogLevel)
	}
}

func TestLoadEnv_BadDuration(t *testing.T) {
	t.Setenv("REGISTRAR_REQUEST_TIMEOUT", "soon")

	if _, err := LoadEnv(); err == nil {
		t.Error("LoadEnv() expected error for bad duration")
	}
}

func TestResolve_Precedence(t *testing.T) {
	file := &Settings{Version: 1, BackendURL: "http://file:1", LogLevel: "error", RequestTimeout: time.Second}
	env := Env{BackendURL: "http://env:2", LogLevel: "info"}

	tests := []struct {
		name       string
		flags      Overrides
		env        Env
		file       *Settings
		wantURL    string
		wantSource Source
		wantLevel  string
	}{
		{"flag wins", Overrides{BackendURL: "http://flag:3/", LogLevel: "debug"}, env, file, "http://flag:3", SourceFlag, "debug"},
		{"env over file", Overrides{}, env, file, "http://env:2", SourceEnv, "info"},
		{"file over default", Overrides{}, Env{}, file, "http://file:1", SourceFile, "error"},
		{"default", Overrides{}, Env{}, nil, DefaultBackendURL, SourceDefault, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.flags, tt.env, tt.file)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if cfg.BackendURL != tt.wantURL {
				t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, tt.wantURL)
			}
			if cfg.BackendURLSource != tt.wantSource {
				t.Errorf("BackendURLSource = %q, want %q", cfg.BackendURLSource, tt.wantSource)
			}
			if cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}

func TestResolve_Timeout(t *testing.T) {
	cfg, err := Resolve(Overrides{}, Env{}, &Settings{RequestTimeout: 2 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout)
	}

	cfg, err = Resolve(Overrides{}, Env{RequestTimeout: time.Minute}, &Settings{RequestTimeout: 2 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != time.Minute {
		t.Errorf("RequestTimeout = %v, want env value", cfg.RequestTimeout)
	}

	cfg, err = Resolve(Overrides{}, Env{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %v, want no timeout by default", cfg.RequestTimeout)
	}
}

func TestResolve_InvalidURL(t *testing.T) {
	_, err := Resolve(Overrides{BackendURL: "ftp://example.com"}, Env{}, nil)
	if err == nil || !strings.Contains(err.Error(), "flag") {
		t.Errorf("Resolve() error = %v, want error naming the flag source", err)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"http://localhost:4000", "http://localhost:4000", false},
		{"https://api.example.com/v1/", "https://api.example.com/v1", false},
		{"  http://host//  ", "http://host", false},
		{"localhost:4000", "", true},
		{"http://", "", true},
		{"ftp://host", "", true},
		{"://bad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeURL(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
