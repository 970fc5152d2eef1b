package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joannywerner/registrar/internal/config"
	"github.com/joannywerner/registrar/internal/discovery"
	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/productapi"
	"github.com/joannywerner/registrar/internal/registration"
)

// Global flags
var (
	flagBackend  string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagDiscover bool
)

var (
	// appConfig is resolved once by setup before any command runs
	appConfig config.Config

	// lifecycle holds the submission delays; tests shorten them
	lifecycle = registration.DefaultConfig()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Backend base URL (e.g., http://localhost:4000)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default: OS config dir)/registrar/config.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&flagDiscover, "discover", false, "Find the backend on the local network over mDNS")
}

// settingsPath returns the --config value or the default settings location.
func settingsPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.GetConfigPath()
}

// setup resolves the configuration and starts logging for every command.
func setup(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	file, err := config.LoadFile(path)
	if err != nil {
		// a broken file must not prevent rewriting it
		if cmd != configInitCmd {
			return err
		}
		file = nil
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(config.Overrides{
		BackendURL: flagBackend,
		LogLevel:   flagLogLevel,
		LogFile:    flagLogFile,
	}, env, file)
	if err != nil {
		return err
	}

	// the development backend logs its requests unless told otherwise
	if cmd == backendCmd && cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}

	if flagDiscover && flagBackend == "" {
		if err := discoverBackend(cmd.Context(), &cfg); err != nil {
			return err
		}
	}

	appConfig = cfg
	logging.Debug("Configuration resolved",
		zap.String("backend_url", cfg.BackendURL),
		zap.String("source", string(cfg.BackendURLSource)),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)
	return nil
}

func discoverBackend(ctx context.Context, cfg *config.Config) error {
	url, err := discovery.FindBackend(ctx)
	if err != nil {
		return fmt.Errorf("backend discovery failed: %w", err)
	}
	url, err = config.NormalizeURL(url)
	if err != nil {
		return fmt.Errorf("discovered backend: %w", err)
	}
	cfg.BackendURL = url
	cfg.BackendURLSource = config.SourceDiscovery
	return nil
}

// newClient builds the HTTP client for the resolved backend.
func newClient() *productapi.Client {
	client := productapi.NewClient(appConfig.BackendURL)
	if appConfig.RequestTimeout > 0 {
		client.SetTimeout(appConfig.RequestTimeout)
	}
	return client
}
