package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by LoadEnv.
const EnvPrefix = "REGISTRAR"

// Env holds the REGISTRAR_* environment variables. Empty values mean unset.
type Env struct {
	BackendURL     string        `envconfig:"BACKEND_URL"`
	DashboardURL   string        `envconfig:"DASHBOARD_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	LogFile        string        `envconfig:"LOG_FILE"`
}

// LoadEnv reads the REGISTRAR_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return e, nil
}
