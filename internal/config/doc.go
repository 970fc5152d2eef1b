// Package config resolves the registrar's runtime settings.
//
// Settings come from four layers, highest priority first:
//
//  1. command-line flags (--backend)
//  2. REGISTRAR_* environment variables
//  3. the YAML settings file
//  4. built-in defaults
//
// The backend base URL is resolved once at startup and never re-read.
//
// # Settings File Location
//
//   - Linux: $XDG_CONFIG_HOME/registrar/config.yaml or $HOME/.config/registrar/config.yaml
//   - macOS: $HOME/.config/registrar/config.yaml
//   - Windows: %LOCALAPPDATA%\registrar\config.yaml
//
// A missing file is not an error; defaults apply. Save writes atomically
// through a temporary file and rename.
//
// # Usage Example
//
//	env, err := config.LoadEnv()
//	file, err := config.Load()
//	cfg, err := config.Resolve(config.Overrides{BackendURL: flagBackend}, env, file)
//	client := productapi.NewClient(cfg.BackendURL)
package config
