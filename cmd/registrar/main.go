// Registrar is a terminal client for registering products with the product
// backend.
//
// Running without arguments opens the interactive registration form. The
// submit command registers a single product non-interactively, backend starts
// a local development backend and watch follows registrations as they happen.
//
// Usage:
//
//	registrar [command] [flags]
//
// See 'registrar --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/tui"
	"github.com/joannywerner/registrar/internal/version"
)

// reportedError is an error whose details were already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Product registration client",
	Long: `A terminal client for registering products with the product backend.

Opens the interactive registration form when no command is given. The
backend URL is taken from --backend, REGISTRAR_BACKEND_URL, the settings
file, or defaults to http://localhost:4000, in that order.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runForm,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("registrar %s (commit: %s)\n", version.Version, version.Commit)
	},
}

func runForm(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), tui.Options{
		Creator:      newClient(),
		Config:       lifecycle,
		BackendURL:   appConfig.BackendURL,
		DashboardURL: appConfig.DashboardURL,
	})
}
