package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joannywerner/registrar/internal/backend"
	"github.com/joannywerner/registrar/internal/discovery"
)

// Backend command flags
var (
	backendHost       string
	backendPort       int
	backendExpiration time.Duration
	backendAdvertise  bool
	backendInstance   string
)

var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Start a local development backend",
	Long: `Start an in-memory stand-in for the product backend.

It accepts POST /producto/registrar with the same validation and answers as
the real service: 201 on success, 400 for invalid fields and 409 for an id
that is already registered. Nothing is persisted.

Registrations are streamed on GET /producto/eventos (websocket); follow them
with 'registrar watch'.`,
	Example: `  # Listen where the form looks by default
  registrar backend

  # Forget ids after a minute so duplicates can be retried
  registrar backend --expiration 1m

  # Announce the backend so clients can use --discover
  registrar backend --host 0.0.0.0 --advertise`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := backend.New(&backend.Config{
			Host:       backendHost,
			Port:       backendPort,
			Expiration: backendExpiration,
			Advertise:  backendAdvertise,
			Instance:   backendInstance,
		})
		return srv.Start(cmd.Context())
	},
}

func init() {
	defaults := backend.DefaultConfig()
	backendCmd.Flags().StringVar(&backendHost, "host", defaults.Host, "Listen address (empty = all interfaces)")
	backendCmd.Flags().IntVar(&backendPort, "port", defaults.Port, "Listen port")
	backendCmd.Flags().DurationVar(&backendExpiration, "expiration", 0, "Forget registered ids after this long (0 = never)")
	backendCmd.Flags().BoolVar(&backendAdvertise, "advertise", false, "Announce the backend over mDNS")
	backendCmd.Flags().StringVar(&backendInstance, "instance", discovery.DefaultInstance, "mDNS instance name")

	rootCmd.AddCommand(backendCmd)
}
