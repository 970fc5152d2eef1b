package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joannywerner/registrar/internal/backend"
	"github.com/joannywerner/registrar/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow registrations on the backend",
	Long: `Print every product registered on the backend as it happens.

Requires a backend that streams events; 'registrar backend' does.
Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printer := ui.NewPrinter(os.Stdout)
		printer.PrintHeader("Eventos de registro", "registrar watch",
			ui.Param{Key: "Backend", Value: appConfig.BackendURL})

		return backend.Watch(ctx, appConfig.BackendURL, func(ev backend.Event) {
			printer.Println(formatEvent(ev))
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

var (
	eventMarkerStyle = lipgloss.NewStyle().Foreground(ui.SuccessColor).Bold(true)
	eventTimeStyle   = lipgloss.NewStyle().Foreground(ui.MutedColor)
)

func formatEvent(ev backend.Event) string {
	return fmt.Sprintf("%s %s  %s  %s",
		eventMarkerStyle.Render(ui.StepMarkerComplete),
		eventTimeStyle.Render(ev.Product.RegisteredAt.Local().Format("15:04:05")),
		ev.Product.ID,
		ev.Product.Name,
	)
}
