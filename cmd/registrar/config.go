package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joannywerner/registrar/internal/config"
	"github.com/joannywerner/registrar/internal/ui"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Example: `  registrar config init
  registrar config init --force --config ./registrar.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			ok := ui.Confirm(os.Stdin, os.Stdout, "Sobrescribir configuración",
				[]string{
					"Ya existe un archivo de configuración en " + path,
					"Sus valores se reemplazarán por los valores por defecto",
				},
				"¿Desea continuar?")
			if !ok {
				return nil
			}
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if err := config.Default().Save(path); err != nil {
			return err
		}

		ui.NewPrinter(os.Stdout).PrintSuccess("Configuración creada",
			ui.Param{Key: "Archivo", Value: path},
			ui.Param{Key: "Backend", Value: config.DefaultBackendURL},
		)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration and where each value came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}

		timeout := "sin límite"
		if appConfig.RequestTimeout > 0 {
			timeout = appConfig.RequestTimeout.String()
		}
		level := appConfig.LogLevel
		if level == "" {
			level = "silencioso"
		}

		ui.NewPrinter(os.Stdout).PrintHeader("Configuración", "registrar config show",
			ui.Param{Key: "Backend", Value: fmt.Sprintf("%s (%s)", appConfig.BackendURL, appConfig.BackendURLSource)},
			ui.Param{Key: "Dashboard", Value: appConfig.DashboardURL},
			ui.Param{Key: "Timeout", Value: timeout},
			ui.Param{Key: "Log", Value: level},
			ui.Param{Key: "Archivo", Value: path},
		)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
