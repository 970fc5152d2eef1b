// Package ui provides terminal output components for the registrar CLI.
//
// The components use Lipgloss and follow a "render once" pattern: they
// produce a styled string and leave interaction to the caller. The
// interactive form in internal/tui reuses the palette and RenderAlert.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Progress: step list with a progress bar
//   - Result: success/failure boxes with troubleshooting tips
//   - Payload: raw request body box for verbose mode
//   - RenderAlert: the transient success/error banner of the form
//
// Runner ties the first three together for headless commands:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Registrar Producto",
//	    Command:   "registrar submit",
//	    Params:    []ui.Param{{Key: "Backend", Value: backendURL}},
//	    StepNames: []string{"Validar campos", "Enviar solicitud"},
//	})
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
//	    onStep(1, ui.StepRunning, "")
//	    // ...
//	    return nil, nil
//	})
//
// Logging stays silent unless --log-level is given, so this curated output
// is not interleaved with log lines.
package ui
