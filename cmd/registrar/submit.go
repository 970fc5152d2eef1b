package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/joannywerner/registrar/internal/productapi"
	"github.com/joannywerner/registrar/internal/registration"
	"github.com/joannywerner/registrar/internal/ui"
	"github.com/joannywerner/registrar/internal/urls"
)

// Submit command flags
var (
	submitID      string
	submitName    string
	submitVerbose bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Register one product without the interactive form",
	Long: `Register one product and print the outcome.

The same rules as the form apply: the id must contain digits only and both
fields are required. The banner text shown by the form is printed as the
result, including the message sent by the backend.`,
	Example: `  # Register product 42
  registrar submit --id 42 --name "Teclado"

  # Show the request body as well
  registrar submit --id 42 --name "Teclado" --verbose

  # Against another backend
  registrar submit --id 42 --name "Teclado" --backend http://10.0.0.5:4000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runSubmit(cmd.Context(), submitOptions{
			ID:        submitID,
			Name:      submitName,
			Verbose:   submitVerbose,
			Creator:   newClient(),
			Lifecycle: lifecycle,
			Output:    os.Stdout,
		})
		if err != nil {
			return reportedError{err}
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitID, "id", "", "Product id (digits only)")
	submitCmd.Flags().StringVar(&submitName, "name", "", "Product name")
	submitCmd.Flags().BoolVarP(&submitVerbose, "verbose", "v", false, "Print the request body")

	rootCmd.AddCommand(submitCmd)
}

type submitOptions struct {
	ID, Name  string
	Verbose   bool
	Creator   registration.Creator
	Lifecycle registration.Config
	Output    io.Writer
	Width     int // 0 uses the terminal width
}

// recordingCreator keeps the last transport error so troubleshooting hints
// can be derived from it.
type recordingCreator struct {
	registration.Creator

	mu  sync.Mutex
	err error
}

func (c *recordingCreator) CreateProduct(ctx context.Context, req productapi.CreateRequest) (*productapi.Response, error) {
	resp, err := c.Creator.CreateProduct(ctx, req)
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	return resp, err
}

func (c *recordingCreator) lastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// runSubmit drives a Machine through one submission with the real clock.
func runSubmit(ctx context.Context, opts submitOptions) error {
	states := newStateLog()
	creator := &recordingCreator{Creator: opts.Creator}
	machine := registration.NewMachine(creator,
		registration.WithConfig(opts.Lifecycle),
		registration.WithObserver(states.record),
	)
	defer machine.Close()

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Registrar Producto",
		Command: "registrar submit",
		Params: []ui.Param{
			{Key: "Backend", Value: appConfig.BackendURL},
			{Key: "Id Producto", Value: opts.ID},
			{Key: "Nombre", Value: opts.Name},
		},
		StepNames: []string{"Validar campos", "Enviar solicitud", "Mostrar resultado"},
		Troubleshooting: []string{
			"Verifique que el backend esté en ejecución en " + appConfig.BackendURL,
			"Cambie la URL con --backend o REGISTRAR_BACKEND_URL",
			"Inicie un backend local con 'registrar backend'",
			"Más información: " + urls.BackendGuide,
		},
		Output: opts.Output,
	})
	if opts.Width > 0 {
		runner.SetWidth(opts.Width)
	}
	if opts.Verbose {
		body, _ := json.MarshalIndent(productapi.CreateRequest{ProductID: opts.ID, ProductName: opts.Name}, "", "  ")
		runner.SetPayload(string(body))
	}

	return runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
		onStep(1, ui.StepRunning, "")
		if machine.InputProductID(opts.ID).Fields.ProductID != opts.ID {
			onStep(1, ui.StepFailed, "id no numérico")
			return nil, fmt.Errorf("el campo Id Producto solo admite números: %q", opts.ID)
		}
		machine.InputProductName(opts.Name)

		s := machine.Submit()
		if s.Phase != registration.PhaseSubmitting {
			onStep(1, ui.StepFailed, "campos obligatorios")
			return nil, missingFieldsError(s.Errors)
		}
		onStep(1, ui.StepComplete, "")

		onStep(2, ui.StepRunning, "")
		s, err := states.waitFor(ctx, func(s registration.State) bool {
			return s.Loading || s.Phase == registration.PhaseShowingResult
		})
		if err != nil {
			onStep(2, ui.StepFailed, "cancelado")
			return nil, err
		}
		if s.Message != nil && !s.Message.Success {
			onStep(2, ui.StepFailed, "")
			onStep(3, ui.StepSkipped, "")
			return []ui.Param{{Key: "Mensaje", Value: s.Message.Text}}, failureError(s.Message.Text, creator.lastErr())
		}
		onStep(2, ui.StepComplete, "")

		onStep(3, ui.StepRunning, "")
		s, err = states.waitFor(ctx, func(s registration.State) bool {
			return s.Phase == registration.PhaseShowingResult
		})
		if err != nil {
			onStep(3, ui.StepFailed, "cancelado")
			return nil, err
		}
		onStep(3, ui.StepComplete, "")

		return []ui.Param{{Key: "Mensaje", Value: s.Message.Text}}, nil
	})
}

// stateLog keeps every state the machine reports, in order. record never
// blocks, since it runs while the machine is locked, and never drops a state.
type stateLog struct {
	mu      sync.Mutex
	states  []registration.State
	next    int
	changed chan struct{}
}

func newStateLog() *stateLog {
	return &stateLog{changed: make(chan struct{}, 1)}
}

func (l *stateLog) record(s registration.State) {
	l.mu.Lock()
	l.states = append(l.states, s)
	l.mu.Unlock()

	select {
	case l.changed <- struct{}{}:
	default:
	}
}

// take returns the first unread state matching pred, consuming it and every
// unread state before it.
func (l *stateLog) take(pred func(registration.State) bool) (registration.State, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.next < len(l.states) {
		s := l.states[l.next]
		l.next++
		if pred(s) {
			return s, true
		}
	}
	return registration.State{}, false
}

// waitFor returns the first state after the previous match that satisfies pred.
func (l *stateLog) waitFor(ctx context.Context, pred func(registration.State) bool) (registration.State, error) {
	for {
		if s, ok := l.take(pred); ok {
			return s, nil
		}
		select {
		case <-l.changed:
		case <-ctx.Done():
			return registration.State{}, ctx.Err()
		}
	}
}

func missingFieldsError(e registration.FieldErrors) error {
	var errs []error
	if e.ProductID {
		errs = append(errs, errors.New("el campo Id Producto es obligatorio"))
	}
	if e.ProductName {
		errs = append(errs, errors.New("el campo Nombre del Producto es obligatorio"))
	}
	return errors.Join(errs...)
}

func failureError(text string, cause error) error {
	if cause == nil {
		return errors.New(text)
	}
	return fmt.Errorf("%s: %w", text, cause)
}
