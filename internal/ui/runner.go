package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig holds configuration for a headless command execution
type RunnerConfig struct {
	Title           string   // Command title (e.g., "Registrar Producto")
	Command         string   // Full command (e.g., "registrar submit")
	Params          []Param  // Parameters to display in header
	StepNames       []string // Names for each step
	Troubleshooting []string // Tips shown when the operation fails
	Output          io.Writer
}

// Runner orchestrates the header → steps → result flow of a headless
// command. Running steps are printed with a trailing carriage return so the
// completed line overwrites them.
type Runner struct {
	config    RunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	payload   string
	startTime time.Time
	width     int
}

// NewRunner creates a runner for a headless command
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := GetTerminalWidth()

	r := &Runner{
		config: config,
		header: NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		output: config.Output,
		width:  width,
	}
	if len(config.StepNames) > 0 {
		r.progress = NewProgress("", config.StepNames...).SetWidth(width)
	}
	return r
}

// SetWidth overrides the detected terminal width
func (r *Runner) SetWidth(width int) *Runner {
	r.width = width
	r.header.SetWidth(width)
	if r.progress != nil {
		r.progress.SetWidth(width)
	}
	return r
}

// SetPayload stores the request body shown before the result in verbose mode
func (r *Runner) SetPayload(payload string) {
	r.payload = payload
}

// Operation is the work a Runner wraps. It reports progress through onStep
// and returns the details for the success box.
type Operation func(ctx context.Context, onStep StepCallback) ([]Param, error)

// Run prints the header, executes op and prints the result box.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	r.startTime = time.Now()

	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	details, err := op(ctx, r.stepCallback())
	duration := time.Since(r.startTime).Round(time.Millisecond)

	if r.payload != "" {
		_, _ = fmt.Fprintln(r.output)
		_, _ = fmt.Fprintln(r.output, NewPayload("Solicitud", r.payload).SetWidth(r.width).Render())
	}

	_, _ = fmt.Fprintln(r.output)
	if err != nil {
		result := NewFailureResult(r.config.Title, err, r.config.Troubleshooting)
		result.Details = details
		result.AddDetail("Duración", duration.String())
		_, _ = fmt.Fprintln(r.output, result.SetWidth(r.width).Render())
		return err
	}

	result := NewSuccessResult(r.config.Title, details...)
	result.AddDetail("Duración", duration.String())
	_, _ = fmt.Fprintln(r.output, result.SetWidth(r.width).Render())
	return nil
}

func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, status StepStatus, message string) {
		if r.progress == nil || stepNumber < 1 || stepNumber > r.progress.Total() {
			return
		}

		r.progress.UpdateStep(stepNumber, status, message)

		line := r.progress.RenderStepLine(r.progress.Steps[stepNumber-1])
		switch status {
		case StepComplete, StepFailed, StepSkipped:
			_, _ = fmt.Fprintln(r.output, line)
		case StepRunning:
			_, _ = fmt.Fprint(r.output, line+"\r")
		}
	}
}
