package registration

import (
	"fmt"
	"regexp"
	"time"
)

// Durations of the submission lifecycle.
const (
	// LoadingDelay is how long the loading indicator stays up after a
	// successful response, so it is perceptible even on fast backends.
	LoadingDelay = 1 * time.Second

	// MessageDelay is how long a result message is displayed before the form
	// returns to Idle.
	MessageDelay = 3 * time.Second
)

// Default result texts used when the backend sends no msg.
const (
	DefaultSuccessText = "Registro exitoso"
	DefaultErrorText   = "Error en la solicitud: contactar al administrador"
)

var digitsOnly = regexp.MustCompile(`^\d*$`)

// ValidProductID reports whether raw may be stored as a product id.
func ValidProductID(raw string) bool {
	return digitsOnly.MatchString(raw)
}

// Fields holds the two form values.
type Fields struct {
	ProductID   string // digits only, possibly empty
	ProductName string
}

// FieldErrors marks which required fields were empty at the last check.
type FieldErrors struct {
	ProductID   bool
	ProductName bool
}

// Any reports whether at least one field is flagged.
func (e FieldErrors) Any() bool {
	return e.ProductID || e.ProductName
}

// Phase is the submission lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseShowingResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseShowingResult:
		return "showing_result"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ResultMessage is the transient banner shown after a submission.
type ResultMessage struct {
	Text    string
	Success bool
}

// VisualState is how the presentation layer draws a field.
type VisualState int

const (
	VisualNormal VisualState = iota
	VisualError
)

// ButtonState is how the presentation layer draws the submit control.
type ButtonState int

const (
	ButtonEnabled ButtonState = iota
	ButtonLoading
	ButtonDisabled
)

// Label returns the submit control text for the state.
func (b ButtonState) Label() string {
	if b == ButtonLoading {
		return "Registrando..."
	}
	return "Registrar"
}

// State is one snapshot of the form.
type State struct {
	Fields  Fields
	Errors  FieldErrors
	Phase   Phase
	Loading bool
	Message *ResultMessage

	// Attempt identifies the current submission; events carrying another
	// value are stale.
	Attempt uint64

	// pending is the server message held while the loading indicator runs.
	pending string
}

// NewState returns an empty, idle form.
func NewState() State {
	return State{}
}

// SubmitDisabled reports whether the submit control rejects activation.
func (s State) SubmitDisabled() bool {
	return s.Phase != PhaseIdle
}

// Button returns the visual state of the submit control.
func (s State) Button() ButtonState {
	switch {
	case s.Loading:
		return ButtonLoading
	case s.SubmitDisabled():
		return ButtonDisabled
	default:
		return ButtonEnabled
	}
}

// ProductIDVisual returns the visual state of the id input.
func (s State) ProductIDVisual() VisualState {
	if s.Errors.ProductID {
		return VisualError
	}
	return VisualNormal
}

// ProductNameVisual returns the visual state of the name input.
func (s State) ProductNameVisual() VisualState {
	if s.Errors.ProductName {
		return VisualError
	}
	return VisualNormal
}
