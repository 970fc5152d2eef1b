package registration

import (
	"time"

	"github.com/joannywerner/registrar/internal/productapi"
)

// Config holds the lifecycle delays and fallback texts.
type Config struct {
	LoadingDelay time.Duration
	MessageDelay time.Duration
	SuccessText  string
	ErrorText    string
}

// DefaultConfig returns the production lifecycle settings.
func DefaultConfig() Config {
	return Config{
		LoadingDelay: LoadingDelay,
		MessageDelay: MessageDelay,
		SuccessText:  DefaultSuccessText,
		ErrorText:    DefaultErrorText,
	}
}

// Transition applies ev to s and returns the next state with the effects the
// runtime must perform. It performs no I/O and never blocks.
func Transition(cfg Config, s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case ProductIDInput:
		return onProductIDInput(s, e.Raw), nil
	case ProductNameInput:
		return onProductNameInput(s, e.Raw), nil
	case Submit:
		return onSubmit(s)
	case CreateSucceeded:
		return onCreateSucceeded(cfg, s, e)
	case CreateFailed:
		return onCreateFailed(cfg, s, e)
	case TimerFired:
		return onTimerFired(cfg, s, e)
	default:
		return s, nil
	}
}

// Fields stay frozen from the moment a submission starts until the dismiss
// timer brings the form back to Idle.
func onProductIDInput(s State, raw string) State {
	if s.Phase != PhaseIdle || !ValidProductID(raw) {
		return s
	}
	s.Fields.ProductID = raw
	s.Errors.ProductID = raw == ""
	return s
}

func onProductNameInput(s State, raw string) State {
	if s.Phase != PhaseIdle {
		return s
	}
	s.Fields.ProductName = raw
	s.Errors.ProductName = raw == ""
	return s
}

func onSubmit(s State) (State, []Effect) {
	if s.Phase != PhaseIdle {
		return s, nil
	}

	s.Phase = PhaseSubmitting
	s.Attempt++

	s.Errors.ProductID = s.Fields.ProductID == ""
	s.Errors.ProductName = s.Fields.ProductName == ""
	if s.Errors.Any() {
		s.Phase = PhaseIdle
		return s, nil
	}

	return s, []Effect{SendCreate{
		Attempt: s.Attempt,
		Request: productapi.CreateRequest{
			ProductID:   s.Fields.ProductID,
			ProductName: s.Fields.ProductName,
		},
	}}
}

func onCreateSucceeded(cfg Config, s State, e CreateSucceeded) (State, []Effect) {
	if e.Attempt != s.Attempt || s.Phase != PhaseSubmitting || s.Loading {
		return s, nil
	}

	s.Loading = true
	s.pending = e.Message
	return s, []Effect{ScheduleTimer{Attempt: s.Attempt, Timer: TimerLoading, After: cfg.LoadingDelay}}
}

func onCreateFailed(cfg Config, s State, e CreateFailed) (State, []Effect) {
	if e.Attempt != s.Attempt || s.Phase != PhaseSubmitting || s.Loading {
		return s, nil
	}

	text := e.Message
	if text == "" {
		text = cfg.ErrorText
	}
	s.Message = &ResultMessage{Text: text, Success: false}
	s.Phase = PhaseShowingResult
	return s, []Effect{ScheduleTimer{Attempt: s.Attempt, Timer: TimerDismiss, After: cfg.MessageDelay}}
}

func onTimerFired(cfg Config, s State, e TimerFired) (State, []Effect) {
	if e.Attempt != s.Attempt {
		return s, nil
	}

	switch e.Timer {
	case TimerLoading:
		if !s.Loading {
			return s, nil
		}
		text := s.pending
		if text == "" {
			text = cfg.SuccessText
		}
		s.Loading = false
		s.pending = ""
		s.Fields = Fields{}
		s.Message = &ResultMessage{Text: text, Success: true}
		s.Phase = PhaseShowingResult
		return s, []Effect{ScheduleTimer{Attempt: s.Attempt, Timer: TimerDismiss, After: cfg.MessageDelay}}

	case TimerDismiss:
		if s.Phase != PhaseShowingResult {
			return s, nil
		}
		s.Message = nil
		s.Phase = PhaseIdle
		return s, nil
	}

	return s, nil
}
