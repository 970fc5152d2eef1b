package registration

import (
	"fmt"
	"time"

	"github.com/joannywerner/registrar/internal/productapi"
)

// Event is an input to Transition: a user action, a backend outcome or a
// timer completion.
type Event interface {
	eventName() string
}

// ProductIDInput is a new raw value typed into the id field.
type ProductIDInput struct{ Raw string }

// ProductNameInput is a new raw value typed into the name field.
type ProductNameInput struct{ Raw string }

// Submit is an activation of the submit control.
type Submit struct{}

// CreateSucceeded is a 2xx answer to the create request of Attempt.
type CreateSucceeded struct {
	Attempt uint64
	Message string
}

// CreateFailed is a rejected create request of Attempt. Message is the
// backend's msg, empty when there was no payload.
type CreateFailed struct {
	Attempt uint64
	Message string
	Err     error
}

// TimerFired is the completion of a timer scheduled for Attempt.
type TimerFired struct {
	Attempt uint64
	Timer   Timer
}

func (ProductIDInput) eventName() string   { return "product_id_input" }
func (ProductNameInput) eventName() string { return "product_name_input" }
func (Submit) eventName() string           { return "submit" }
func (CreateSucceeded) eventName() string  { return "create_succeeded" }
func (CreateFailed) eventName() string     { return "create_failed" }
func (e TimerFired) eventName() string     { return "timer_fired:" + e.Timer.String() }

// Timer names a scheduled delay of the lifecycle.
type Timer int

const (
	TimerLoading Timer = iota
	TimerDismiss
)

func (t Timer) String() string {
	switch t {
	case TimerLoading:
		return "loading"
	case TimerDismiss:
		return "dismiss"
	default:
		return fmt.Sprintf("Timer(%d)", int(t))
	}
}

// Effect is work Transition asks the runtime to perform.
type Effect interface {
	isEffect()
}

// SendCreate asks for exactly one create request.
type SendCreate struct {
	Attempt uint64
	Request productapi.CreateRequest
}

// ScheduleTimer asks for a TimerFired event after a delay.
type ScheduleTimer struct {
	Attempt uint64
	Timer   Timer
	After   time.Duration
}

func (SendCreate) isEffect()    {}
func (ScheduleTimer) isEffect() {}
