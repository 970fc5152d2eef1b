package registration

import (
	"context"
	"fmt"
	"sync"

	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/productapi"
)

// Creator performs the create request. *productapi.Client implements it.
type Creator interface {
	CreateProduct(ctx context.Context, req productapi.CreateRequest) (*productapi.Response, error)
}

// Option configures a Machine.
type Option func(*Machine)

// WithConfig overrides the lifecycle delays and texts.
func WithConfig(cfg Config) Option {
	return func(m *Machine) { m.cfg = cfg }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithObserver registers fn to receive every state produced by Dispatch, in
// order. fn runs while the machine is locked and must not call back into it.
func WithObserver(fn func(State)) Option {
	return func(m *Machine) { m.observer = fn }
}

// Machine runs the registration form: it owns one State, applies events
// through Transition one at a time and performs the resulting effects.
type Machine struct {
	cfg      Config
	creator  Creator
	clock    Clock
	observer func(State)

	mu     sync.Mutex
	state  State
	timers map[Timer]CancelFunc
	closed bool

	inflight sync.WaitGroup
}

// NewMachine creates an idle form that submits through creator.
func NewMachine(creator Creator, opts ...Option) *Machine {
	m := &Machine{
		cfg:     DefaultConfig(),
		creator: creator,
		clock:   SystemClock{},
		state:   NewState(),
		timers:  make(map[Timer]CancelFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current snapshot.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// InputProductID handles a change of the id field.
func (m *Machine) InputProductID(raw string) State {
	return m.Dispatch(ProductIDInput{Raw: raw})
}

// InputProductName handles a change of the name field.
func (m *Machine) InputProductName(raw string) State {
	return m.Dispatch(ProductNameInput{Raw: raw})
}

// Submit handles an activation of the submit control.
func (m *Machine) Submit() State {
	return m.Dispatch(Submit{})
}

// Dispatch applies ev and starts its effects. Events are serialized; once
// the machine is closed they are dropped.
func (m *Machine) Dispatch(ev Event) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return m.state
	}

	next, effects := Step(m.cfg, m.state, ev)
	m.state = next

	for _, eff := range effects {
		m.perform(eff)
	}

	if m.observer != nil {
		m.observer(next)
	}
	return next
}

// Step is Transition plus the lifecycle logging every runtime emits.
func Step(cfg Config, s State, ev Event) (State, []Effect) {
	next, effects := Transition(cfg, s, ev)

	logging.LogTransition(next.Attempt, ev.eventName(), s.Phase.String(), next.Phase.String(), len(effects))
	if next.Message != nil && s.Message == nil {
		logging.LogSubmission(next.Attempt, s.Fields.ProductID, next.Message.Success, next.Message.Text)
	}
	return next, effects
}

// perform starts one effect. m.mu must be held.
func (m *Machine) perform(eff Effect) {
	switch e := eff.(type) {
	case SendCreate:
		m.inflight.Add(1)
		go m.create(e)

	case ScheduleTimer:
		if cancel, ok := m.timers[e.Timer]; ok {
			cancel()
		}
		attempt, timer := e.Attempt, e.Timer
		m.timers[e.Timer] = m.clock.AfterFunc(e.After, func() {
			m.Dispatch(TimerFired{Attempt: attempt, Timer: timer})
		})
	}
}

// create issues the request and feeds the outcome back.
func (m *Machine) create(e SendCreate) {
	defer m.inflight.Done()

	outcome := Perform(context.Background(), m.creator, e)
	if failed, ok := outcome.(CreateFailed); ok && failed.Err != nil {
		logging.Debug("Create request failed: " + productapi.GetShortErrorMessage(failed.Err))
	}
	m.Dispatch(outcome)
}

// Perform runs the request of e through creator and returns the event that
// reports its outcome. A panicking Creator is reported as CreateFailed so the
// dismiss timer still gets scheduled.
func Perform(ctx context.Context, creator Creator, e SendCreate) (outcome Event) {
	defer func() {
		if r := recover(); r != nil {
			outcome = CreateFailed{Attempt: e.Attempt, Err: fmt.Errorf("create request panicked: %v", r)}
		}
	}()

	resp, err := creator.CreateProduct(ctx, e.Request)
	if err != nil {
		return CreateFailed{
			Attempt: e.Attempt,
			Message: productapi.ServerMessage(err),
			Err:     err,
		}
	}

	var msg string
	if resp != nil {
		msg = resp.Msg
	}
	return CreateSucceeded{Attempt: e.Attempt, Message: msg}
}

// Wait blocks until no create request is in flight.
func (m *Machine) Wait() {
	m.inflight.Wait()
}

// Close stops pending timers and drops further events.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for kind, cancel := range m.timers {
		cancel()
		delete(m.timers, kind)
	}
}
