package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joannywerner/registrar/internal/productapi"
)

type fakeCreator struct {
	mu       sync.Mutex
	requests []productapi.CreateRequest

	resp    *productapi.Response
	err     error
	panics  bool
	release chan struct{}
}

func (f *fakeCreator) CreateProduct(ctx context.Context, req productapi.CreateRequest) (*productapi.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("boom")
	}
	return f.resp, f.err
}

func (f *fakeCreator) calls() []productapi.CreateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]productapi.CreateRequest(nil), f.requests...)
}

func newTestMachine(creator Creator) (*Machine, *ManualClock) {
	clock := NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewMachine(creator, WithClock(clock)), clock
}

func fillAndSubmit(m *Machine, id, name string) State {
	m.InputProductID(id)
	m.InputProductName(name)
	return m.Submit()
}

func TestMachine_SuccessLifecycle(t *testing.T) {
	creator := &fakeCreator{resp: &productapi.Response{Msg: "OK"}}
	m, clock := newTestMachine(creator)
	defer m.Close()

	s := fillAndSubmit(m, "42", "Teclado")
	require.Equal(t, PhaseSubmitting, s.Phase)
	m.Wait()

	require.Equal(t, []productapi.CreateRequest{{ProductID: "42", ProductName: "Teclado"}}, creator.calls())
	s = m.State()
	assert.True(t, s.Loading)
	assert.Equal(t, "Registrando...", s.Button().Label())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(LoadingDelay - time.Millisecond)
	assert.True(t, m.State().Loading, "loading holds for the full delay")

	clock.Advance(time.Millisecond)
	s = m.State()
	assert.False(t, s.Loading)
	assert.Equal(t, &ResultMessage{Text: "OK", Success: true}, s.Message)
	assert.Equal(t, Fields{}, s.Fields)
	assert.True(t, s.SubmitDisabled())

	clock.Advance(MessageDelay)
	s = m.State()
	assert.Nil(t, s.Message)
	assert.False(t, s.SubmitDisabled())
	assert.Equal(t, 0, clock.Pending())
}

func TestMachine_FailureLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		creator  *fakeCreator
		wantText string
	}{
		{
			name:     "transport error",
			creator:  &fakeCreator{err: productapi.NewNetworkError("POST", errors.New("connection refused"))},
			wantText: DefaultErrorText,
		},
		{
			name: "error with payload",
			creator: &fakeCreator{err: productapi.NewHTTPError(409,
				&productapi.Response{Msg: "El producto ya existe"})},
			wantText: "El producto ya existe",
		},
		{
			name:     "panicking creator",
			creator:  &fakeCreator{panics: true},
			wantText: DefaultErrorText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := newTestMachine(tt.creator)
			defer m.Close()

			fillAndSubmit(m, "42", "Teclado")
			m.Wait()

			s := m.State()
			require.NotNil(t, s.Message)
			assert.Equal(t, ResultMessage{Text: tt.wantText, Success: false}, *s.Message)
			assert.Equal(t, Fields{ProductID: "42", ProductName: "Teclado"}, s.Fields)
			assert.False(t, s.Loading)

			clock.Advance(MessageDelay)
			s = m.State()
			assert.Nil(t, s.Message)
			assert.Equal(t, PhaseIdle, s.Phase)
		})
	}
}

func TestMachine_EmptySubmitMakesNoRequest(t *testing.T) {
	creator := &fakeCreator{}
	m, clock := newTestMachine(creator)
	defer m.Close()

	s := m.Submit()
	m.Wait()

	assert.Empty(t, creator.calls())
	assert.True(t, s.Errors.ProductID)
	assert.True(t, s.Errors.ProductName)
	assert.Equal(t, 0, clock.Pending())
}

func TestMachine_SubmitWhileInFlight(t *testing.T) {
	creator := &fakeCreator{resp: &productapi.Response{}, release: make(chan struct{})}
	m, _ := newTestMachine(creator)
	defer m.Close()

	fillAndSubmit(m, "1", "a")
	m.Submit()
	m.InputProductID("999")

	close(creator.release)
	m.Wait()

	assert.Len(t, creator.calls(), 1)
	assert.Equal(t, "1", m.State().Fields.ProductID)
}

func TestMachine_RejectsNonDigitID(t *testing.T) {
	m, _ := newTestMachine(&fakeCreator{})
	defer m.Close()

	m.InputProductID("12")
	s := m.InputProductID("12a")

	assert.Equal(t, "12", s.Fields.ProductID)
}

func TestMachine_ObserverSeesEveryState(t *testing.T) {
	var phases []Phase
	clock := NewManualClock(time.Now())
	m := NewMachine(&fakeCreator{resp: &productapi.Response{}},
		WithClock(clock),
		WithObserver(func(s State) { phases = append(phases, s.Phase) }),
	)
	defer m.Close()

	fillAndSubmit(m, "1", "a")
	m.Wait()
	clock.Advance(LoadingDelay + MessageDelay)

	assert.Equal(t, []Phase{
		PhaseIdle, PhaseIdle, // inputs
		PhaseSubmitting,    // submit
		PhaseSubmitting,    // response, loading
		PhaseShowingResult, // loading delay
		PhaseIdle,          // dismiss
	}, phases)
}

func TestMachine_CloseDropsEvents(t *testing.T) {
	m, clock := newTestMachine(&fakeCreator{err: errors.New("x")})

	fillAndSubmit(m, "1", "a")
	m.Wait()
	require.Equal(t, 1, clock.Pending())

	m.Close()
	assert.Equal(t, 0, clock.Pending())

	s := m.InputProductName("")
	assert.Equal(t, "a", s.Fields.ProductName)
}

func TestMachine_SystemClock(t *testing.T) {
	m := NewMachine(&fakeCreator{resp: &productapi.Response{Msg: "OK"}}, WithConfig(Config{
		LoadingDelay: 5 * time.Millisecond,
		MessageDelay: 10 * time.Millisecond,
		SuccessText:  DefaultSuccessText,
		ErrorText:    DefaultErrorText,
	}))
	defer m.Close()

	fillAndSubmit(m, "7", "Mouse")

	require.Eventually(t, func() bool {
		s := m.State()
		return s.Message != nil && s.Message.Success
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return m.State().Phase == PhaseIdle
	}, time.Second, time.Millisecond)
}

func TestManualClock_OrderAndCancel(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string

	clock.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	clock.AfterFunc(time.Second, func() {
		order = append(order, "a")
		clock.AfterFunc(500*time.Millisecond, func() { order = append(order, "a2") })
	})
	cancel := clock.AfterFunc(time.Second, func() { order = append(order, "cancelled") })

	assert.True(t, cancel())
	assert.False(t, cancel())

	clock.Advance(3 * time.Second)

	assert.Equal(t, []string{"a", "a2", "b"}, order)
	assert.Equal(t, time.Unix(3, 0), clock.Now())
	assert.Equal(t, 0, clock.Pending())
}
