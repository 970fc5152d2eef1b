// Package registration implements the product registration form as an
// explicit state machine.
//
// # Lifecycle
//
//	Idle --Submit--> Submitting --CreateSucceeded--> (loading 1s) --> ShowingResult
//	                     |                                                |
//	                     +--CreateFailed-----------------> ShowingResult  |
//	                     |                                       |        |
//	                     +--empty field--> Idle          (3s) ---+--------+--> Idle
//
// Transition is a pure function from (State, Event) to (State, []Effect).
// Effects are requests for work: SendCreate for the single backend call and
// ScheduleTimer for the two fixed delays. Machine performs them, using a
// Creator for the call and a Clock for the delays, and serializes every
// event that comes back.
//
// Stale events, such as a timer from an earlier attempt, carry an Attempt
// that no longer matches the state and are ignored.
//
// # Testing
//
// ManualClock replaces wall time, so the delays run instantly:
//
//	clock := registration.NewManualClock(time.Now())
//	m := registration.NewMachine(client, registration.WithClock(clock))
//	m.InputProductID("42")
//	m.InputProductName("Teclado")
//	m.Submit()
//	m.Wait()
//	clock.Advance(registration.LoadingDelay)
package registration
