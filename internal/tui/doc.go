// Package tui implements the interactive product registration screen.
//
// AppModel is the page shell. It draws the header with the app name and
// backend, the form card and a footer with key help and the copyright line.
// FormModel owns a registration.State and advances it with
// registration.Step on every key that changes a field and on every
// lifecycle event.
//
// Effects of the state machine map onto Bubble Tea commands:
//
//	registration.SendCreate    -> command calling the Creator, returns CreateSucceeded/CreateFailed
//	registration.ScheduleTimer -> tea.Tick returning TimerFired
//
// Bubble Tea delivers messages one at a time, which gives the state machine
// its single logical thread without extra locking.
//
// Keys: tab/shift+tab move focus, enter on the button or ctrl+s submits,
// f1 toggles the full help, esc or ctrl+c quits.
package tui
