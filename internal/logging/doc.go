// Package logging provides structured logging for the registrar binaries.
//
// It wraps a package-level zap logger with convenience functions. Until
// Initialize is called with a level the logger is a no-op, so the terminal
// form and the run-once output of the submit command are never interleaved
// with log lines.
//
// # Log Levels
//
//   - Debug: state machine transitions, outbound HTTP requests and responses
//   - Info: successful registrations, development backend lifecycle
//   - Warn: failed registrations (network or backend errors)
//   - Error: startup failures
//
// # Usage
//
//	if err := logging.Initialize("debug", "/tmp/registrar.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogSubmission(attempt, "42", true, "Registro exitoso")
package logging
