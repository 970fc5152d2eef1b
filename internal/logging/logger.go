package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Initialize creates the global logger.
//
// An empty level keeps logging silent (no zap output), which is what the
// interactive form wants: anything written to stdout would tear the screen.
// Valid levels: "debug", "info", "warn", "error". Output goes to path when
// set, otherwise to stderr.
func Initialize(level, path string) error {
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	output := "stderr"
	if path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if path == "" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn, error)", level)
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransition logs a state machine step of the registration form.
func LogTransition(attempt uint64, event, from, to string, effects int) {
	Debug("Form transition",
		zap.Uint64("attempt", attempt),
		zap.String("event", event),
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("effects", effects),
	)
}

// LogSubmission logs the outcome of one registration attempt.
func LogSubmission(attempt uint64, productID string, success bool, message string) {
	fields := []zap.Field{
		zap.Uint64("attempt", attempt),
		zap.String("idproducto", productID),
		zap.Bool("success", success),
		zap.String("msg", message),
	}
	if success {
		Info("Product registered", fields...)
		return
	}
	Warn("Product registration failed", fields...)
}

// LogHTTPRequest logs an outbound or inbound HTTP request
func LogHTTPRequest(requestID, method, url string) {
	Debug("HTTP request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
	)
}

// LogHTTPResponse logs an HTTP response with its latency
func LogHTTPResponse(requestID string, statusCode int, elapsed time.Duration) {
	Debug("HTTP response",
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
	)
}

// LogHTTPServed logs a request handled by the development backend
func LogHTTPServed(requestID, method, path string, statusCode int, elapsed time.Duration, remoteAddr string) {
	Info("HTTP request served",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
		zap.String("remote_addr", remoteAddr),
	)
}

// LogConnection logs a connection event for a watcher
func LogConnection(remoteAddr, event string) {
	Info("Connection event",
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
