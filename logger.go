// Package richsink renders structured log records as styled, color-gradient
// terminal panels and keeps a persistent run counter for the host application.
//
// This package provides the shared vocabulary used throughout the module:
// - Seven fixed log levels (Trace, Debug, Info, Success, Warning, Error, Critical)
// - The Record type handed to every sink
// - The Sink interface and an ordered SinkRegistry with per-sink thresholds
// - An immutable, injectable StyleTable mapping level names to emphasis and gradients
// - Config and a fluent ConfigBuilder
//
// Concrete pieces live in sub-packages: pkg/runcounter persists the run number,
// pkg/panel paints bordered panels, pkg/sink turns records into panels and
// trace-file lines, and pkg/adapter provides a Logger that drives the sinks.
//
// Basic usage:
//
//	session, err := log.New(richsink.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//	defer session.Close()
//
//	session.Logger.Info("Application started")
//	session.Logger.Warningf("disk usage at %d%%", 91)
package richsink

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity of a log record.
type Level uint8

const (
	// TraceLevel represents very verbose diagnostic output.
	TraceLevel Level = iota
	// DebugLevel represents debugging information.
	DebugLevel
	// InfoLevel represents general operational information.
	InfoLevel
	// SuccessLevel represents a completed operation worth highlighting.
	SuccessLevel
	// WarningLevel represents warning messages.
	WarningLevel
	// ErrorLevel represents error messages.
	ErrorLevel
	// CriticalLevel represents failures the application cannot recover from.
	CriticalLevel
)

// String returns the upper-case name of a log level.
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case SuccessLevel:
		return "SUCCESS"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the given Level is one of the seven known levels.
func (l Level) IsValid() bool {
	return l <= CriticalLevel
}

// Levels returns every known level in ascending severity.
func Levels() []Level {
	return []Level{
		TraceLevel,
		DebugLevel,
		InfoLevel,
		SuccessLevel,
		WarningLevel,
		ErrorLevel,
		CriticalLevel,
	}
}

// ParseLevel parses a level name case-insensitively. WARN and FATAL are
// accepted as aliases of WARNING and CRITICAL.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "SUCCESS":
		return SuccessLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	default:
		return InfoLevel, ewrap.New("invalid log level: " + name)
	}
}

// Logger defines the interface for emitting records to the registered sinks.
type Logger interface {
	// Log methods for the fixed levels
	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
	Critical(msg string)

	// Log emits a record under an arbitrary level name. Names outside the
	// fixed seven are delivered to every sink and rendered with the default style.
	Log(level, msg string)

	// Formatted log methods
	FormattedLogger

	Methods
}

// Methods defines the sink management surface of a Logger.
type Methods interface {
	// AddSink registers a sink that receives records at or above minLevel.
	AddSink(name string, sink Sink, minLevel Level) error
	// RemoveSink unregisters a sink by name.
	RemoveSink(name string) bool
	// Sinks returns the registry backing this logger.
	Sinks() *SinkRegistry
	// Close closes every registered sink that implements io.Closer.
	Close() error
}

// FormattedLogger defines the interface for logging formatted messages.
type FormattedLogger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Successf(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
}
