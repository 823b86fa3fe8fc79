// Package adapter provides the concrete implementation of the richsink.Logger
// interface.
//
// The adapter turns each logging call into a richsink.Record stamped with the
// calling file, line and time, then hands it to every registered sink whose
// threshold admits the record's level. Sink failures are routed to the
// configured error handler instead of being dropped.
package adapter

import (
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"

	richsink "github.com/maxludden/loguru-rich-sink"
)

const (
	// callerSkipLevel skips getCaller, log and the public logging method.
	callerSkipLevel = 3

	// Repeated values.
	unknown = "unknown"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// WithCallerSkip skips additional stack frames when resolving the caller,
// for wrappers that call the adapter on behalf of their own callers.
func WithCallerSkip(skip int) Option {
	return func(a *Adapter) {
		if skip > 0 {
			a.callerSkip = skip
		}
	}
}

// WithExtra binds a value copied into the Extra map of every record.
func WithExtra(key string, value any) Option {
	return func(a *Adapter) {
		a.extra[key] = value
	}
}

// Adapter implements the richsink.Logger interface.
type Adapter struct {
	config     *richsink.Config
	sinks      *richsink.SinkRegistry
	now        func() time.Time
	callerSkip int
	extra      map[string]any

	closeOnce sync.Once
	closeErr  error
}

// Ensure Adapter implements the Logger interface.
var _ richsink.Logger = (*Adapter)(nil)

// NewAdapter creates a logger with no sinks. The configuration is validated
// and its defaults filled in place.
func NewAdapter(config *richsink.Config, opts ...Option) (*Adapter, error) {
	if config == nil {
		defaults := richsink.DefaultConfig()
		config = &defaults
	}

	err := config.Validate()
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid logger configuration")
	}

	adapter := &Adapter{
		config: config,
		sinks:  richsink.NewSinkRegistry(),
		now:    time.Now,
		extra:  make(map[string]any),
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter, nil
}

// Trace logs a message at trace level.
func (a *Adapter) Trace(msg string) {
	a.log(richsink.TraceLevel.String(), msg)
}

// Debug logs a message at debug level.
func (a *Adapter) Debug(msg string) {
	a.log(richsink.DebugLevel.String(), msg)
}

// Info logs a message at info level.
func (a *Adapter) Info(msg string) {
	a.log(richsink.InfoLevel.String(), msg)
}

// Success logs a message at success level.
func (a *Adapter) Success(msg string) {
	a.log(richsink.SuccessLevel.String(), msg)
}

// Warning logs a message at warning level.
func (a *Adapter) Warning(msg string) {
	a.log(richsink.WarningLevel.String(), msg)
}

// Error logs a message at error level.
func (a *Adapter) Error(msg string) {
	a.log(richsink.ErrorLevel.String(), msg)
}

// Critical logs a message at critical level. It does not exit the process.
func (a *Adapter) Critical(msg string) {
	a.log(richsink.CriticalLevel.String(), msg)
}

// Log logs a message under an arbitrary level name. Known names are
// canonicalized, so "warn" becomes WARNING; other names pass through as given.
func (a *Adapter) Log(level, msg string) {
	a.log(canonicalLevel(level), msg)
}

// Tracef logs a formatted message at trace level.
func (a *Adapter) Tracef(format string, args ...any) {
	a.log(richsink.TraceLevel.String(), fmt.Sprintf(format, args...))
}

// Debugf logs a formatted message at debug level.
func (a *Adapter) Debugf(format string, args ...any) {
	a.log(richsink.DebugLevel.String(), fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at info level.
func (a *Adapter) Infof(format string, args ...any) {
	a.log(richsink.InfoLevel.String(), fmt.Sprintf(format, args...))
}

// Successf logs a formatted message at success level.
func (a *Adapter) Successf(format string, args ...any) {
	a.log(richsink.SuccessLevel.String(), fmt.Sprintf(format, args...))
}

// Warningf logs a formatted message at warning level.
func (a *Adapter) Warningf(format string, args ...any) {
	a.log(richsink.WarningLevel.String(), fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func (a *Adapter) Errorf(format string, args ...any) {
	a.log(richsink.ErrorLevel.String(), fmt.Sprintf(format, args...))
}

// Criticalf logs a formatted message at critical level.
func (a *Adapter) Criticalf(format string, args ...any) {
	a.log(richsink.CriticalLevel.String(), fmt.Sprintf(format, args...))
}

// AddSink registers a sink receiving records at or above minLevel.
func (a *Adapter) AddSink(name string, sink richsink.Sink, minLevel richsink.Level) error {
	return a.sinks.AddSink(name, sink, minLevel)
}

// RemoveSink unregisters a sink by name.
func (a *Adapter) RemoveSink(name string) bool {
	return a.sinks.RemoveSink(name)
}

// Sinks returns the registry backing this logger.
func (a *Adapter) Sinks() *richsink.SinkRegistry {
	return a.sinks
}

// GetConfig returns the validated configuration.
func (a *Adapter) GetConfig() *richsink.Config {
	return a.config
}

// Sync flushes every registered sink that buffers output.
func (a *Adapter) Sync() error {
	errorGroup := ewrap.NewErrorGroup()

	for _, name := range a.sinks.Names() {
		sink, ok := a.sinks.GetSink(name)
		if !ok {
			continue
		}

		syncer, ok := sink.(interface{ Sync() error })
		if !ok {
			continue
		}

		err := syncer.Sync()
		if err != nil {
			errorGroup.Add(ewrap.Wrap(err, "syncing sink").WithMetadata("sink", name))
		}
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

// Close closes every registered sink. Later calls return the first result.
func (a *Adapter) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.sinks.Close()
	})

	return a.closeErr
}

// log handles the common logic for all levels. It must be called directly
// from a public logging method so the caller frame stays at a fixed depth.
func (a *Adapter) log(level, msg string) {
	file, line := getCaller(callerSkipLevel + a.callerSkip)

	record := &richsink.Record{
		Level:   level,
		Message: msg,
		File:    file,
		Line:    line,
		Time:    a.now(),
	}

	if len(a.extra) > 0 {
		record.Extra = maps.Clone(a.extra)
	}

	for _, err := range a.sinks.Dispatch(record) {
		a.config.ErrorHandler(err)
	}
}

// getCaller returns the base file name and line at the given skip level.
func getCaller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return unknown, 0
	}

	return filepath.Base(file), line
}

func canonicalLevel(name string) string {
	level, err := richsink.ParseLevel(name)
	if err != nil {
		return strings.TrimSpace(name)
	}

	return level.String()
}
