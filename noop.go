package richsink

// NoopLogger is a logger that discards every record.
type NoopLogger struct {
	sinks *SinkRegistry
}

// NewNoop creates a new NoopLogger.
func NewNoop() Logger {
	return &NoopLogger{sinks: NewSinkRegistry()}
}

// Ensure NoopLogger implements Logger interface.
var _ Logger = (*NoopLogger)(nil)

// Trace discards the message.
func (*NoopLogger) Trace(_ string) {}

// Debug discards the message.
func (*NoopLogger) Debug(_ string) {}

// Info discards the message.
func (*NoopLogger) Info(_ string) {}

// Success discards the message.
func (*NoopLogger) Success(_ string) {}

// Warning discards the message.
func (*NoopLogger) Warning(_ string) {}

// Error discards the message.
func (*NoopLogger) Error(_ string) {}

// Critical discards the message.
func (*NoopLogger) Critical(_ string) {}

// Log discards the message.
func (*NoopLogger) Log(_, _ string) {}

// Formatted logging methods.

// Tracef discards the message.
func (*NoopLogger) Tracef(_ string, _ ...any) {}

// Debugf discards the message.
func (*NoopLogger) Debugf(_ string, _ ...any) {}

// Infof discards the message.
func (*NoopLogger) Infof(_ string, _ ...any) {}

// Successf discards the message.
func (*NoopLogger) Successf(_ string, _ ...any) {}

// Warningf discards the message.
func (*NoopLogger) Warningf(_ string, _ ...any) {}

// Errorf discards the message.
func (*NoopLogger) Errorf(_ string, _ ...any) {}

// Criticalf discards the message.
func (*NoopLogger) Criticalf(_ string, _ ...any) {}

// Sink management. Sinks can be registered but never receive records.

// AddSink registers a sink that will never be called.
func (l *NoopLogger) AddSink(name string, sink Sink, minLevel Level) error {
	return l.sinks.AddSink(name, sink, minLevel)
}

// RemoveSink unregisters a sink by name.
func (l *NoopLogger) RemoveSink(name string) bool {
	return l.sinks.RemoveSink(name)
}

// Sinks returns the registry backing this logger.
func (l *NoopLogger) Sinks() *SinkRegistry {
	return l.sinks
}

// Close closes every registered sink.
func (l *NoopLogger) Close() error {
	return l.sinks.Close()
}
