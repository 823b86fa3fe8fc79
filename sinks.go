package richsink

import (
	"io"
	"slices"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"
)

// Record is a single log event as delivered to sinks.
type Record struct {
	// Level is the level name as emitted. It is usually one of the seven fixed
	// names but custom names are passed through untouched.
	Level string
	// Message is the formatted message text.
	Message string
	// File is the base name of the source file that emitted the record.
	File string
	// Line is the source line that emitted the record.
	Line int
	// Time is when the record was emitted.
	Time time.Time
	// Extra carries sink-specific data attached while the record is dispatched.
	Extra map[string]any
}

// SetExtra stores a value in Extra, allocating the map when needed.
func (r *Record) SetExtra(key string, value any) {
	if r.Extra == nil {
		r.Extra = make(map[string]any)
	}

	r.Extra[key] = value
}

// Sink receives every record the logger emits at or above the sink's level.
type Sink interface {
	// Emit handles a single record. Errors are returned to the dispatcher,
	// never dropped.
	Emit(record *Record) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(record *Record) error

// Emit implements Sink.
func (f SinkFunc) Emit(record *Record) error {
	return f(record)
}

// SinkConfig describes a registered sink.
type SinkConfig struct {
	// Name identifies the sink in the registry.
	Name string
	// MinLevel is the lowest level delivered to the sink.
	MinLevel Level
	// Sink is the sink itself.
	Sink Sink
}

// Accepts reports whether a record with the given level name reaches the sink.
// Names outside the fixed levels are always delivered.
func (c SinkConfig) Accepts(levelName string) bool {
	level, err := ParseLevel(levelName)
	if err != nil {
		return true
	}

	return level >= c.MinLevel
}

// SinkRegistry keeps registered sinks in registration order and provides
// thread-safe access to them.
type SinkRegistry struct {
	mu    sync.RWMutex
	sinks []SinkConfig
}

// NewSinkRegistry creates an empty sink registry.
func NewSinkRegistry() *SinkRegistry {
	return &SinkRegistry{}
}

// AddSink adds a named sink to the registry.
func (r *SinkRegistry) AddSink(name string, sink Sink, minLevel Level) error {
	if name == "" {
		return ewrap.New("sink name cannot be empty")
	}

	if sink == nil {
		return ewrap.New("sink cannot be nil").WithMetadata("name", name)
	}

	if !minLevel.IsValid() {
		return ewrap.New("invalid sink level").
			WithMetadata("name", name).
			WithMetadata("level", minLevel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(name) >= 0 {
		return ewrap.New("sink already registered").WithMetadata("name", name)
	}

	r.sinks = append(r.sinks, SinkConfig{Name: name, MinLevel: minLevel, Sink: sink})

	return nil
}

// RemoveSink removes a sink by name.
func (r *SinkRegistry) RemoveSink(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return false
	}

	r.sinks = slices.Delete(r.sinks, idx, idx+1)

	return true
}

// GetSink retrieves a sink by name.
func (r *SinkRegistry) GetSink(name string) (Sink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(name)
	if idx < 0 {
		return nil, false
	}

	return r.sinks[idx].Sink, true
}

// Names returns the registered sink names in registration order.
func (r *SinkRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sinks))
	for _, cfg := range r.sinks {
		names = append(names, cfg.Name)
	}

	return names
}

// SinksForLevel returns the sinks that accept the given level name.
func (r *SinkRegistry) SinksForLevel(levelName string) []SinkConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []SinkConfig

	for _, cfg := range r.sinks {
		if cfg.Accepts(levelName) {
			result = append(result, cfg)
		}
	}

	return result
}

// Dispatch delivers the record to every sink accepting its level and returns
// the errors they produced, each tagged with the sink name.
func (r *SinkRegistry) Dispatch(record *Record) []error {
	if record == nil {
		return nil
	}

	var errs []error

	for _, cfg := range r.SinksForLevel(record.Level) {
		err := cfg.Sink.Emit(record)
		if err != nil {
			errs = append(errs, ewrap.Wrap(err, "sink failed").WithMetadata("sink", cfg.Name))
		}
	}

	return errs
}

// Close closes every sink implementing io.Closer and clears the registry.
func (r *SinkRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errorGroup := ewrap.NewErrorGroup()

	for _, cfg := range r.sinks {
		closer, ok := cfg.Sink.(io.Closer)
		if !ok {
			continue
		}

		err := closer.Close()
		if err != nil {
			errorGroup.Add(ewrap.Wrap(err, "closing sink").WithMetadata("sink", cfg.Name))
		}
	}

	r.sinks = nil

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

func (r *SinkRegistry) indexOf(name string) int {
	return slices.IndexFunc(r.sinks, func(cfg SinkConfig) bool {
		return cfg.Name == name
	})
}
