// Package log wires a complete logging session for an application.
//
// A session owns the run counter, the console panel sink and the trace file
// sink, all sharing one run-number snapshot taken when the session starts:
//
// - The console sink renders records at Config.Level and above as panels
// - The trace sink appends records at Config.FileLevel and above to logs/trace.log
// - Complete logs "Run <n> Completed" and advances the persisted counter
//
// Usage:
//
//	session, err := log.New(richsink.DefaultConfig())
//	if err != nil {
//		panic(err)
//	}
//	defer session.Close()
//
//	session.Logger.Info("Service started successfully")
//	session.Complete()
package log

import (
	"github.com/hyp3rd/ewrap"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/constants"
	"github.com/maxludden/loguru-rich-sink/pkg/adapter"
	"github.com/maxludden/loguru-rich-sink/pkg/panel"
	"github.com/maxludden/loguru-rich-sink/pkg/runcounter"
	"github.com/maxludden/loguru-rich-sink/pkg/sink"
)

// Session groups the logger with the run counter backing it.
type Session struct {
	// Logger emits records to the session sinks.
	Logger *adapter.Adapter
	// Counter persists the run number. It is nil when run tracking is disabled.
	Counter *runcounter.Counter
	// Run is the snapshot rendered by every sink of this session.
	Run runcounter.Snapshot
	// Console is the panel sink.
	Console *sink.RichSink
	// Trace is the trace file sink. It is nil when the file log is disabled.
	Trace *sink.FileSink
}

// New creates a session from the configuration. The run number is taken
// from config.Run when set, otherwise from <LogsDir>/run.txt, which is created
// with 0 when absent.
func New(config richsink.Config, opts ...adapter.Option) (*Session, error) {
	err := config.Validate()
	if err != nil {
		return nil, ewrap.Wrap(err, "invalid session configuration")
	}

	session := &Session{Run: runcounter.Untracked()}

	if config.TrackRun {
		session.Counter = runcounter.New(config.LogsDir)

		session.Run, err = snapshot(session.Counter, config.Run)
		if err != nil {
			return nil, ewrap.Wrap(err, "setting up run counter")
		}

		opts = append([]adapter.Option{adapter.WithExtra(constants.RunExtraKey, session.Run.Value)}, opts...)
	}

	logger, err := adapter.NewAdapter(&config, opts...)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create logger")
	}

	session.Logger = logger

	renderer := panel.NewRenderer(
		config.Console,
		panel.WithWidth(config.Width),
		panel.WithColorConfig(config.Color),
	)

	session.Console = sink.NewRichSink(
		renderer,
		session.Run,
		config.Styles,
		sink.WithTimeFormat(config.TimeFormat),
		sink.WithRecording(config.Record),
	)

	err = logger.AddSink(constants.ConsoleSinkName, session.Console, config.Level)
	if err != nil {
		return nil, err
	}

	if config.EnableFileLog {
		session.Trace, err = sink.OpenFileSink(config.LogsDir, session.Run, sink.WithFileTimeFormat(config.FileTimeFormat))
		if err != nil {
			return nil, err
		}

		err = logger.AddSink(constants.TraceSinkName, session.Trace, config.FileLevel)
		if err != nil {
			_ = session.Trace.Close()

			return nil, err
		}
	}

	return session, nil
}

// NewWithDefaults creates a session from richsink.DefaultConfig.
func NewWithDefaults() (*Session, error) {
	return New(richsink.DefaultConfig())
}

func snapshot(counter *runcounter.Counter, pinned *int) (runcounter.Snapshot, error) {
	if pinned == nil {
		return counter.Snapshot()
	}

	_, err := counter.Setup()
	if err != nil {
		return runcounter.Snapshot{}, err
	}

	return runcounter.Fixed(*pinned), nil
}

// Complete logs "Run <n> Completed" and increments the persisted counter,
// returning the new value. Without run tracking it only logs and returns 0.
func (s *Session) Complete() (int, error) {
	if s.Counter == nil {
		s.Logger.Info("Run Completed")

		return 0, nil
	}

	s.Logger.Infof("Run %d Completed", s.Run.Value)

	next, err := s.Counter.Increment()
	if err != nil {
		return 0, ewrap.Wrap(err, "advancing run counter")
	}

	return next, nil
}

// Close closes every sink of the session.
func (s *Session) Close() error {
	return s.Logger.Close()
}
