package richsink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/maxludden/loguru-rich-sink/internal/constants"
)

const (
	// DefaultLevel is the default minimum level of the console sink.
	DefaultLevel = InfoLevel
	// DefaultFileLevel is the default minimum level of the trace file sink.
	DefaultFileLevel = TraceLevel
	// DefaultLogsDir is the logs directory, relative to the working directory.
	DefaultLogsDir = "logs"
	// RunFileName is the name of the run counter file inside the logs directory.
	RunFileName = "run.txt"
	// TraceFileName is the name of the append-only trace log inside the logs directory.
	TraceFileName = "trace.log"
	// DefaultTimeFormat formats the panel subtitle timestamp (HH:MM:SS.mmm).
	DefaultTimeFormat = "15:04:05.000"
	// DefaultFileTimeFormat formats the full timestamp of trace file lines.
	DefaultFileTimeFormat = "2006-01-02 15:04:05.000"
	// LogFilePermissions are the default file permissions for log and run files.
	LogFilePermissions = 0o644
	// LogDirPermissions are the default permissions for the logs directory.
	LogDirPermissions = 0o755
	// DefaultPanelWidth is used when the console width cannot be detected.
	DefaultPanelWidth = 100
)

// Config holds configuration for a logging session.
type Config struct {
	// Level is the minimum level rendered as console panels.
	Level Level
	// FileLevel is the minimum level written to the trace file.
	FileLevel Level
	// Console is where panels are rendered.
	Console io.Writer
	// Color configuration.
	Color ColorConfig
	// LogsDir holds run.txt and trace.log.
	LogsDir string
	// TrackRun enables the persistent run counter.
	TrackRun bool
	// Run overrides the persisted run number. Nil means read it from disk.
	Run *int
	// EnableFileLog enables the append-only trace file.
	EnableFileLog bool
	// Styles maps level names to panel styles. The zero value means DefaultStyleTable.
	Styles StyleTable
	// Width is the panel width. Zero detects the console width.
	Width int
	// TimeFormat formats the panel subtitle timestamp.
	TimeFormat string
	// FileTimeFormat formats the trace file timestamp.
	FileTimeFormat string
	// Record stores the plain text of each rendered panel in Record.Extra["rich"].
	Record bool
	// ErrorHandler receives sink failures. Nil reports them on stderr.
	ErrorHandler func(error)
}

// DefaultConfig returns the default session configuration: panels at INFO and
// above on stdout, every level in <cwd>/logs/trace.log, run tracking enabled.
func DefaultConfig() Config {
	return Config{
		Level:          DefaultLevel,
		FileLevel:      DefaultFileLevel,
		Console:        os.Stdout,
		Color:          DefaultColorConfig(),
		LogsDir:        DefaultLogsDir,
		TrackRun:       true,
		Run:            nil,
		EnableFileLog:  true,
		Styles:         DefaultStyleTable(),
		Width:          0,
		TimeFormat:     DefaultTimeFormat,
		FileTimeFormat: DefaultFileTimeFormat,
		Record:         false,
		ErrorHandler:   nil,
	}
}

// DevelopmentConfig returns a configuration that renders every level on the console.
func DevelopmentConfig() Config {
	config := DefaultConfig()
	config.Level = TraceLevel

	return config
}

// QuietConfig returns a configuration for non-interactive runs: no colors,
// no run tracking and no trace file.
func QuietConfig() Config {
	config := DefaultConfig()
	config.Color.Enable = false
	config.TrackRun = false
	config.EnableFileLog = false

	return config
}

// RunFilePath returns the path of the run counter file.
func (c *Config) RunFilePath() string {
	return filepath.Join(c.logsDir(), RunFileName)
}

// TraceFilePath returns the path of the trace log file.
func (c *Config) TraceFilePath() string {
	return filepath.Join(c.logsDir(), TraceFileName)
}

func (c *Config) logsDir() string {
	if strings.TrimSpace(c.LogsDir) == "" {
		return DefaultLogsDir
	}

	return c.LogsDir
}

// Validate checks the configuration and fills defaults for unset optional values.
func (c *Config) Validate() error {
	if c == nil {
		return ewrap.New("config cannot be nil")
	}

	if !c.Level.IsValid() {
		return ewrap.New("invalid log level").WithMetadata("level", c.Level)
	}

	if !c.FileLevel.IsValid() {
		return ewrap.New("invalid file log level").WithMetadata("level", c.FileLevel)
	}

	if c.Console == nil {
		return ewrap.New("console writer is required")
	}

	if c.Run != nil && *c.Run < 0 {
		return ewrap.New("run number cannot be negative").WithMetadata("run", *c.Run)
	}

	if c.Width < 0 {
		return ewrap.New("panel width cannot be negative").WithMetadata("width", c.Width)
	}

	if c.Styles.IsZero() {
		c.Styles = DefaultStyleTable()
	}

	err := c.Styles.Validate()
	if err != nil {
		return err
	}

	if c.LogsDir == "" {
		c.LogsDir = DefaultLogsDir
	}

	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}

	if c.FileTimeFormat == "" {
		c.FileTimeFormat = DefaultFileTimeFormat
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = ReportToStderr
	}

	return nil
}

// ReportToStderr is the default ErrorHandler.
func ReportToStderr(err error) {
	fmt.Fprintf(os.Stderr, "richsink: %v\n", err)
}

// SetOutput resolves the console destination. It accepts "stdout", "stderr",
// or a file path. A file is created if needed and opened in append mode.
func SetOutput(output string) (io.Writer, error) {
	switch constants.OutputType(strings.ToLower(strings.TrimSpace(output))) {
	case constants.LogOutputStdout:
		return os.Stdout, nil
	case constants.LogOutputStderr:
		return os.Stderr, nil
	default:
		if strings.TrimSpace(output) == "" {
			return nil, ewrap.New("output path cannot be empty")
		}

		path := filepath.Clean(output)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermissions)
		if err != nil {
			return nil, ewrap.Wrapf(err, "failed to open console output %s", path)
		}

		return file, nil
	}
}
