package richsink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/maxludden/loguru-rich-sink/internal/constants"
	"github.com/maxludden/loguru-rich-sink/internal/utils"
)

// ConfigBuilder provides a fluent API for constructing session configurations.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new builder seeded with DefaultConfig.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

// NewConfigBuilderFrom creates a builder seeded with an existing configuration,
// typically one produced by the configloader package.
func NewConfigBuilderFrom(config Config) *ConfigBuilder {
	return &ConfigBuilder{config: config}
}

// WithConsole sets where panels are rendered.
// Example: builder.WithConsole(os.Stderr).
func (b *ConfigBuilder) WithConsole(console io.Writer) *ConfigBuilder {
	b.config.Console = console

	return b
}

// WithLevel sets the minimum level rendered on the console.
func (b *ConfigBuilder) WithLevel(level Level) *ConfigBuilder {
	b.config.Level = level

	return b
}

// WithFileLevel sets the minimum level written to the trace file.
func (b *ConfigBuilder) WithFileLevel(level Level) *ConfigBuilder {
	b.config.FileLevel = level

	return b
}

// WithTraceLevel renders every level on the console.
func (b *ConfigBuilder) WithTraceLevel() *ConfigBuilder {
	return b.WithLevel(TraceLevel)
}

// WithLogsDir sets the directory holding run.txt and trace.log.
// Example: builder.WithLogsDir("/tmp/myapp/logs").
func (b *ConfigBuilder) WithLogsDir(dir string) *ConfigBuilder {
	b.config.LogsDir = dir

	return b
}

// WithProjectRoot places the logs directory at <root>/logs, where root is the
// nearest ancestor of start holding a go.mod file. When no marker is found the
// logs directory is placed under start.
func (b *ConfigBuilder) WithProjectRoot(start string) *ConfigBuilder {
	root, err := utils.FindRoot(start, constants.ProjectMarker)
	if err != nil {
		root = start
	}

	b.config.LogsDir = filepath.Join(root, DefaultLogsDir)

	return b
}

// WithRun pins the run number instead of reading it from run.txt.
func (b *ConfigBuilder) WithRun(run int) *ConfigBuilder {
	b.config.TrackRun = true
	b.config.Run = &run

	return b
}

// WithoutRunTracking disables the run counter. Panels and trace lines omit
// the "Run <n>" segment.
func (b *ConfigBuilder) WithoutRunTracking() *ConfigBuilder {
	b.config.TrackRun = false
	b.config.Run = nil

	return b
}

// WithStyles replaces the whole style table.
func (b *ConfigBuilder) WithStyles(styles StyleTable) *ConfigBuilder {
	b.config.Styles = styles

	return b
}

// WithStyle adds or replaces the style of a single level name.
// Example: builder.WithStyle("NOTICE", LevelStyle{Gradient: Gradient{"#ff00ff"}}).
func (b *ConfigBuilder) WithStyle(name string, style LevelStyle) *ConfigBuilder {
	if b.config.Styles.IsZero() {
		b.config.Styles = DefaultStyleTable()
	}

	b.config.Styles = b.config.Styles.With(name, style)

	return b
}

// WithWidth sets a fixed panel width. Zero detects the console width.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width

	return b
}

// WithColors enables or disables color output.
func (b *ConfigBuilder) WithColors(enable bool) *ConfigBuilder {
	b.config.Color.Enable = enable

	return b
}

// WithForceColors forces color output even when not writing to a terminal.
func (b *ConfigBuilder) WithForceColors(force bool) *ConfigBuilder {
	b.config.Color.ForceTTY = force

	return b
}

// WithColorMode applies one of "auto", "always" or "never".
// Unknown modes leave the color configuration untouched.
func (b *ConfigBuilder) WithColorMode(mode constants.ColorMode) *ConfigBuilder {
	switch mode {
	case constants.ColorModeAuto:
		b.config.Color = DefaultColorConfig()
	case constants.ColorModeAlways:
		b.config.Color = ColorConfig{Enable: true, ForceTTY: true}
	case constants.ColorModeNever:
		b.config.Color = ColorConfig{Enable: false, ForceTTY: false}
	}

	return b
}

// WithFileLog enables or disables the trace file.
func (b *ConfigBuilder) WithFileLog(enable bool) *ConfigBuilder {
	b.config.EnableFileLog = enable

	return b
}

// WithRecord stores the plain text of each panel in the record's Extra map.
func (b *ConfigBuilder) WithRecord(enable bool) *ConfigBuilder {
	b.config.Record = enable

	return b
}

// WithTimeFormat sets the panel subtitle time layout.
func (b *ConfigBuilder) WithTimeFormat(format string) *ConfigBuilder {
	b.config.TimeFormat = format

	return b
}

// WithErrorHandler sets the function receiving sink failures.
func (b *ConfigBuilder) WithErrorHandler(handler func(error)) *ConfigBuilder {
	b.config.ErrorHandler = handler

	return b
}

// WithQuietDefaults configures the builder for non-interactive runs: no
// colors, no run tracking and no trace file.
func (b *ConfigBuilder) WithQuietDefaults() *ConfigBuilder {
	return b.
		WithColors(false).
		WithoutRunTracking().
		WithFileLog(false)
}

// WithDevelopmentDefaults renders every level and forces colors, which suits
// piping output through a pager.
func (b *ConfigBuilder) WithDevelopmentDefaults() *ConfigBuilder {
	return b.
		WithTraceLevel().
		WithColors(true).
		WithForceColors(true)
}

// WithStdout is a convenience method for WithConsole(os.Stdout).
func (b *ConfigBuilder) WithStdout() *ConfigBuilder {
	return b.WithConsole(os.Stdout)
}

// Build creates a Config object from the builder.
func (b *ConfigBuilder) Build() *Config {
	config := b.config

	return &config
}
