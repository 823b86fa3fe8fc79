// Package constants provides module-wide constant values used by the
// sinks, the config loader and the demo command. These constants define
// environment prefixes, extra keys and other fixed values to ensure
// consistency across the codebase.
package constants

const (
	// EnvPrefix is the default prefix for environment overrides.
	EnvPrefix = "RICHSINK"
	// RecordedPanelKey is the Record.Extra key holding the plain text of a rendered panel.
	RecordedPanelKey = "rich"
	// RunExtraKey is the Record.Extra key holding the run number of a session.
	RunExtraKey = "run"
	// ConsoleSinkName is the registry name of the panel sink.
	ConsoleSinkName = "console"
	// TraceSinkName is the registry name of the trace file sink.
	TraceSinkName = "trace"
	// ProjectMarker identifies a project root when walking up from a directory.
	ProjectMarker = "go.mod"
)
