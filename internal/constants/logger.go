package constants

type (
	// OutputType represents the type of console output.
	OutputType string
	// ColorMode represents how panel colors are emitted.
	ColorMode string
)

const (
	// Output types.

	// LogOutputStdout represents the standard output stream.
	LogOutputStdout OutputType = "stdout"
	// LogOutputStderr represents the standard error stream.
	LogOutputStderr OutputType = "stderr"
	// LogOutputFile represents a file output.
	LogOutputFile OutputType = "file"

	// Color modes.

	// ColorModeAuto emits colors only when the console is a terminal.
	ColorModeAuto ColorMode = "auto"
	// ColorModeAlways emits colors regardless of the console type.
	ColorModeAlways ColorMode = "always"
	// ColorModeNever disables colors.
	ColorModeNever ColorMode = "never"
)

// IsValid returns true if the given OutputType is a valid output type, and false otherwise.
func (o OutputType) IsValid() bool {
	switch o {
	case LogOutputStdout, LogOutputStderr, LogOutputFile:
		return true
	default:
		return false
	}
}

// String returns the string representation of the OutputType.
func (o OutputType) String() string {
	return string(o)
}

// IsValid returns true if the given ColorMode is a valid color mode, and false otherwise.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ColorMode.
func (m ColorMode) String() string {
	return string(m)
}
