package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	richsink "github.com/maxludden/loguru-rich-sink"
)

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_LEVEL", "warning")
	t.Setenv("APP_FILE_LEVEL", "debug")
	t.Setenv("APP_LOGS_DIR", "var/logs")
	t.Setenv("APP_TRACK_RUN", "true")
	t.Setenv("APP_RUN", "42")
	t.Setenv("APP_FILE_LOG", "false")
	t.Setenv("APP_WIDTH", "90")
	t.Setenv("APP_RECORD", "true")
	t.Setenv("APP_COLOR_ENABLE", "true")
	t.Setenv("APP_COLOR_FORCE_TTY", "true")

	cfg, err := FromEnv("app_")
	require.NoError(t, err)

	require.Equal(t, richsink.WarningLevel, cfg.Level)
	require.Equal(t, richsink.DebugLevel, cfg.FileLevel)
	require.Equal(t, "var/logs", cfg.LogsDir)
	require.True(t, cfg.TrackRun)
	require.NotNil(t, cfg.Run)
	require.Equal(t, 42, *cfg.Run)
	require.False(t, cfg.EnableFileLog)
	require.Equal(t, 90, cfg.Width)
	require.True(t, cfg.Record)
	require.True(t, cfg.Color.Enable)
	require.True(t, cfg.Color.ForceTTY)
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv("")
	require.NoError(t, err)

	defaults := richsink.DefaultConfig()

	require.Equal(t, defaults.Level, cfg.Level)
	require.Equal(t, defaults.LogsDir, cfg.LogsDir)
	require.True(t, cfg.TrackRun)
	require.Nil(t, cfg.Run)
}

func TestFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()

	configPath := filepath.Join(dir, "config.yaml")
	configData := []byte(`
level: debug
file_level: info
logs_dir: build/logs
track_run: false
width: 72
color:
  mode: never
styles:
  info:
    bold: true
    colors: ["#000000", "#ffffff"]
  notice:
    italic: true
    colors: ["#ff00ff"]
    border: "#aa00aa"
`)

	err := os.WriteFile(configPath, configData, 0o600)
	require.NoError(t, err)

	t.Setenv("RICHSINK_LEVEL", "error")

	cfg, err := FromFile(configPath)
	require.NoError(t, err)

	require.Equal(t, richsink.ErrorLevel, cfg.Level)
	require.Equal(t, richsink.InfoLevel, cfg.FileLevel)
	require.Equal(t, "build/logs", cfg.LogsDir)
	require.False(t, cfg.TrackRun)
	require.Equal(t, 72, cfg.Width)
	require.False(t, cfg.Color.Enable)

	info := cfg.Styles.Resolve("INFO")
	require.True(t, info.Emphasis.Bold)
	require.Equal(t, richsink.Gradient{"#000000", "#ffffff"}, info.Gradient)
	require.Equal(t, richsink.DefaultLevelStyles()["INFO"].Border, info.Border, "unset fields keep the default")

	notice := cfg.Styles.Resolve("NOTICE")
	require.True(t, notice.Emphasis.Italic)
	require.Equal(t, "#aa00aa", notice.Border)
}

func TestFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		errContains string
	}{
		{name: "bad level", data: "level: verbose\n", errContains: "invalid log level"},
		{name: "bad color mode", data: "color:\n  mode: sometimes\n", errContains: "invalid color mode"},
		{name: "bad gradient", data: "styles:\n  info:\n    colors: [\"red\"]\n", errContains: "invalid level style"},
		{name: "negative run", data: "run: -2\n", errContains: "negative"},
		{name: "malformed yaml", data: "level: [\n", errContains: "failed to read YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.data))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNormalizePrefix(t *testing.T) {
	require.Equal(t, "RICHSINK", normalizePrefix(" "))
	require.Equal(t, "MY_APP", normalizePrefix("my-app_"))
}

func TestConfigKeys(t *testing.T) {
	require.ElementsMatch(t, []string{
		"level",
		"file_level",
		"logs_dir",
		"track_run",
		"run",
		"file_log",
		"width",
		"record",
		"output",
		"color.enable",
		"color.force_tty",
		"color.mode",
	}, configKeys())
}

func TestFromEnvColorMode(t *testing.T) {
	t.Setenv("RICHSINK_COLOR_MODE", "always")

	cfg, err := FromEnv("")
	require.NoError(t, err)
	require.True(t, cfg.Color.Enable)
	require.True(t, cfg.Color.ForceTTY)
}

func TestFromYAMLStyleDimAndBackground(t *testing.T) {
	cfg, err := FromYAML([]byte(`
styles:
  trace:
    dim: false
    italic: true
  critical:
    background: ""
    colors: ["#ff0000"]
  notice:
    background: "#222222"
`))
	require.NoError(t, err)

	trace := cfg.Styles.Resolve("TRACE")
	require.False(t, trace.Emphasis.Dim)
	require.True(t, trace.Emphasis.Italic)

	critical := cfg.Styles.Resolve("CRITICAL")
	require.Empty(t, critical.Background)
	require.Equal(t, richsink.Gradient{"#ff0000"}, critical.Gradient)

	require.Equal(t, "#222222", cfg.Styles.Resolve("NOTICE").Background)
}
