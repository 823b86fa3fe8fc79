package richsink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, os.Stdout, config.Console)
	assert.Equal(t, InfoLevel, config.Level)
	assert.Equal(t, TraceLevel, config.FileLevel)
	assert.Equal(t, DefaultLogsDir, config.LogsDir)
	assert.True(t, config.TrackRun)
	assert.Nil(t, config.Run)
	assert.True(t, config.EnableFileLog)
	assert.False(t, config.Record)
	assert.Len(t, config.Styles.Levels(), 7)
	assert.Equal(t, filepath.Join("logs", "run.txt"), config.RunFilePath())
	assert.Equal(t, filepath.Join("logs", "trace.log"), config.TraceFilePath())
}

func TestPresetConfigs(t *testing.T) {
	dev := DevelopmentConfig()
	assert.Equal(t, TraceLevel, dev.Level)

	quiet := QuietConfig()
	assert.False(t, quiet.Color.Enable)
	assert.False(t, quiet.TrackRun)
	assert.False(t, quiet.EnableFileLog)
}

func TestConfig_Validate(t *testing.T) {
	negative := -1

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "invalid level", mutate: func(c *Config) { c.Level = Level(42) }, wantErr: true},
		{name: "invalid file level", mutate: func(c *Config) { c.FileLevel = Level(42) }, wantErr: true},
		{name: "nil console", mutate: func(c *Config) { c.Console = nil }, wantErr: true},
		{name: "negative run", mutate: func(c *Config) { c.Run = &negative }, wantErr: true},
		{name: "negative width", mutate: func(c *Config) { c.Width = -10 }, wantErr: true},
		{
			name: "bad style",
			mutate: func(c *Config) {
				c.Styles = c.Styles.With("INFO", LevelStyle{Gradient: Gradient{"nope"}})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConfig_ValidateFillsDefaults(t *testing.T) {
	config := Config{Console: &bytes.Buffer{}}

	require.NoError(t, config.Validate())

	assert.False(t, config.Styles.IsZero())
	assert.Equal(t, DefaultLogsDir, config.LogsDir)
	assert.Equal(t, DefaultTimeFormat, config.TimeFormat)
	assert.Equal(t, DefaultFileTimeFormat, config.FileTimeFormat)
	assert.NotNil(t, config.ErrorHandler)
}

func TestConfig_ValidateNil(t *testing.T) {
	var config *Config

	assert.Error(t, config.Validate())
}

func TestSetOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	tests := []struct {
		name       string
		output     string
		wantWriter io.Writer
		wantErr    bool
	}{
		{name: "stdout output", output: "stdout", wantWriter: os.Stdout},
		{name: "stderr output", output: "STDERR", wantWriter: os.Stderr},
		{name: "file path", output: logPath},
		{name: "empty", output: "  ", wantErr: true},
		{name: "unwritable path", output: filepath.Join(logPath, "nested", "x.log"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, err := SetOutput(tt.output)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			if tt.wantWriter != nil {
				assert.Equal(t, tt.wantWriter, writer)

				return
			}

			file, ok := writer.(*os.File)
			require.True(t, ok)

			defer file.Close()

			assert.FileExists(t, tt.output)
		})
	}
}
