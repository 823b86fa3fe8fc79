package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	require.NoError(t, root.Execute())

	return ansi.Strip(out.String())
}

func TestDemo(t *testing.T) {
	logsDir := filepath.Join(t.TempDir(), "logs")

	out := execute(t, "--logs-dir", logsDir, "--no-color", "--steps", "2")

	assert.Contains(t, out, "INFO | main.go | Line")
	assert.Contains(t, out, "CRITICAL | main.go | Line")
	assert.Contains(t, out, "Run 0 | ")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Run 0 Completed")

	content, err := os.ReadFile(filepath.Join(logsDir, "run.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(content))

	trace, err := os.ReadFile(filepath.Join(logsDir, "trace.log"))
	require.NoError(t, err)
	assert.Contains(t, string(trace), "DEBUG | Loaded configuration")
}

func TestDemo_PinnedRunWithoutFile(t *testing.T) {
	logsDir := filepath.Join(t.TempDir(), "logs")

	out := execute(t, "--logs-dir", logsDir, "--no-color", "--no-file", "--run", "7", "--steps", "0")

	assert.Contains(t, out, "Run 7 Completed")
	assert.NotContains(t, out, "0/0")
	assert.NoFileExists(t, filepath.Join(logsDir, "trace.log"))
}

func TestRunCommands(t *testing.T) {
	logsDir := filepath.Join(t.TempDir(), "logs")

	assert.Equal(t, "Run 0\n", execute(t, "run", "show", "--logs-dir", logsDir))
	assert.Equal(t, "Run 1\n", execute(t, "run", "increment", "--logs-dir", logsDir))
	assert.Equal(t, "Run 2\n", execute(t, "run", "increment", "--logs-dir", logsDir))
	assert.Equal(t, "Run 2\n", execute(t, "run", "show", "--logs-dir", logsDir))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "richsink.yaml")
	logsDir := filepath.Join(dir, "from-config")

	require.NoError(t, os.WriteFile(configPath, []byte("logs_dir: "+logsDir+"\nrun: 3\n"), 0o600))

	assert.Equal(t, "Run 0\n", execute(t, "run", "show", "--config", configPath))
	assert.FileExists(t, filepath.Join(logsDir, "run.txt"))
}

func TestConfigFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("level: verbose\n"), 0o600))

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", configPath})

	assert.Error(t, root.Execute())
}

func TestConfigFile_ConsoleOutput(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "richsink.yaml")
	consolePath := filepath.Join(dir, "console.log")

	require.NoError(t, os.WriteFile(configPath, []byte("output: "+consolePath+"\n"), 0o600))

	out := execute(t, "--config", configPath, "--logs-dir", filepath.Join(dir, "logs"), "--no-color", "--steps", "1")
	assert.Empty(t, out)

	content, err := os.ReadFile(consolePath)
	require.NoError(t, err)
	assert.Contains(t, ansi.Strip(string(content)), "Run 0 Completed")
	assert.Contains(t, ansi.Strip(string(content)), "1/1")

	assert.Equal(t, "Run 0\n", execute(t, "run", "show", "--config", configPath, "--logs-dir", filepath.Join(dir, "logs")))
}

func TestCloseConsole(t *testing.T) {
	require.NoError(t, closeConsole(os.Stdout))
	require.NoError(t, closeConsole(os.Stderr))
	require.NoError(t, closeConsole(&bytes.Buffer{}))

	file, err := os.Create(filepath.Join(t.TempDir(), "console.log"))
	require.NoError(t, err)
	require.NoError(t, closeConsole(file))

	_, err = file.WriteString("x")
	assert.Error(t, err, "the file is closed")
}
