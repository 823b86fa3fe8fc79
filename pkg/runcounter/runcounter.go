// Package runcounter persists an incrementing run number across process
// invocations.
//
// The number lives in a plain-text file (run.txt inside the logs directory)
// holding the decimal representation of one non-negative integer. A missing,
// empty or corrupt file reads as 0; it never produces an error.
//
// Known limitation: there is no locking. Two processes incrementing the same
// file at the same time race and the last writer wins. The counter is meant
// for a local developer run count, not for coordination.
package runcounter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/utils"
)

// Counter reads and writes the run number stored in <dir>/run.txt.
type Counter struct {
	dir  string
	path string
}

// New creates a counter backed by <dir>/run.txt. An empty dir means the
// default logs directory.
func New(dir string) *Counter {
	if strings.TrimSpace(dir) == "" {
		dir = richsink.DefaultLogsDir
	}

	return &Counter{
		dir:  dir,
		path: filepath.Join(dir, richsink.RunFileName),
	}
}

// Dir returns the directory holding the run file.
func (c *Counter) Dir() string {
	return c.dir
}

// Path returns the path of the run file.
func (c *Counter) Path() string {
	return c.path
}

// Read returns the stored run number. Missing, empty, non-numeric or negative
// content yields 0.
func (c *Counter) Read() int {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0
	}

	run, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || run < 0 {
		return 0
	}

	return run
}

// Write replaces the stored run number with run.
func (c *Counter) Write(run int) error {
	if run < 0 {
		return ewrap.New("run number cannot be negative").WithMetadata("run", run)
	}

	_, err := utils.EnsureDir(c.dir, richsink.LogDirPermissions)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.path, []byte(strconv.Itoa(run)), richsink.LogFilePermissions)
	if err != nil {
		return ewrap.Wrap(err, "writing run file").WithMetadata("path", c.path)
	}

	return nil
}

// Increment reads the stored number, adds one, writes it back and returns it.
func (c *Counter) Increment() (int, error) {
	run := c.Read() + 1

	err := c.Write(run)
	if err != nil {
		return 0, err
	}

	return run, nil
}

// Setup ensures the logs directory and run file exist, then returns the
// stored number. It never increments and is safe to call repeatedly.
func (c *Counter) Setup() (int, error) {
	_, err := utils.EnsureDir(c.dir, richsink.LogDirPermissions)
	if err != nil {
		return 0, err
	}

	_, err = os.Stat(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		err = c.Write(0)
		if err != nil {
			return 0, err
		}
	}

	return c.Read(), nil
}

// Snapshot runs Setup and captures the result as a tracked Snapshot.
func (c *Counter) Snapshot() (Snapshot, error) {
	run, err := c.Setup()
	if err != nil {
		return Snapshot{}, err
	}

	return Fixed(run), nil
}

// Snapshot is a run number captured once and held for the lifetime of a sink.
// It is never re-read, so increments made after capture are not reflected.
type Snapshot struct {
	// Value is the captured run number.
	Value int
	// Tracked is false when run tracking is disabled.
	Tracked bool
}

// Fixed returns a tracked snapshot holding run.
func Fixed(run int) Snapshot {
	return Snapshot{Value: run, Tracked: true}
}

// Untracked returns the snapshot used when run tracking is disabled.
func Untracked() Snapshot {
	return Snapshot{}
}

// Label renders the snapshot as "Run <n>", or an empty string when untracked.
func (s Snapshot) Label() string {
	if !s.Tracked {
		return ""
	}

	return "Run " + strconv.Itoa(s.Value)
}
