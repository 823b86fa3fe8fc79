// Package output provides the output destinations used by the sinks.
//
// This package implements:
// - FileWriter, an append-only file writer that creates its parent directory
// - A Writer adapter for plain io.Writer values
// - Terminal detection for choosing a color profile
//
// Each writer implements the Writer interface, which extends io.Writer with methods
// for synchronization and cleanup:
//
//	type Writer interface {
//	    io.Writer
//	    Sync() error  // Ensures all data is written
//	    Close() error // Releases resources
//	}
//
// Rotation and retention are intentionally absent; a FileWriter only ever appends.
package output

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hyp3rd/ewrap"
	"github.com/mattn/go-isatty"

	"github.com/maxludden/loguru-rich-sink/internal/utils"
)

const (
	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

// FileWriter implements Writer for append-only file logging.
type FileWriter struct {
	mu   sync.Mutex
	file *os.File
	path string
	size int64
}

// FileConfig holds configuration for file output.
//
// - Path is the log file path
// - FileMode sets the permissions for new log files.
type FileConfig struct {
	// Path is the log file path
	Path string
	// FileMode sets the permissions for new log files
	FileMode os.FileMode
}

// NewFileWriter creates a new append-only log writer. The parent directory is
// created when missing; an existing file is appended to, never truncated.
func NewFileWriter(config FileConfig) (*FileWriter, error) {
	if config.Path == "" {
		return nil, ErrEmptyPath
	}

	if config.FileMode == 0 {
		config.FileMode = defaultFileMode
	}

	path := filepath.Clean(config.Path)

	_, err := utils.EnsureDir(filepath.Dir(path), defaultDirMode)
	if err != nil {
		return nil, ewrap.Wrap(err, "creating log directory").WithMetadata("path", path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.FileMode)
	if err != nil {
		return nil, ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", path)
	}

	info, err := file.Stat()
	if err != nil {
		ioErr := file.Close()
		if ioErr != nil {
			return nil, ewrap.Wrapf(ioErr, "closing file").
				WithMetadata("path", path).
				WithMetadata("err", err)
		}

		return nil, ewrap.Wrapf(err, "getting file stats").
			WithMetadata("path", path)
	}

	return &FileWriter{
		file: file,
		path: path,
		size: info.Size(),
	}, nil
}

// Write implements io.Writer. Each call appends data to the end of the file.
func (w *FileWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, ErrWriterClosed
	}

	bytesWritten, err := w.file.Write(data)
	if err != nil {
		return bytesWritten, ewrap.Wrap(err, "failed writing to log file").
			WithMetadata("path", w.path)
	}

	w.size += int64(bytesWritten)

	return bytesWritten, nil
}

// Path returns the path of the log file.
func (w *FileWriter) Path() string {
	return w.path
}

// Size returns the number of bytes in the file, including data written before it was opened.
func (w *FileWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.size
}

// Sync ensures any buffered data is written to the underlying file.
// If the file has already been closed, Sync returns nil without error.
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "syncing log file")
	}

	return nil
}

// Close syncs and closes the underlying file. Closing twice is a no-op.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Sync()
	if err != nil {
		return ewrap.Wrapf(err, "final sync before close")
	}

	err = w.file.Close()
	if err != nil {
		return ewrap.Wrapf(err, "closing log file")
	}

	w.file = nil

	return nil
}

func isStandardStream(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (f == os.Stdout || f == os.Stderr)
}

// IsTerminal checks if the given writer is a terminal. Writers wrapping another
// writer through an Underlying method are unwrapped first.
func IsTerminal(w io.Writer) bool {
	switch typed := w.(type) {
	case interface{ Underlying() io.Writer }:
		return IsTerminal(typed.Underlying())
	case interface{ Fd() uintptr }:
		fd := typed.Fd()

		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return false
	}
}
