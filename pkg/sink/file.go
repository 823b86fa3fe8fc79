package sink

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/hyp3rd/ewrap"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/output"
	"github.com/maxludden/loguru-rich-sink/pkg/runcounter"
)

// fileColumnWidth is the width the source file name is centered in.
const fileColumnWidth = 12

// FileSink appends one plain-text line per record:
//
//	2006-01-02 15:04:05.000 | Run 3 |   main.go    | Line 42 | INFO | message
//
// The run segment is omitted when the snapshot is untracked.
type FileSink struct {
	mu         sync.Mutex
	writer     output.Writer
	run        runcounter.Snapshot
	timeFormat string
}

// FileOption configures a FileSink.
type FileOption func(*FileSink)

// WithFileTimeFormat sets the timestamp layout of each line.
func WithFileTimeFormat(layout string) FileOption {
	return func(s *FileSink) {
		if layout != "" {
			s.timeFormat = layout
		}
	}
}

// NewFileSink creates a sink writing lines to w.
func NewFileSink(w io.Writer, run runcounter.Snapshot, opts ...FileOption) *FileSink {
	s := &FileSink{
		writer:     output.NewWriterAdapter(w),
		run:        run,
		timeFormat: richsink.DefaultFileTimeFormat,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// OpenFileSink opens <dir>/trace.log in append mode, creating the directory
// and file when needed.
func OpenFileSink(dir string, run runcounter.Snapshot, opts ...FileOption) (*FileSink, error) {
	writer, err := output.NewFileWriter(output.FileConfig{
		Path:     filepath.Join(dir, richsink.TraceFileName),
		FileMode: richsink.LogFilePermissions,
	})
	if err != nil {
		return nil, ewrap.Wrap(err, "opening trace file").WithMetadata("dir", dir)
	}

	return NewFileSink(writer, run, opts...), nil
}

// Emit appends the formatted line for the record.
func (s *FileSink) Emit(record *richsink.Record) error {
	if record == nil {
		return nil
	}

	line := s.Format(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.writer, line)
	if err != nil {
		return ewrap.Wrap(err, "writing trace line")
	}

	return nil
}

// Format returns the line written for the record, including the newline.
func (s *FileSink) Format(record *richsink.Record) string {
	parts := make([]string, 0, 6)
	parts = append(parts, record.Time.Format(s.timeFormat))

	if label := s.run.Label(); label != "" {
		parts = append(parts, label)
	}

	parts = append(parts,
		Center(record.File, fileColumnWidth),
		"Line "+strconv.Itoa(record.Line),
		record.Level,
		record.Message,
	)

	return strings.Join(parts, labelSeparator) + "\n"
}

// Sync flushes the underlying writer.
func (s *FileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writer.Sync()
}

// Close closes the underlying writer. Standard streams are left open.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writer.Close()
}

// Center pads text with spaces to width, placing the odd space on the right.
// Text at least width runes long is returned unchanged.
func Center(text string, width int) string {
	gap := width - len([]rune(text))
	if gap <= 0 {
		return text
	}

	left := gap / 2

	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}
