// Package sink turns log records into console panels and trace-file lines.
//
// RichSink renders one panel per record through a panel.Renderer. FileSink
// appends one plain line per record to an append-only writer. Both hold a
// run-number snapshot captured at construction, which is never re-read.
package sink

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/constants"
	"github.com/maxludden/loguru-rich-sink/pkg/panel"
	"github.com/maxludden/loguru-rich-sink/pkg/runcounter"
)

const labelSeparator = " | "

// RichSink renders every record as a styled panel.
type RichSink struct {
	mu         sync.Mutex
	renderer   *panel.Renderer
	run        runcounter.Snapshot
	styles     richsink.StyleTable
	timeFormat string
	record     bool
}

// RichOption configures a RichSink.
type RichOption func(*RichSink)

// WithTimeFormat sets the subtitle time layout.
func WithTimeFormat(layout string) RichOption {
	return func(s *RichSink) {
		if layout != "" {
			s.timeFormat = layout
		}
	}
}

// WithRecording stores the plain text of each panel in record.Extra["rich"].
func WithRecording(enable bool) RichOption {
	return func(s *RichSink) {
		s.record = enable
	}
}

// NewRichSink creates a sink drawing through renderer. A zero styles table
// resolves every level to the default style.
func NewRichSink(renderer *panel.Renderer, run runcounter.Snapshot, styles richsink.StyleTable, opts ...RichOption) *RichSink {
	if renderer == nil {
		renderer = panel.NewRenderer(nil)
	}

	s := &RichSink{
		renderer:   renderer,
		run:        run,
		styles:     styles,
		timeFormat: richsink.DefaultTimeFormat,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run returns the snapshot the sink renders.
func (s *RichSink) Run() runcounter.Snapshot {
	return s.run
}

// Emit renders and prints one panel for the record.
func (s *RichSink) Emit(record *richsink.Record) error {
	if record == nil {
		return nil
	}

	p := s.Panel(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	rendered := s.renderer.Render(p)

	err := s.renderer.Write(rendered)
	if err != nil {
		return err
	}

	if s.record {
		record.SetExtra(constants.RecordedPanelKey, ansi.Strip(rendered))
	}

	return nil
}

// Panel builds the panel for a record without drawing it.
func (s *RichSink) Panel(record *richsink.Record) panel.Panel {
	return panel.Panel{
		Title:    Title(record),
		Subtitle: s.subtitle(record),
		Body:     record.Message,
		Style:    s.styles.Resolve(record.Level),
	}
}

// Title returns "<LEVEL> | <file> | Line <n>".
func Title(record *richsink.Record) string {
	return strings.Join([]string{
		record.Level,
		record.File,
		"Line " + strconv.Itoa(record.Line),
	}, labelSeparator)
}

func (s *RichSink) subtitle(record *richsink.Record) string {
	stamp := record.Time.Format(s.timeFormat)

	if label := s.run.Label(); label != "" {
		return label + labelSeparator + stamp
	}

	return stamp
}
