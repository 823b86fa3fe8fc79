// Package progress renders one-line progress bars colored with the same
// palette as the log panels.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	bubbleprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/hyp3rd/ewrap"
	"github.com/muesli/termenv"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/pkg/panel"
)

const (
	// DefaultBarWidth is the width of the bar itself, excluding the text columns.
	DefaultBarWidth = 40

	unknownDuration = "-:--:--"
)

// Bar renders a progress line:
//
//	∙●∙ Indexing ━━━━━━━━━━━━──────────  42% 0:00:05 0:00:07 21/50
//
// Columns are the spinner, description, bar, percentage, elapsed time,
// estimated remaining time and completed/total count.
type Bar struct {
	out      io.Writer
	model    bubbleprogress.Model
	spinner  spinner.Spinner
	style    richsink.LevelStyle
	profile  termenv.Profile
	pinned   bool
	colors   richsink.ColorConfig
	width    int
	lg       *lipgloss.Renderer
	describe lipgloss.Style
	muted    lipgloss.Style
}

// Option configures a Bar.
type Option func(*Bar)

// WithStyle colors the bar with the style's first and last gradient stops.
func WithStyle(style richsink.LevelStyle) Option {
	return func(b *Bar) {
		b.style = style
	}
}

// WithWidth sets the width of the bar column.
func WithWidth(width int) Option {
	return func(b *Bar) {
		if width > 0 {
			b.width = width
		}
	}
}

// WithColorConfig decides whether colors are emitted.
func WithColorConfig(colors richsink.ColorConfig) Option {
	return func(b *Bar) {
		b.colors = colors
	}
}

// WithColorProfile pins the color profile, bypassing terminal detection.
func WithColorProfile(profile termenv.Profile) Option {
	return func(b *Bar) {
		b.profile = profile
		b.pinned = true
	}
}

// WithSpinner replaces the spinner frames.
func WithSpinner(s spinner.Spinner) Option {
	return func(b *Bar) {
		if len(s.Frames) > 0 {
			b.spinner = s
		}
	}
}

// New creates a bar writing to out, styled like INFO panels by default.
func New(out io.Writer, opts ...Option) *Bar {
	if out == nil {
		out = os.Stdout
	}

	b := &Bar{
		out:     out,
		spinner: spinner.Points,
		style:   richsink.DefaultStyleTable().Resolve(richsink.InfoLevel.String()),
		colors:  richsink.DefaultColorConfig(),
		width:   DefaultBarWidth,
	}

	for _, opt := range opts {
		opt(b)
	}

	if !b.pinned {
		b.profile = panel.ColorProfile(out, b.colors)
	}

	b.lg = lipgloss.NewRenderer(out)
	b.lg.SetColorProfile(b.profile)

	b.model = bubbleprogress.New(
		fill(b.style),
		bubbleprogress.WithWidth(b.width),
		bubbleprogress.WithoutPercentage(),
		bubbleprogress.WithColorProfile(b.profile),
	)

	b.describe = b.lg.NewStyle().
		Foreground(lipgloss.Color(b.style.BorderColor())).
		Bold(b.style.Emphasis.Bold).
		Italic(b.style.Emphasis.Italic)
	b.muted = b.lg.NewStyle().Foreground(lipgloss.Color(richsink.NeutralColor))

	return b
}

func fill(style richsink.LevelStyle) bubbleprogress.Option {
	stops := style.Gradient
	if len(stops) == 0 {
		return bubbleprogress.WithSolidFill(richsink.NeutralColor)
	}

	if len(stops) == 1 {
		return bubbleprogress.WithSolidFill(stops[0])
	}

	return bubbleprogress.WithGradient(stops[0], stops[len(stops)-1])
}

// Percent returns done/total clamped to [0, 1]. A non-positive total is 0.
func Percent(done, total int) float64 {
	if total <= 0 || done <= 0 {
		return 0
	}

	if done >= total {
		return 1
	}

	return float64(done) / float64(total)
}

// Render returns the progress line without a trailing newline.
func (b *Bar) Render(description string, done, total int, elapsed time.Duration) string {
	pct := Percent(done, total)

	columns := []string{
		b.describe.Render(b.frame(elapsed, pct)),
	}

	if description != "" {
		columns = append(columns, b.describe.Render(description))
	}

	columns = append(columns,
		b.model.ViewAs(pct),
		fmt.Sprintf("%3.0f%%", pct*100),
		b.muted.Render(FormatDuration(elapsed)),
		b.muted.Render(remaining(done, total, elapsed)),
		fmt.Sprintf("%d/%d", max(done, 0), max(total, 0)),
	)

	return strings.Join(columns, " ")
}

// Print renders the line and writes it followed by a newline.
func (b *Bar) Print(description string, done, total int, elapsed time.Duration) error {
	_, err := io.WriteString(b.out, b.Render(description, done, total, elapsed)+"\n")
	if err != nil {
		return ewrap.Wrap(err, "writing progress line")
	}

	return nil
}

func (b *Bar) frame(elapsed time.Duration, pct float64) string {
	frames := b.spinner.Frames
	if pct >= 1 {
		return frames[len(frames)-1]
	}

	if b.spinner.FPS <= 0 || elapsed <= 0 {
		return frames[0]
	}

	return frames[int(elapsed/b.spinner.FPS)%len(frames)]
}

// FormatDuration renders d as H:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	seconds := int(d.Round(time.Second) / time.Second)

	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// remaining estimates the time left from the average pace so far.
func remaining(done, total int, elapsed time.Duration) string {
	if done <= 0 || total <= 0 || elapsed <= 0 {
		return unknownDuration
	}

	if done >= total {
		return FormatDuration(0)
	}

	perItem := elapsed / time.Duration(done)

	return FormatDuration(perItem * time.Duration(total-done))
}
