// Package panel draws messages inside rounded, colored boxes.
//
// A panel has a title embedded on the left of its top border, a subtitle
// embedded on the right of its bottom border, and a body padded by one line
// vertically and two columns horizontally. The body is painted rune by rune
// along the level's gradient and the border uses the level's border color.
package panel

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/hyp3rd/ewrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/output"
)

const (
	// MinWidth is the narrowest panel the renderer draws.
	MinWidth = 20
	// MaxDetectedWidth caps the width taken from the terminal size.
	MaxDetectedWidth = 120

	paddingVertical   = 1
	paddingHorizontal = 2
	ellipsis          = "…"
)

// Panel is a single box to draw.
type Panel struct {
	Title    string
	Subtitle string
	Body     string
	Style    richsink.LevelStyle
}

// Renderer draws panels onto an output stream.
type Renderer struct {
	out      io.Writer
	lg       *lipgloss.Renderer
	border   lipgloss.Border
	width    int
	colors   richsink.ColorConfig
	profile  termenv.Profile
	pinned   bool
	override int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth fixes the total panel width including borders.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.override = width
	}
}

// WithColorConfig decides whether colors are emitted. See ColorProfile.
func WithColorConfig(colors richsink.ColorConfig) Option {
	return func(r *Renderer) {
		r.colors = colors
	}
}

// WithColorProfile pins the color profile, bypassing terminal detection.
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = profile
		r.pinned = true
	}
}

// WithBorder replaces the rounded border.
func WithBorder(border lipgloss.Border) Option {
	return func(r *Renderer) {
		r.border = border
	}
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	if out == nil {
		out = os.Stdout
	}

	r := &Renderer{
		out:    out,
		border: lipgloss.RoundedBorder(),
		colors: richsink.DefaultColorConfig(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if !r.pinned {
		r.profile = ColorProfile(out, r.colors)
	}

	r.lg = lipgloss.NewRenderer(out)
	r.lg.SetColorProfile(r.profile)
	r.width = r.resolveWidth()

	return r
}

// ColorProfile picks the profile used for out. Colors are dropped when
// disabled, forced to true color when ForceTTY is set, and otherwise detected
// from the terminal, with non-terminals getting no colors.
func ColorProfile(out io.Writer, colors richsink.ColorConfig) termenv.Profile {
	switch {
	case !colors.Enable:
		return termenv.Ascii
	case colors.ForceTTY:
		return termenv.TrueColor
	case !output.IsTerminal(out):
		return termenv.Ascii
	default:
		return lipgloss.NewRenderer(out).ColorProfile()
	}
}

func (r *Renderer) resolveWidth() int {
	if r.override > 0 {
		return max(r.override, MinWidth)
	}

	if file, ok := underlyingFile(r.out); ok {
		cols, _, err := term.GetSize(int(file.Fd()))
		if err == nil && cols > 0 {
			return min(max(cols, MinWidth), MaxDetectedWidth)
		}
	}

	return richsink.DefaultPanelWidth
}

func underlyingFile(w io.Writer) (*os.File, bool) {
	if wrapped, ok := w.(interface{ Underlying() io.Writer }); ok {
		w = wrapped.Underlying()
	}

	file, ok := w.(*os.File)

	return file, ok
}

// Width returns the total panel width including borders.
func (r *Renderer) Width() int {
	return r.width
}

// Profile returns the color profile used for painting.
func (r *Renderer) Profile() termenv.Profile {
	return r.lg.ColorProfile()
}

// Writer returns the output stream.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Render draws the panel and returns it without a trailing newline.
func (r *Renderer) Render(p Panel) string {
	inner := r.width - 2
	edge := r.lg.NewStyle().
		Foreground(lipgloss.Color(p.Style.BorderColor())).
		Bold(true)

	painter := NewPainter(p.Style, r.Profile())
	body := r.lg.NewStyle().
		Width(inner).
		Padding(paddingVertical, paddingHorizontal).
		Render(painter.Paint(p.Body))

	lines := strings.Split(body, "\n")
	rendered := make([]string, 0, len(lines)+2)

	rendered = append(rendered, r.topEdge(p.Title, inner, edge))

	for _, line := range lines {
		if gap := inner - lipgloss.Width(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}

		rendered = append(rendered, edge.Render(r.border.Left)+line+edge.Render(r.border.Right))
	}

	rendered = append(rendered, r.bottomEdge(p.Subtitle, inner, edge))

	return strings.Join(rendered, "\n")
}

// Print renders the panel and writes it followed by a newline.
func (r *Renderer) Print(p Panel) error {
	return r.Write(r.Render(p))
}

// Write writes an already rendered panel followed by a newline.
func (r *Renderer) Write(rendered string) error {
	_, err := io.WriteString(r.out, rendered+"\n")
	if err != nil {
		return ewrap.Wrap(err, "writing panel")
	}

	return nil
}

// topEdge draws ╭─ title ───╮ with the title on the left, in reverse video.
func (r *Renderer) topEdge(title string, inner int, edge lipgloss.Style) string {
	label := fitLabel(title, inner)
	if label == "" {
		return edge.Render(r.border.TopLeft + strings.Repeat(r.border.Top, inner) + r.border.TopRight)
	}

	fill := inner - 3 - lipgloss.Width(label)

	return edge.Render(r.border.TopLeft+r.border.Top) +
		edge.Reverse(true).Render(" "+label+" ") +
		edge.Render(strings.Repeat(r.border.Top, fill)+r.border.TopRight)
}

// bottomEdge draws ╰─── subtitle ─╯ with the subtitle on the right.
func (r *Renderer) bottomEdge(subtitle string, inner int, edge lipgloss.Style) string {
	label := fitLabel(subtitle, inner)
	if label == "" {
		return edge.Render(r.border.BottomLeft + strings.Repeat(r.border.Bottom, inner) + r.border.BottomRight)
	}

	fill := inner - 3 - lipgloss.Width(label)

	return edge.Render(r.border.BottomLeft+strings.Repeat(r.border.Bottom, fill)+" "+label+" ") +
		edge.Render(r.border.Bottom+r.border.BottomRight)
}

// fitLabel strips control sequences from a border label and truncates it so
// that one border rune and a space remain on each side.
func fitLabel(label string, inner int) string {
	label = strings.TrimSpace(ansi.Strip(strings.ReplaceAll(label, "\n", " ")))
	if label == "" {
		return ""
	}

	room := inner - 4
	if room < 1 {
		return ""
	}

	if lipgloss.Width(label) > room {
		label = ansi.Truncate(label, room, ellipsis)
	}

	return label
}
