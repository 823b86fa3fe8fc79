package panel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	richsink "github.com/maxludden/loguru-rich-sink"
)

func plainRenderer(buf *bytes.Buffer, width int) *Renderer {
	return NewRenderer(buf, WithWidth(width), WithColorProfile(termenv.Ascii))
}

func renderLines(t *testing.T, r *Renderer, p Panel) []string {
	t.Helper()

	return strings.Split(ansi.Strip(r.Render(p)), "\n")
}

func TestRender_Layout(t *testing.T) {
	r := plainRenderer(&bytes.Buffer{}, 40)

	lines := renderLines(t, r, Panel{
		Title:    "INFO | main.go | Line 3",
		Subtitle: "Run 1 | 12:00:00.000",
		Body:     "hello",
		Style:    richsink.DefaultStyle(),
	})

	require.Len(t, lines, 5)

	for _, line := range lines {
		assert.Equal(t, 40, lipgloss.Width(line), "line %q", line)
	}

	assert.True(t, strings.HasPrefix(lines[0], "╭─ INFO | main.go | Line 3 ─"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.Equal(t, "│"+strings.Repeat(" ", 38)+"│", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "│  hello "), lines[2])
	assert.Equal(t, "│"+strings.Repeat(" ", 38)+"│", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "╰─"))
	assert.True(t, strings.HasSuffix(lines[4], " Run 1 | 12:00:00.000 ─╯"), lines[4])
}

func TestRender_EmptyLabels(t *testing.T) {
	r := plainRenderer(&bytes.Buffer{}, 30)

	lines := renderLines(t, r, Panel{Body: "x", Style: richsink.DefaultStyle()})

	assert.Equal(t, "╭"+strings.Repeat("─", 28)+"╮", lines[0])
	assert.Equal(t, "╰"+strings.Repeat("─", 28)+"╯", lines[len(lines)-1])
}

func TestRender_WrapsLongBody(t *testing.T) {
	r := plainRenderer(&bytes.Buffer{}, 30)
	body := strings.Repeat("word ", 20)

	lines := renderLines(t, r, Panel{Title: "T", Body: body, Style: richsink.DefaultStyle()})

	assert.Greater(t, len(lines), 5)

	for _, line := range lines {
		assert.Equal(t, 30, lipgloss.Width(line), "line %q", line)
	}

	joined := strings.Join(lines, "\n")
	assert.Equal(t, 20, strings.Count(joined, "word"))
}

func TestRender_MultilineBody(t *testing.T) {
	r := plainRenderer(&bytes.Buffer{}, 40)

	lines := renderLines(t, r, Panel{Body: "first\nsecond", Style: richsink.DefaultStyle()})

	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "first")
	assert.Contains(t, lines[3], "second")
}

func TestRender_TruncatesLongTitle(t *testing.T) {
	r := plainRenderer(&bytes.Buffer{}, 24)

	lines := renderLines(t, r, Panel{
		Title: strings.Repeat("T", 50),
		Body:  "x",
		Style: richsink.DefaultStyle(),
	})

	assert.Equal(t, 24, lipgloss.Width(lines[0]))
	assert.Contains(t, lines[0], "…")
}

func TestRender_ColoredBorderAndBody(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, WithWidth(40), WithColorProfile(termenv.TrueColor))

	rendered := r.Render(Panel{
		Title: "NOTICE",
		Body:  "colored body",
		Style: richsink.DefaultStyle(),
	})

	assert.Contains(t, rendered, "38;2;136;136;136", "border uses the border color")
	assert.Contains(t, rendered, "38;2;204;204;204", "body uses the single gradient stop")

	for _, line := range strings.Split(rendered, "\n") {
		assert.Equal(t, 40, lipgloss.Width(line))
	}

	assert.Contains(t, ansi.Strip(rendered), "colored body")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	r := plainRenderer(&buf, 40)

	require.NoError(t, r.Print(Panel{Title: "T", Body: "hi", Style: richsink.DefaultStyle()}))

	assert.True(t, strings.HasSuffix(buf.String(), "╯\n"))
	assert.Equal(t, 5, strings.Count(buf.String(), "\n"))
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestPrint_PropagatesWriteError(t *testing.T) {
	r := NewRenderer(brokenWriter{}, WithWidth(40))

	err := r.Print(Panel{Body: "hi", Style: richsink.DefaultStyle()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}

func TestNewRenderer_ColorResolution(t *testing.T) {
	tests := []struct {
		name     string
		colors   richsink.ColorConfig
		expected termenv.Profile
	}{
		{name: "disabled", colors: richsink.ColorConfig{Enable: false, ForceTTY: true}, expected: termenv.Ascii},
		{name: "forced", colors: richsink.ColorConfig{Enable: true, ForceTTY: true}, expected: termenv.TrueColor},
		{name: "auto on a buffer", colors: richsink.ColorConfig{Enable: true}, expected: termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, WithColorConfig(tt.colors))
			assert.Equal(t, tt.expected, r.Profile())
		})
	}
}

func TestNewRenderer_Width(t *testing.T) {
	assert.Equal(t, richsink.DefaultPanelWidth, NewRenderer(&bytes.Buffer{}).Width())
	assert.Equal(t, 60, NewRenderer(&bytes.Buffer{}, WithWidth(60)).Width())
	assert.Equal(t, MinWidth, NewRenderer(&bytes.Buffer{}, WithWidth(3)).Width())
}
