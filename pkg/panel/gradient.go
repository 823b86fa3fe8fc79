package panel

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	richsink "github.com/maxludden/loguru-rich-sink"
)

// Painter colors text rune by rune along a multi-stop gradient.
type Painter struct {
	stops      []colorful.Color
	emphasis   richsink.Emphasis
	background string
	profile    termenv.Profile
}

// NewPainter parses the style's gradient once. Malformed stops are replaced
// by the neutral color so painting never fails.
func NewPainter(style richsink.LevelStyle, profile termenv.Profile) *Painter {
	stops := make([]colorful.Color, 0, len(style.Gradient))

	for _, hex := range style.Gradient {
		color, err := colorful.Hex(hex)
		if err != nil {
			color, _ = colorful.Hex(richsink.NeutralColor)
		}

		stops = append(stops, color)
	}

	if len(stops) == 0 {
		neutral, _ := colorful.Hex(richsink.NeutralColor)
		stops = append(stops, neutral)
	}

	background := style.Background
	if _, err := colorful.Hex(background); err != nil {
		background = ""
	}

	return &Painter{
		stops:      stops,
		emphasis:   style.Emphasis,
		background: background,
		profile:    profile,
	}
}

// ColorAt returns the gradient color at position t in [0, 1], blended in
// Lab space between the two surrounding stops.
func (p *Painter) ColorAt(t float64) colorful.Color {
	if len(p.stops) == 1 || t <= 0 {
		return p.stops[0]
	}

	if t >= 1 {
		return p.stops[len(p.stops)-1]
	}

	scaled := t * float64(len(p.stops)-1)
	idx := int(scaled)

	frac := scaled - float64(idx)
	if frac == 0 {
		return p.stops[idx]
	}

	return p.stops[idx].BlendLab(p.stops[idx+1], frac).Clamped()
}

// Paint returns text with every visible rune colored by its position along
// the gradient. Whitespace is left unstyled so wrapping stays intact, except
// plain spaces, which take the background color when the style has one.
func (p *Painter) Paint(text string) string {
	if text == "" || p.profile == termenv.Ascii {
		return text
	}

	runes := []rune(text)
	last := len(runes) - 1

	var b strings.Builder

	b.Grow(len(text) * 20)

	for i, r := range runes {
		if r == ' ' && p.background != "" {
			b.WriteString(p.profile.String(" ").Background(p.profile.Color(p.background)).String())

			continue
		}

		if unicode.IsSpace(r) {
			b.WriteRune(r)

			continue
		}

		var t float64
		if last > 0 {
			t = float64(i) / float64(last)
		}

		b.WriteString(p.style(string(r), p.ColorAt(t).Hex()))
	}

	return b.String()
}

func (p *Painter) style(text, hex string) string {
	styled := p.profile.String(text).Foreground(p.profile.Color(hex))

	if p.emphasis.Bold {
		styled = styled.Bold()
	}

	if p.emphasis.Italic {
		styled = styled.Italic()
	}

	if p.emphasis.Dim {
		styled = styled.Faint()
	}

	if p.background != "" {
		styled = styled.Background(p.profile.Color(p.background))
	}

	return styled.String()
}
