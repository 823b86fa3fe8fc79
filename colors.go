package richsink

import (
	"maps"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/lucasb-eyer/go-colorful"
)

// NeutralColor is the single stop of the fallback gradient.
const NeutralColor = "#cccccc"

// Emphasis holds the text emphasis flags applied to a rendered message.
type Emphasis struct {
	Bold   bool
	Italic bool
	Dim    bool
}

// Gradient is an ordered list of #rrggbb color stops.
type Gradient []string

// Validate parses every stop and reports the first malformed one.
func (g Gradient) Validate() error {
	if len(g) == 0 {
		return ewrap.New("gradient requires at least one color stop")
	}

	for i, stop := range g {
		_, err := colorful.Hex(stop)
		if err != nil {
			return ewrap.Wrap(err, "invalid gradient color stop").
				WithMetadata("index", i).
				WithMetadata("stop", stop)
		}
	}

	return nil
}

// LevelStyle associates a level with its emphasis, gradient and border color.
type LevelStyle struct {
	Emphasis Emphasis
	Gradient Gradient
	// Border is the panel border color. An empty value falls back to the
	// first gradient stop.
	Border string
	// Background fills the message text and the spaces between words.
	// Empty means no background.
	Background string
}

// BorderColor returns the border color, falling back to the first gradient stop.
func (s LevelStyle) BorderColor() string {
	if s.Border != "" {
		return s.Border
	}

	if len(s.Gradient) > 0 {
		return s.Gradient[0]
	}

	return NeutralColor
}

func (s LevelStyle) clone() LevelStyle {
	s.Gradient = slices.Clone(s.Gradient)

	return s
}

// DefaultStyle returns the style used for unknown level names: no emphasis
// and a single neutral color stop.
func DefaultStyle() LevelStyle {
	return LevelStyle{
		Gradient: Gradient{NeutralColor},
		Border:   "#888888",
	}
}

// DefaultLevelStyles returns the built-in style for each of the seven levels.
func DefaultLevelStyles() map[string]LevelStyle {
	return map[string]LevelStyle{
		"TRACE": {
			Emphasis: Emphasis{Dim: true},
			Gradient: Gradient{"#888888", "#aaaaaa", "#cccccc"},
			Border:   "#888888",
		},
		"DEBUG": {
			Gradient: Gradient{"#338888", "#55aaaa", "#77cccc"},
			Border:   "#aaaaaa",
		},
		"INFO": {
			Gradient: Gradient{"#008fff", "#00afff", "#00cfff"},
			Border:   "#00afff",
		},
		"SUCCESS": {
			Emphasis: Emphasis{Bold: true},
			Gradient: Gradient{"#00aa00", "#00ff00", "#afff00"},
			Border:   "#00ff00",
		},
		"WARNING": {
			Emphasis: Emphasis{Bold: true},
			Gradient: Gradient{"#ffaa00", "#ffcc00", "#ffff00"},
			Border:   "#ffaf00",
		},
		"ERROR": {
			Emphasis: Emphasis{Bold: true},
			Gradient: Gradient{"#ff0000", "#ff5500", "#ff7700"},
			Border:   "#ff5000",
		},
		"CRITICAL": {
			Emphasis:   Emphasis{Bold: true},
			Gradient:   Gradient{"#ffffff"},
			Border:     "#ff0000",
			Background: "#ff0000",
		},
	}
}

// StyleTable is an immutable mapping from level name to LevelStyle.
// Lookups are case-insensitive. The zero value resolves every name to
// DefaultStyle.
type StyleTable struct {
	styles map[string]LevelStyle
}

// NewStyleTable builds a table from the given mapping. Keys are upper-cased
// and gradients copied, so later changes to the input do not leak in.
func NewStyleTable(styles map[string]LevelStyle) StyleTable {
	table := StyleTable{styles: make(map[string]LevelStyle, len(styles))}

	for name, style := range styles {
		table.styles[normalizeLevelName(name)] = style.clone()
	}

	return table
}

// DefaultStyleTable returns a table holding DefaultLevelStyles.
func DefaultStyleTable() StyleTable {
	return NewStyleTable(DefaultLevelStyles())
}

// Resolve returns the style for the given level name, or DefaultStyle when
// the name is empty or unknown.
func (t StyleTable) Resolve(name string) LevelStyle {
	style, ok := t.styles[normalizeLevelName(name)]
	if !ok {
		return DefaultStyle()
	}

	return style.clone()
}

// Has reports whether the table holds an entry for the given level name.
func (t StyleTable) Has(name string) bool {
	_, ok := t.styles[normalizeLevelName(name)]

	return ok
}

// Levels returns the level names held by the table in sorted order.
func (t StyleTable) Levels() []string {
	return slices.Sorted(maps.Keys(t.styles))
}

// With returns a copy of the table with the given entry added or replaced.
func (t StyleTable) With(name string, style LevelStyle) StyleTable {
	styles := make(map[string]LevelStyle, len(t.styles)+1)
	maps.Copy(styles, t.styles)
	styles[normalizeLevelName(name)] = style

	return NewStyleTable(styles)
}

// IsZero reports whether the table has no entries.
func (t StyleTable) IsZero() bool {
	return len(t.styles) == 0
}

// Validate checks every gradient and border color in the table.
func (t StyleTable) Validate() error {
	for _, name := range t.Levels() {
		style := t.styles[name]

		err := style.Gradient.Validate()
		if err != nil {
			return ewrap.Wrap(err, "invalid level style").WithMetadata("level", name)
		}

		if style.Border != "" {
			_, err = colorful.Hex(style.Border)
			if err != nil {
				return ewrap.Wrap(err, "invalid border color").
					WithMetadata("level", name).
					WithMetadata("border", style.Border)
			}
		}

		if style.Background != "" {
			_, err = colorful.Hex(style.Background)
			if err != nil {
				return ewrap.Wrap(err, "invalid background color").
					WithMetadata("level", name).
					WithMetadata("background", style.Background)
			}
		}
	}

	return nil
}

func normalizeLevelName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ColorConfig holds color-related configuration for rendered panels.
// Enable enables colored output.
// ForceTTY forces colored output even when the console is not a terminal.
type ColorConfig struct {
	// Enable enables colored output
	Enable bool
	// ForceTTY forces colored output even when the console is not a terminal
	ForceTTY bool
}

// DefaultColorConfig returns the default color configuration: colors enabled
// and only emitted when the console is a terminal.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Enable:   true,
		ForceTTY: false,
	}
}
