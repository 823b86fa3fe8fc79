package configloader

import (
	"reflect"
	"strings"

	"github.com/hyp3rd/ewrap"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/constants"
)

type rawStyle struct {
	Bold       *bool    `mapstructure:"bold"       yaml:"bold"`
	Italic     *bool    `mapstructure:"italic"     yaml:"italic"`
	Dim        *bool    `mapstructure:"dim"        yaml:"dim"`
	Colors     []string `mapstructure:"colors"     yaml:"colors"`
	Border     string   `mapstructure:"border"     yaml:"border"`
	Background *string  `mapstructure:"background" yaml:"background"`
}

type rawConfig struct {
	Level     string `mapstructure:"level"      yaml:"level"`
	FileLevel string `mapstructure:"file_level" yaml:"file_level"`
	LogsDir   string `mapstructure:"logs_dir"   yaml:"logs_dir"`
	TrackRun  *bool  `mapstructure:"track_run"  yaml:"track_run"`
	Run       *int   `mapstructure:"run"        yaml:"run"`
	FileLog   *bool  `mapstructure:"file_log"   yaml:"file_log"`
	Width     *int   `mapstructure:"width"      yaml:"width"`
	Record    *bool  `mapstructure:"record"     yaml:"record"`
	Output    string `mapstructure:"output"     yaml:"output"`
	Color     struct {
		Enable   *bool  `mapstructure:"enable"    yaml:"enable"`
		ForceTTY *bool  `mapstructure:"force_tty" yaml:"force_tty"`
		Mode     string `mapstructure:"mode"      yaml:"mode"`
	} `mapstructure:"color" yaml:"color"`
	Styles map[string]rawStyle `mapstructure:"styles" yaml:"styles"`
}

func applyRaw(raw rawConfig) (*richsink.Config, error) {
	cfg := richsink.DefaultConfig()

	if raw.Level != "" {
		level, err := richsink.ParseLevel(raw.Level)
		if err != nil {
			return nil, err
		}

		cfg.Level = level
	}

	if raw.FileLevel != "" {
		level, err := richsink.ParseLevel(raw.FileLevel)
		if err != nil {
			return nil, err
		}

		cfg.FileLevel = level
	}

	if raw.LogsDir != "" {
		cfg.LogsDir = raw.LogsDir
	}

	if raw.TrackRun != nil {
		cfg.TrackRun = *raw.TrackRun
	}

	if raw.Run != nil {
		run := *raw.Run
		cfg.Run = &run
	}

	if raw.FileLog != nil {
		cfg.EnableFileLog = *raw.FileLog
	}

	if raw.Width != nil {
		cfg.Width = *raw.Width
	}

	if raw.Record != nil {
		cfg.Record = *raw.Record
	}

	err := applyColor(&cfg, raw)
	if err != nil {
		return nil, err
	}

	for name, style := range raw.Styles {
		cfg.Styles = cfg.Styles.With(name, mergeStyle(cfg.Styles, name, style))
	}

	if raw.Output != "" {
		writer, err := richsink.SetOutput(raw.Output)
		if err != nil {
			return nil, err
		}

		cfg.Console = writer
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyColor(cfg *richsink.Config, raw rawConfig) error {
	if raw.Color.Mode != "" {
		mode := constants.ColorMode(strings.ToLower(strings.TrimSpace(raw.Color.Mode)))
		if !mode.IsValid() {
			return ewrap.New("invalid color mode").WithMetadata("mode", raw.Color.Mode)
		}

		cfg.Color = richsink.NewConfigBuilder().WithColorMode(mode).Build().Color
	}

	if raw.Color.Enable != nil {
		cfg.Color.Enable = *raw.Color.Enable
	}

	if raw.Color.ForceTTY != nil {
		cfg.Color.ForceTTY = *raw.Color.ForceTTY
	}

	return nil
}

// mergeStyle overlays the configured fields onto the existing style for name.
func mergeStyle(table richsink.StyleTable, name string, raw rawStyle) richsink.LevelStyle {
	style := table.Resolve(name)

	if raw.Bold != nil {
		style.Emphasis.Bold = *raw.Bold
	}

	if raw.Italic != nil {
		style.Emphasis.Italic = *raw.Italic
	}

	if raw.Dim != nil {
		style.Emphasis.Dim = *raw.Dim
	}

	if len(raw.Colors) > 0 {
		style.Gradient = richsink.Gradient(raw.Colors)
	}

	if raw.Border != "" {
		style.Border = raw.Border
	}

	if raw.Background != nil {
		style.Background = *raw.Background
	}

	return style
}

// configKeys lists the scalar keys of rawConfig, nested structs joined with
// dots. Per-level styles are maps and only come from files.
func configKeys() []string {
	return structKeys(reflect.TypeFor[rawConfig](), "")
}

func structKeys(typ reflect.Type, prefix string) []string {
	keys := make([]string, 0, typ.NumField())

	for i := range typ.NumField() {
		field := typ.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Map:
			continue
		case reflect.Struct:
			keys = append(keys, structKeys(field.Type, prefix+name+".")...)
		default:
			keys = append(keys, prefix+name)
		}
	}

	return keys
}
