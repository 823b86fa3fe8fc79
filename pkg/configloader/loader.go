// Package configloader builds richsink configurations from environment
// variables, YAML documents and configuration files using Viper.
//
// Every source decodes into the same set of keys (see configKeys), which are
// then overlaid onto richsink.DefaultConfig and validated.
package configloader

import (
	"bytes"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	richsink "github.com/maxludden/loguru-rich-sink"
	"github.com/maxludden/loguru-rich-sink/internal/constants"
)

// FromEnv loads a configuration from environment variables only.
// color.force_tty is read from <PREFIX>_COLOR_FORCE_TTY; an empty prefix
// means RICHSINK.
func FromEnv(prefix string) (*richsink.Config, error) {
	v, err := withEnvironment(normalizePrefix(prefix))
	if err != nil {
		return nil, err
	}

	return decode(v)
}

// FromYAML loads a configuration from a YAML document. The environment is
// not consulted.
func FromYAML(data []byte) (*richsink.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	err := v.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read YAML configuration")
	}

	return decode(v)
}

// FromFile loads a configuration file; RICHSINK_* variables take precedence
// over the values it holds.
func FromFile(path string) (*richsink.Config, error) {
	v, err := withEnvironment(constants.EnvPrefix)
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)

	err = v.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read configuration file").
			WithMetadata("path", path)
	}

	return decode(v)
}

// withEnvironment returns a Viper instance reading every config key from
// <prefix>_<KEY>, with dots in nested keys replaced by underscores.
func withEnvironment(prefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()

	for _, key := range configKeys() {
		err := v.BindEnv(key)
		if err != nil {
			return nil, ewrap.Wrap(err, "failed to bind environment key").
				WithMetadata("key", key).
				WithMetadata("prefix", prefix)
		}
	}

	return v, nil
}

func decode(v *viper.Viper) (*richsink.Config, error) {
	// Unmarshal only sees bound environment values once they are set explicitly.
	for _, key := range configKeys() {
		if v.IsSet(key) {
			v.Set(key, v.Get(key))
		}
	}

	var raw rawConfig

	err := v.Unmarshal(&raw)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode configuration")
	}

	return applyRaw(raw)
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return constants.EnvPrefix
	}

	prefix = strings.TrimSuffix(prefix, "_")
	prefix = strings.ReplaceAll(prefix, "-", "_")

	return strings.ToUpper(prefix)
}
