package xgxsuppress

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ConfigFromEnv and EnvProbe.
const (
	EnvDisableEmulation = "XGX_TWR_DISABLE_MIMIC"
	EnvStrategy         = "XGX_TWR_STRATEGY"
	EnvCapabilityLevel  = "XGX_CAPABILITY_LEVEL"
)

// Config holds the settings read once when a Runtime is built. Changing a
// Config after Init has no effect on the installed runtime.
type Config struct {
	// DisableEmulation forces the Disabled strategy regardless of the
	// detected capability level.
	DisableEmulation bool `yaml:"disable_emulation"`

	// Strategy, when non-empty, overrides detection ("native", "emulated",
	// "disabled"). DisableEmulation still wins.
	Strategy string `yaml:"strategy"`

	// CapabilityLevel, when set, replaces the probe with a fixed level.
	CapabilityLevel *int `yaml:"capability_level"`
}

// ConfigFromEnv builds a Config from the process environment. Unparsable
// boolean values are reported rather than silently treated as false.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if v, ok := os.LookupEnv(EnvDisableEmulation); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, Wrap(err, "parse "+EnvDisableEmulation).With("value", v)
		}
		cfg.DisableEmulation = b
	}
	cfg.Strategy = strings.TrimSpace(os.Getenv(EnvStrategy))
	return cfg, nil
}

// ParseConfig decodes a YAML document into a Config.
//
//	disable_emulation: true
//	strategy: emulated
//	capability_level: 16
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, Wrap(err, "decode suppression config")
	}
	if cfg.Strategy != "" {
		if _, err := ParseStrategy(cfg.Strategy); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
