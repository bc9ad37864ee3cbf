package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides mirrors the settings that may be supplied through the
// environment. Unset variables leave the file value untouched.
type envOverrides struct {
	Engine       string `env:"ENGINE"`
	Mode         string `env:"MODE"`
	HexFormat    string `env:"HEX_FORMAT"`
	HexLower     *bool  `env:"HEX_LOWER"`
	EscapeFormat string `env:"ESCAPE_FORMAT"`
	DumpFormat   string `env:"DUMP_FORMAT"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogFormat    string `env:"LOG_FORMAT"`
}

const envPrefix = "MOJIBOX_"

// applyEnv overlays MOJIBOX_* variables. A nil environment reads the process
// environment.
func (c *Config) applyEnv(environment map[string]string) error {
	var o envOverrides
	opts := env.Options{Prefix: envPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	setString(&c.Segment.Engine, o.Engine)
	setString(&c.Segment.Mode, o.Mode)
	setString(&c.Hex.Format, o.HexFormat)
	if o.HexLower != nil {
		c.Hex.Lowercase = *o.HexLower
	}
	setString(&c.Escape.Format, o.EscapeFormat)
	setString(&c.Dump.Format, o.DumpFormat)
	setString(&c.Logging.Level, o.LogLevel)
	setString(&c.Logging.Format, o.LogFormat)
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
