package config

import "strings"

func (c *Config) normalize() {
	c.Segment.Engine = canonical(c.Segment.Engine, defaultEngine)
	c.Segment.Mode = canonical(c.Segment.Mode, defaultMode)
	c.Hex.Format = canonical(c.Hex.Format, defaultHexFormat)
	c.Escape.Format = canonical(c.Escape.Format, defaultEscapeFormat)
	c.Dump.Format = canonical(c.Dump.Format, defaultDumpFormat)
	c.normalizeLogging()
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = canonical(c.Logging.Format, defaultLogFormat)
	c.Logging.Level = canonical(c.Logging.Level, defaultLogLevel)
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
}

func canonical(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
