package config

import (
	"fmt"
	"slices"

	"mojibox/internal/escape"
	"mojibox/internal/grapheme"
	"mojibox/internal/hexcodec"
	"mojibox/internal/segment"
)

// DumpFormats lists the accepted dump.format values.
var DumpFormats = []string{"text", "json", "jsonl"}

var (
	logFormats = []string{"console", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSegment(); err != nil {
		return err
	}
	if _, err := hexcodec.ParseFormat(c.Hex.Format); err != nil {
		return fmt.Errorf("hex.format: %w", err)
	}
	if _, err := escape.ParseFormat(c.Escape.Format); err != nil {
		return fmt.Errorf("escape.format: %w", err)
	}
	if !slices.Contains(DumpFormats, c.Dump.Format) {
		return fmt.Errorf("dump.format must be one of %v, got %q", DumpFormats, c.Dump.Format)
	}
	return c.validateLogging()
}

func (c *Config) validateSegment() error {
	known := false
	for _, info := range grapheme.Engines() {
		if string(info.Name) == c.Segment.Engine {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("segment.engine: %w", &grapheme.UnsupportedEngineError{Name: c.Segment.Engine})
	}
	if _, err := segment.ParseKind(c.Segment.Mode); err != nil {
		return fmt.Errorf("segment.mode: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", logFormats, c.Logging.Format)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, c.Logging.Level)
	}
	return nil
}
