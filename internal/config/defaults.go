package config

const (
	defaultEngine       = "uniseg"
	defaultMode         = "grapheme"
	defaultHexFormat    = "default"
	defaultEscapeFormat = "default"
	defaultDumpFormat   = "text"
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Segment: Segment{
			Engine: defaultEngine,
			Mode:   defaultMode,
		},
		Hex: Hex{
			Format: defaultHexFormat,
		},
		Escape: Escape{
			Format: defaultEscapeFormat,
		},
		Dump: Dump{
			Format: defaultDumpFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
