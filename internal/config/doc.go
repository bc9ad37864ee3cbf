// Package config loads, normalizes, and validates mojibox configuration data.
//
// Settings come from three layers applied in order: repository defaults, a
// TOML file, and MOJIBOX_* environment variables. Command-line flags override
// the result in the CLI. Always obtain settings through Load so downstream
// code receives canonical names and clear validation errors.
package config
