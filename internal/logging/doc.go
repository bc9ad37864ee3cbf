// Package logging assembles structured slog loggers for the mojibox CLI.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and tags every invocation with a correlation ID carried on the context.
// Diagnostics always go to stderr by default so stdout stays reserved for
// command output. A no-op logger is provided for tests and library callers.
package logging
