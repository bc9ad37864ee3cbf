// Package main hosts the mojibox CLI entrypoint and command graph.
//
// Each subcommand reads one buffer (a positional argument, or all of stdin),
// hands it to an internal package and renders the result as text, a table or
// JSON on stdout. Diagnostics are logged to stderr. Configuration resolution
// and logger setup live in commandContext so subcommands only wire flags to
// library calls.
package main
