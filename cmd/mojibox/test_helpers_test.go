package main

import (
	"bytes"
	"strings"
	"testing"
)

var mojiboxEnv = []string{
	"MOJIBOX_ENGINE",
	"MOJIBOX_MODE",
	"MOJIBOX_HEX_FORMAT",
	"MOJIBOX_HEX_LOWER",
	"MOJIBOX_ESCAPE_FORMAT",
	"MOJIBOX_DUMP_FORMAT",
	"MOJIBOX_LOG_LEVEL",
	"MOJIBOX_LOG_FORMAT",
}

// isolateCLI points config discovery at empty temporary directories.
func isolateCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("NO_COLOR", "1")
	for _, key := range mojiboxEnv {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func runCLIWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("mojibox %v: %v (stderr %q)", args, err, stderr)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
