package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"mojibox/internal/codepoint"
	"mojibox/internal/escape"
	"mojibox/internal/hexcodec"
)

const fffd = "\uFFFD"

func TestScrub(t *testing.T) {
	isolateCLI(t)
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"hex truncated", "", []string{"scrub", "--input-format", "hex", "F0 9F 8D"}, fffd + "\n"},
		{"hex sushi then FF", "", []string{"scrub", "-i", "hex", `\xF0\x9F\x8D\xA3\xFF`}, "🍣" + fffd + "\n"},
		{"hex overlong", "", []string{"scrub", "-i", "hex", "C080"}, fffd + fffd + "\n"},
		{"binary stdin", "a\xC0\x80b\n", []string{"scrub"}, "a" + fffd + fffd + "b\n"},
		{"well formed", "", []string{"scrub", "あ🍣"}, "あ🍣\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stderr, err := runCLIWithInput(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("scrub: %v (stderr %q)", err, stderr)
			}
			if out != tt.want {
				t.Fatalf("scrub = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestScrubStdinSplitAcrossReads(t *testing.T) {
	isolateCLI(t)
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(iotest.OneByteReader(bytes.NewReader([]byte("a🍣\xF0\x9F\x8D"))))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--log-level", "debug", "scrub"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scrub: %v (stderr %q)", err, stderr.String())
	}
	if got := stdout.String(); got != "a🍣"+fffd+"\n" {
		t.Fatalf("scrub = %q", got)
	}
	requireContains(t, stderr.String(), "span=5-8")
	requireContains(t, stderr.String(), "replacements=1")
}

func TestScrubErrors(t *testing.T) {
	isolateCLI(t)
	_, _, err := runCLI(t, "scrub", "-i", "hex", "F0G")
	var hexErr *hexcodec.InvalidHexError
	if !errors.As(err, &hexErr) || hexErr.Position != 2 {
		t.Fatalf("expected InvalidHexError at 2, got %v", err)
	}
	if _, _, err := runCLI(t, "scrub", "-i", "base64", "AA"); err == nil {
		t.Fatal("expected error for unknown input format")
	}
}

func TestBin2HexAndBack(t *testing.T) {
	isolateCLI(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"bin2hex", "あ"}, "E38182\n"},
		{[]string{"bin2hex", "--lower", "あ"}, "e38182\n"},
		{[]string{"bin2hex", "--format", "spaced", "あ"}, "E3 81 82\n"},
		{[]string{"bin2hex", "-f", "escaped", "--lower", "あ"}, `\xe3\x81\x82` + "\n"},
		{[]string{"hex2bin", "E3 81 82"}, "あ\n"},
		{[]string{"hex2bin", `\xe3\x81\x82`}, "あ\n"},
		{[]string{"hex2bin", "  e38182  "}, "あ\n"},
	}
	for _, tt := range tests {
		if got := mustRun(t, tt.args...); got != tt.want {
			t.Fatalf("mojibox %v = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestHex2BinErrors(t *testing.T) {
	isolateCLI(t)
	out, _, err := runCLI(t, "hex2bin", "E38")
	var hexErr *hexcodec.InvalidHexError
	if !errors.As(err, &hexErr) || hexErr.Position != 3 {
		t.Fatalf("expected InvalidHexError at 3, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no partial output, got %q", out)
	}
}

func TestEscapeCommand(t *testing.T) {
	isolateCLI(t)
	if got := mustRun(t, "escape", "--format", "json", "🍣🍺"); got != `\uD83C\uDF63\uD83C\uDF7A`+"\n" {
		t.Fatalf("escape json = %q", got)
	}
	if got := mustRun(t, "escape", "🍣A"); got != `\u{1F363}\u{41}`+"\n" {
		t.Fatalf("escape default = %q", got)
	}

	out := mustRun(t, "escape", "--json", "-f", "json", "A")
	var view escapeView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if view.Format != "json" || view.Escaped != `\u0041` {
		t.Fatalf("unexpected view %+v", view)
	}

	out, _, err := runCLIWithInput(t, "a\xFF", "escape")
	if err != nil {
		t.Fatalf("escape with ill-formed input: %v", err)
	}
	if out != `\u{61}\u{FFFD}`+"\n" {
		t.Fatalf("escape ill-formed = %q", out)
	}
}

func TestUnescapeCommand(t *testing.T) {
	isolateCLI(t)
	if got := mustRun(t, "unescape", `\uD83C\uDF63\u{1F37A}`); got != "🍣🍺\n" {
		t.Fatalf("unescape = %q", got)
	}
	if got := mustRun(t, "unescape", `\uDF63\uD83C`); got != fffd+fffd+"\n" {
		t.Fatalf("unescape reversed = %q", got)
	}

	out := mustRun(t, "unescape", "--json", `x\u{110000}\uD83C`)
	var view unescapeView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if view.Text != "x"+fffd+fffd {
		t.Fatalf("unexpected text %q", view.Text)
	}
	if len(view.Replacements) != 2 {
		t.Fatalf("expected 2 replacements, got %+v", view.Replacements)
	}
	if r := view.Replacements[0]; r.Kind != "out of range codepoint" || r.Offset != 1 || r.Token != `\u{110000}` {
		t.Fatalf("unexpected replacement %+v", r)
	}
	if r := view.Replacements[1]; r.Kind != "lone high surrogate" || r.Offset != 11 {
		t.Fatalf("unexpected replacement %+v", r)
	}

	_, _, err := runCLI(t, "unescape", "--strict", `ok\uDF63`)
	var tokenErr escape.InvalidEscapeTokenError
	if !errors.As(err, &tokenErr) || tokenErr.Kind != escape.LoneLowSurrogate || tokenErr.Offset != 2 {
		t.Fatalf("expected lone low surrogate error, got %v", err)
	}
}

func TestUnescapeMalformedBraceIsOneReplacement(t *testing.T) {
	isolateCLI(t)
	out := mustRun(t, "unescape", "--json", `a\u{zz}b`)
	var view unescapeView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if view.Text != "a"+fffd+"b" {
		t.Fatalf("unexpected text %q", view.Text)
	}
	if len(view.Replacements) != 1 || view.Replacements[0].Token != `\u{zz}` || view.Replacements[0].Kind != "malformed token" {
		t.Fatalf("unexpected replacements %+v", view.Replacements)
	}
}

func TestOrdChr(t *testing.T) {
	isolateCLI(t)
	if got := mustRun(t, "ord", "🍣🍺"); got != "0x1F363 0x1F37A\n" {
		t.Fatalf("ord = %q", got)
	}
	if got := mustRun(t, "ord", "--lower", "--no-0x", "🍣A"); got != "1f363 0041\n" {
		t.Fatalf("ord --lower --no-0x = %q", got)
	}
	if got := mustRun(t, "chr", "0x1F363", "U+1F37A", "41"); got != "🍣🍺A\n" {
		t.Fatalf("chr = %q", got)
	}
	if got := mustRun(t, "chr", "0x1F363 0x1F37A"); got != "🍣🍺\n" {
		t.Fatalf("chr with one quoted list = %q", got)
	}

	out := mustRun(t, "ord", "--json", "aあ")
	var views []ordView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(views) != 2 || views[1].Char != "あ" || views[1].CodePoint != "0x3042" {
		t.Fatalf("unexpected views %+v", views)
	}

	_, _, err := runCLI(t, "chr", "D800")
	var cpErr *codepoint.InvalidCodepointError
	if !errors.As(err, &cpErr) {
		t.Fatalf("expected InvalidCodepointError, got %v", err)
	}
	if _, _, err := runCLI(t, "chr"); err == nil {
		t.Fatal("expected error without arguments")
	}
}

func TestEscapeRoundTripThroughCLI(t *testing.T) {
	isolateCLI(t)
	input := "mojibake 文字化け 👨\u200D💻"
	for _, format := range []string{"default", "json"} {
		escaped := strings.TrimSuffix(mustRun(t, "escape", "-f", format, input), "\n")
		if got := mustRun(t, "unescape", escaped); got != input+"\n" {
			t.Fatalf("%s round trip = %q", format, got)
		}
	}
}
