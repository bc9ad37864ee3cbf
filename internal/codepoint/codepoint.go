// Package codepoint converts between characters and hexadecimal code point
// tokens.
package codepoint

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Options controls how Ord formats tokens.
type Options struct {
	Lower    bool
	NoPrefix bool
}

// Ord returns one token per rune of s, such as 0x1F363. Tokens have at least
// four digits. Ill-formed UTF-8 in s yields U+FFFD tokens.
func Ord(s string, opts Options) []string {
	verb := "%04X"
	if opts.Lower {
		verb = "%04x"
	}
	prefix := "0x"
	if opts.NoPrefix {
		prefix = ""
	}
	tokens := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		tokens = append(tokens, prefix+fmt.Sprintf(verb, r))
	}
	return tokens
}

// InvalidCodepointError reports a token Chr could not convert.
type InvalidCodepointError struct {
	Token  string
	Reason string
}

func (e *InvalidCodepointError) Error() string {
	return fmt.Sprintf("invalid codepoint %q: %s", e.Token, e.Reason)
}

// Parse converts one token to a scalar value. The token is hexadecimal with an
// optional 0x or U+ prefix.
func Parse(token string) (rune, error) {
	digits := strings.TrimSpace(token)
	for _, prefix := range []string{"0x", "0X", "U+", "u+"} {
		if rest, ok := strings.CutPrefix(digits, prefix); ok {
			digits = rest
			break
		}
	}
	if digits == "" {
		return 0, &InvalidCodepointError{Token: token, Reason: "no hex digits"}
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, &InvalidCodepointError{Token: token, Reason: "beyond U+10FFFF"}
		}
		return 0, &InvalidCodepointError{Token: token, Reason: "not a hexadecimal number"}
	}
	r := rune(v)
	switch {
	case v > utf8.MaxRune:
		return 0, &InvalidCodepointError{Token: token, Reason: "beyond U+10FFFF"}
	case 0xD800 <= r && r <= 0xDFFF:
		return 0, &InvalidCodepointError{Token: token, Reason: "surrogate code point"}
	}
	return r, nil
}

// Chr converts tokens to the string of their scalar values. The first invalid
// token fails the whole conversion.
func Chr(tokens []string) (string, error) {
	var b strings.Builder
	for _, token := range tokens {
		r, err := Parse(token)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
