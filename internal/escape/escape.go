// Package escape converts scalar values to Unicode escape tokens and back.
//
// Two token styles exist. The default style writes one \u{H+} token per scalar
// value. The JSON style writes UTF-16 code units as \uHHHH, so values above the
// Basic Multilingual Plane become surrogate pairs. Unescape accepts both styles,
// even mixed in one text, and repairs every malformed construct with U+FFFD
// instead of failing.
package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format selects the token style used by Escape.
type Format uint8

const (
	Default Format = iota
	JSON
)

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "default"
}

// ParseFormat maps a style name to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default", "braced":
		return Default, nil
	case "json", "utf16":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown escape format %q (expected default or json)", value)
	}
}

const (
	surrHighMin = 0xD800
	surrLowMin  = 0xDC00
	surrLowMax  = 0xDFFF
	surrSelf    = 0x10000
	maxRune     = utf8.MaxRune
)

func isHigh(v uint32) bool { return surrHighMin <= v && v < surrLowMin }

func isLow(v uint32) bool { return surrLowMin <= v && v <= surrLowMax }

// encodePair splits v >= 0x10000 into UTF-16 code units.
func encodePair(v rune) (hi, lo uint32) {
	v -= surrSelf
	return surrHighMin + uint32(v>>10), surrLowMin + uint32(v&0x3FF)
}

// decodePair is the inverse of encodePair.
func decodePair(hi, lo uint32) rune {
	return rune((hi-surrHighMin)<<10|(lo-surrLowMin)) + surrSelf
}

// Escape renders runes as escape tokens. Values that are not scalar values are
// escaped as U+FFFD.
func Escape(runes []rune, format Format) string {
	var b strings.Builder
	b.Grow(len(runes) * 8)
	for _, r := range runes {
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		switch {
		case format != JSON:
			b.WriteString(`\u{`)
			b.WriteString(upperHex(uint32(r), 1))
			b.WriteByte('}')
		case r < surrSelf:
			writeUnit(&b, uint32(r))
		default:
			hi, lo := encodePair(r)
			writeUnit(&b, hi)
			writeUnit(&b, lo)
		}
	}
	return b.String()
}

// EscapeString escapes the scalar values of s. Ill-formed UTF-8 in s is
// escaped as U+FFFD.
func EscapeString(s string, format Format) string {
	return Escape([]rune(s), format)
}

func writeUnit(b *strings.Builder, u uint32) {
	b.WriteString(`\u`)
	b.WriteString(upperHex(u, 4))
}

func upperHex(v uint32, width int) string {
	const digits = "0123456789ABCDEF"
	var buf [8]byte
	i := len(buf)
	for v > 0 || len(buf)-i < width {
		i--
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf[i:])
}
