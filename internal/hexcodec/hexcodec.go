// Package hexcodec converts byte buffers to and from textual hexadecimal.
//
// Three layouts are supported: continuous ("E381"), spaced ("E3 81") and
// escaped ("\xE3\x81"). Decode detects the layout from the text itself and
// accepts either digit case.
package hexcodec

import (
	"fmt"
	"strings"
)

// Format selects the textual layout.
type Format uint8

const (
	Continuous Format = iota + 1
	Spaced
	Escaped
)

func (f Format) String() string {
	switch f {
	case Continuous:
		return "default"
	case Spaced:
		return "spaced"
	case Escaped:
		return "escaped"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat maps a layout name to a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default", "continuous":
		return Continuous, nil
	case "spaced", "space":
		return Spaced, nil
	case "escaped", "escape":
		return Escaped, nil
	default:
		return 0, fmt.Errorf("unknown hex format %q (expected default, spaced or escaped)", value)
	}
}

// Case selects the digit case used by Encode.
type Case uint8

const (
	Upper Case = iota
	Lower
)

const (
	upperDigits = "0123456789ABCDEF"
	lowerDigits = "0123456789abcdef"
)

// Encode renders b in the requested layout.
func Encode(b []byte, format Format, c Case) string {
	digits := upperDigits
	if c == Lower {
		digits = lowerDigits
	}
	var sb strings.Builder
	switch format {
	case Spaced:
		sb.Grow(len(b) * 3)
	case Escaped:
		sb.Grow(len(b) * 4)
	default:
		sb.Grow(len(b) * 2)
	}
	for i, v := range b {
		switch format {
		case Spaced:
			if i > 0 {
				sb.WriteByte(' ')
			}
		case Escaped:
			sb.WriteString(`\x`)
		}
		sb.WriteByte(digits[v>>4])
		sb.WriteByte(digits[v&0x0F])
	}
	return sb.String()
}

// InvalidHexError describes why Decode rejected its input. Position is a byte
// offset into the text passed to Decode.
type InvalidHexError struct {
	Position int
	Reason   string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex at position %d: %s", e.Position, e.Reason)
}

// Detect reports the layout Decode would use for text.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.Contains(trimmed, `\x`) || strings.Contains(trimmed, `\X`):
		return Escaped
	case strings.IndexFunc(trimmed, isSpace) >= 0:
		return Spaced
	default:
		return Continuous
	}
}

// Decode parses text in any supported layout. Surrounding whitespace is
// ignored. On error no bytes are returned.
func Decode(text string) ([]byte, error) {
	start := len(text) - len(strings.TrimLeftFunc(text, isSpace))
	body := strings.TrimRightFunc(text[start:], isSpace)

	var (
		out []byte
		err error
	)
	switch Detect(body) {
	case Escaped:
		out, err = decodeEscaped(body, start)
	case Spaced:
		out, err = decodeSpaced(body, start)
	default:
		out, err = decodeDigits(body, start)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeDigits(s string, offset int) ([]byte, error) {
	if len(s)%2 != 0 {
		for i := 0; i < len(s); i++ {
			if _, ok := fromHexChar(s[i]); !ok {
				return nil, badChar(s, i, offset)
			}
		}
		return nil, &InvalidHexError{Position: offset + len(s), Reason: fmt.Sprintf("odd number of hex digits (%d)", len(s))}
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := fromHexChar(s[i])
		if !ok {
			return nil, badChar(s, i, offset)
		}
		lo, ok := fromHexChar(s[i+1])
		if !ok {
			return nil, badChar(s, i+1, offset)
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

func decodeSpaced(s string, offset int) ([]byte, error) {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); {
		if isSpace(rune(s[i])) {
			i++
			continue
		}
		j := i
		for j < len(s) && !isSpace(rune(s[j])) {
			j++
		}
		group, err := decodeDigits(s[i:j], offset+i)
		if err != nil {
			return nil, err
		}
		out = append(out, group...)
		i = j
	}
	return out, nil
}

func decodeEscaped(s string, offset int) ([]byte, error) {
	out := make([]byte, 0, len(s)/4)
	for i := 0; i < len(s); {
		c := s[i]
		if isSpace(rune(c)) {
			i++
			continue
		}
		if c != '\\' || i+1 >= len(s) || (s[i+1] != 'x' && s[i+1] != 'X') {
			return nil, badChar(s, i, offset)
		}
		digits := 0
		for i+2+digits < len(s) {
			if _, ok := fromHexChar(s[i+2+digits]); !ok {
				break
			}
			digits++
		}
		if digits != 2 {
			return nil, &InvalidHexError{
				Position: offset + i,
				Reason:   fmt.Sprintf(`escape \x must be followed by exactly two hex digits, found %d`, digits),
			}
		}
		hi, _ := fromHexChar(s[i+2])
		lo, _ := fromHexChar(s[i+3])
		out = append(out, hi<<4|lo)
		i += 4
	}
	return out, nil
}

func badChar(s string, i, offset int) error {
	return &InvalidHexError{Position: offset + i, Reason: fmt.Sprintf("unexpected character %q", s[i])}
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
