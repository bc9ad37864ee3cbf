package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"mojibox/internal/decoder"
)

// Kind classifies a replaced construct. Valid output units carry KindNone.
type Kind uint8

const (
	KindNone Kind = iota
	LoneHighSurrogate
	LoneLowSurrogate
	ReversedSurrogatePair
	OutOfRangeCodepoint
	MalformedToken
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case LoneHighSurrogate:
		return "lone high surrogate"
	case LoneLowSurrogate:
		return "lone low surrogate"
	case ReversedSurrogatePair:
		return "reversed surrogate pair"
	case OutOfRangeCodepoint:
		return "out of range codepoint"
	case MalformedToken:
		return "malformed token"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Decoded is one output unit of Unescape. Offset and Width locate the text
// that produced it; a surrogate pair covers both of its tokens.
type Decoded struct {
	Rune   rune
	Kind   Kind
	Offset int
	Width  int
}

// Replaced reports whether the unit is a U+FFFD substituted for bad input.
func (d Decoded) Replaced() bool { return d.Kind != KindNone }

// InvalidEscapeTokenError describes one replaced construct. Unescape never
// returns it; Problems collects them for diagnostics.
type InvalidEscapeTokenError struct {
	Kind   Kind
	Offset int
	Token  string
}

func (e InvalidEscapeTokenError) Error() string {
	return fmt.Sprintf("%s %q at offset %d", e.Kind, e.Token, e.Offset)
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokLiteral
	tokBraced
	tokUnit
	tokMalformed
)

type token struct {
	kind     tokenKind
	value    uint32
	overflow bool
	start    int
	end      int
}

// maxBracedDigits bounds the significant digits parsed into a value; longer
// runs are out of range whatever their value.
const maxBracedDigits = 8

func scan(text string, i int) token {
	if i >= len(text) {
		return token{kind: tokEOF, start: i, end: i}
	}
	if text[i] != '\\' || i+1 >= len(text) || text[i+1] != 'u' {
		return token{kind: tokLiteral, start: i, end: i + 1}
	}
	j := i + 2
	if j < len(text) && text[j] == '{' {
		j++
		digitsStart := j
		var v uint32
		significant := 0
		for j < len(text) && isHexDigit(text[j]) {
			d := hexValue(text[j])
			if significant > 0 || d != 0 {
				significant++
			}
			if significant <= maxBracedDigits {
				v = v<<4 | d
			}
			j++
		}
		if j == digitsStart || j >= len(text) || text[j] != '}' {
			return token{kind: tokMalformed, start: i, end: closeBrace(text, j)}
		}
		return token{kind: tokBraced, value: v, overflow: significant > maxBracedDigits, start: i, end: j + 1}
	}
	var v uint32
	for n := 0; n < 4; n++ {
		if j >= len(text) || !isHexDigit(text[j]) {
			return token{kind: tokMalformed, start: i, end: j}
		}
		v = v<<4 | hexValue(text[j])
		j++
	}
	return token{kind: tokUnit, value: v, start: i, end: j}
}

// Unescape decodes every escape token in text. Characters outside tokens pass
// through unchanged. Each malformed construct becomes one U+FFFD and decoding
// continues; a reversed surrogate pair yields one U+FFFD per code unit.
func Unescape(text string) []Decoded {
	out := make([]Decoded, 0, len(text))
	emit := func(r rune, kind Kind, start, end int) {
		out = append(out, Decoded{Rune: r, Kind: kind, Offset: start, Width: end - start})
	}
	replace := func(kind Kind, tok token) {
		emit(utf8.RuneError, kind, tok.start, tok.end)
	}

	for i := 0; i < len(text); {
		tok := scan(text, i)
		switch tok.kind {
		case tokLiteral:
			o, _ := decoder.First([]byte(text[i:min(i+utf8.UTFMax, len(text))]))
			end := i + o.Span.End
			if o.Kind == decoder.Scalar {
				emit(o.Rune, KindNone, i, end)
			} else {
				emit(utf8.RuneError, MalformedToken, i, end)
			}
			i = end
			continue
		case tokMalformed:
			replace(MalformedToken, tok)
		case tokBraced:
			switch v := tok.value; {
			case tok.overflow || v > maxRune:
				replace(OutOfRangeCodepoint, tok)
			case isHigh(v):
				replace(LoneHighSurrogate, tok)
			case isLow(v):
				replace(LoneLowSurrogate, tok)
			default:
				emit(rune(v), KindNone, tok.start, tok.end)
			}
		case tokUnit:
			next := scan(text, tok.end)
			switch {
			case isHigh(tok.value):
				if next.kind == tokUnit && isLow(next.value) {
					emit(decodePair(tok.value, next.value), KindNone, tok.start, next.end)
					i = next.end
					continue
				}
				replace(LoneHighSurrogate, tok)
			case isLow(tok.value):
				if next.kind == tokUnit && isHigh(next.value) {
					after := scan(text, next.end)
					if after.kind != tokUnit || !isLow(after.value) {
						replace(ReversedSurrogatePair, tok)
						replace(ReversedSurrogatePair, next)
						i = next.end
						continue
					}
				}
				replace(LoneLowSurrogate, tok)
			default:
				emit(rune(tok.value), KindNone, tok.start, tok.end)
			}
		}
		i = tok.end
	}
	return out
}

// UnescapeString decodes text and returns the resulting string.
func UnescapeString(text string) string {
	return String(Unescape(text))
}

// Runes extracts the rune of every unit.
func Runes(units []Decoded) []rune {
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = u.Rune
	}
	return runes
}

// String concatenates the units.
func String(units []Decoded) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteRune(u.Rune)
	}
	return b.String()
}

// Problems describes every replaced unit of units, which must come from
// Unescape(text).
func Problems(text string, units []Decoded) []InvalidEscapeTokenError {
	var problems []InvalidEscapeTokenError
	for _, u := range units {
		if !u.Replaced() {
			continue
		}
		problems = append(problems, InvalidEscapeTokenError{
			Kind:   u.Kind,
			Offset: u.Offset,
			Token:  text[u.Offset : u.Offset+u.Width],
		})
	}
	return problems
}

// closeBrace returns the offset just past the '}' that ends a malformed braced
// token starting its scan at j. The search stops at the next backslash so a
// following escape is never swallowed; without a closing brace the token ends
// at j.
func closeBrace(text string, j int) int {
	for k := j; k < len(text); k++ {
		switch text[k] {
		case '}':
			return k + 1
		case '\\':
			return j
		}
	}
	return j
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexValue(c byte) uint32 {
	switch {
	case c <= '9':
		return uint32(c - '0')
	case c >= 'a':
		return uint32(c-'a') + 10
	default:
		return uint32(c-'A') + 10
	}
}
