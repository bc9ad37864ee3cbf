// Package segment partitions a buffer into bytes, code points or grapheme
// clusters and exposes the same iterate/length/take/drop operations for each
// partitioning.
//
// Code point and grapheme modes require well-formed UTF-8 and fail with a
// *decoder.InvalidUTF8Error before producing any unit; repairing input is the
// job of package scrub. Unit texts always concatenate back to the source.
package segment

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"mojibox/internal/decoder"
	"mojibox/internal/grapheme"
)

// Kind selects the unit granularity.
type Kind uint8

const (
	Byte Kind = iota + 1
	Codepoint
	Grapheme
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "byte"
	case Codepoint:
		return "codepoint"
	case Grapheme:
		return "grapheme"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a mode name to a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "byte", "bytes":
		return Byte, nil
	case "codepoint", "codepoints", "char":
		return Codepoint, nil
	case "grapheme", "graphemes", "":
		return Grapheme, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (expected byte, codepoint or grapheme)", value)
	}
}

// ErrNegativeCount is returned by Take and Drop for n < 0.
var ErrNegativeCount = errors.New("unit count must not be negative")

// Unit is one element of a partitioning. Runes is nil for byte units, holds a
// single value for code point units and the whole cluster for grapheme units.
type Unit struct {
	Kind  Kind
	Span  decoder.Span
	Text  string
	Runes []rune
}

// Display renders the unit for line-oriented output. Byte units are shown as
// the Latin-1 character with the same value.
func (u Unit) Display() string {
	if u.Kind == Byte && len(u.Text) == 1 {
		return string(charmap.ISO8859_1.DecodeByte(u.Text[0]))
	}
	return u.Text
}

// Join concatenates the source text of units.
func Join(units []Unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteString(u.Text)
	}
	return b.String()
}

// Segmenter partitions one borrowed buffer. The buffer must not be modified
// while the segmenter is in use.
type Segmenter struct {
	src      []byte
	kind     Kind
	provider grapheme.Provider
}

// New resolves engine and returns a segmenter for src. The engine is resolved
// for every kind so a misconfigured engine is reported even in byte mode.
func New(src []byte, kind Kind, engine string) (*Segmenter, error) {
	switch kind {
	case Byte, Codepoint, Grapheme:
	default:
		return nil, fmt.Errorf("unknown unit kind %s", kind)
	}
	provider, err := grapheme.Lookup(engine)
	if err != nil {
		return nil, err
	}
	return &Segmenter{src: src, kind: kind, provider: provider}, nil
}

// Kind reports the granularity of the segmenter.
func (s *Segmenter) Kind() Kind { return s.kind }

// Units validates the buffer and returns a lazy, restartable sequence of its
// units in source order.
func (s *Segmenter) Units() (iter.Seq[Unit], error) {
	switch s.kind {
	case Byte:
		return s.byteUnits(), nil
	case Codepoint:
		if err := decoder.Validate(s.src); err != nil {
			return nil, err
		}
		return s.codepointUnits(), nil
	default:
		runes, spans, err := decoder.Scalars(s.src)
		if err != nil {
			return nil, err
		}
		ends := s.provider.Boundaries(runes)
		if err := checkBoundaries(ends, len(runes)); err != nil {
			return nil, err
		}
		return s.graphemeUnits(runes, spans, ends), nil
	}
}

func (s *Segmenter) byteUnits() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for i := range s.src {
			u := Unit{Kind: Byte, Span: decoder.Span{Start: i, End: i + 1}, Text: string(s.src[i : i+1])}
			if !yield(u) {
				return
			}
		}
	}
}

func (s *Segmenter) codepointUnits() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for o := range decoder.Outcomes(s.src) {
			u := Unit{
				Kind:  Codepoint,
				Span:  o.Span,
				Text:  string(s.src[o.Span.Start:o.Span.End]),
				Runes: []rune{o.Rune},
			}
			if !yield(u) {
				return
			}
		}
	}
}

func (s *Segmenter) graphemeUnits(runes []rune, spans []decoder.Span, ends []int) iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		start := 0
		for _, end := range ends {
			span := decoder.Span{Start: spans[start].Start, End: spans[end-1].End}
			cluster := make([]rune, end-start)
			copy(cluster, runes[start:end])
			u := Unit{
				Kind:  Grapheme,
				Span:  span,
				Text:  string(s.src[span.Start:span.End]),
				Runes: cluster,
			}
			if !yield(u) {
				return
			}
			start = end
		}
	}
}

func checkBoundaries(ends []int, count int) error {
	prev := 0
	for i, end := range ends {
		if end <= prev || end > count {
			return fmt.Errorf("grapheme engine returned invalid boundary %d at index %d", end, i)
		}
		prev = end
	}
	if prev != count {
		return fmt.Errorf("grapheme engine boundaries end at %d, want %d", prev, count)
	}
	return nil
}

// Len counts units. It walks the buffer on every call.
func (s *Segmenter) Len() (int, error) {
	switch s.kind {
	case Byte:
		return len(s.src), nil
	case Codepoint:
		n := 0
		for o := range decoder.Outcomes(s.src) {
			if o.Kind == decoder.Invalid {
				return 0, &decoder.InvalidUTF8Error{Span: o.Span}
			}
			n++
		}
		return n, nil
	default:
		runes, _, err := decoder.Scalars(s.src)
		if err != nil {
			return 0, err
		}
		ends := s.provider.Boundaries(runes)
		if err := checkBoundaries(ends, len(runes)); err != nil {
			return 0, err
		}
		return len(ends), nil
	}
}

// Take returns the first min(n, length) units.
func (s *Segmenter) Take(n int) ([]Unit, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	units, err := s.Units()
	if err != nil {
		return nil, err
	}
	out := make([]Unit, 0)
	if n == 0 {
		return out, nil
	}
	for u := range units {
		out = append(out, u)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Drop returns the units left after skipping min(n, length) of them.
func (s *Segmenter) Drop(n int) ([]Unit, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	units, err := s.Units()
	if err != nil {
		return nil, err
	}
	out := make([]Unit, 0)
	skipped := 0
	for u := range units {
		if skipped < n {
			skipped++
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// Iterate returns the units of buf as a lazy sequence.
func Iterate(buf []byte, kind Kind, engine string) (iter.Seq[Unit], error) {
	s, err := New(buf, kind, engine)
	if err != nil {
		return nil, err
	}
	return s.Units()
}

// Length counts the units of buf.
func Length(buf []byte, kind Kind, engine string) (int, error) {
	s, err := New(buf, kind, engine)
	if err != nil {
		return 0, err
	}
	return s.Len()
}

// Take returns the first n units of buf.
func Take(buf []byte, kind Kind, engine string, n int) ([]Unit, error) {
	s, err := New(buf, kind, engine)
	if err != nil {
		return nil, err
	}
	return s.Take(n)
}

// Drop returns the units of buf after the first n.
func Drop(buf []byte, kind Kind, engine string, n int) ([]Unit, error) {
	s, err := New(buf, kind, engine)
	if err != nil {
		return nil, err
	}
	return s.Drop(n)
}
