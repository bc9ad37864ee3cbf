package decoder

import "iter"

// Span is a half-open [Start, End) byte range into the decoded buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind uint8

const (
	// Scalar marks a well-formed sequence decoded into Outcome.Rune.
	Scalar OutcomeKind = iota + 1
	// Invalid marks a maximal ill-formed subsequence.
	Invalid
)

func (k OutcomeKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome is one step of decoding. Rune is only meaningful for Scalar outcomes.
type Outcome struct {
	Kind OutcomeKind
	Span Span
	Rune rune
}

const (
	maskx = 0x3F
	mask2 = 0x1F
	mask3 = 0x0F
	mask4 = 0x07

	locb = 0x80
	hicb = 0xBF
)

// leadClass describes a leading byte: the full sequence length (0 for bytes
// that can never start a sequence) and the accepted range of the first
// continuation byte. Later continuation bytes always use [locb, hicb].
type leadClass struct {
	size uint8
	lo   byte
	hi   byte
}

var leadTable = buildLeadTable()

func buildLeadTable() [256]leadClass {
	var t [256]leadClass
	for b := 0x00; b <= 0x7F; b++ {
		t[b] = leadClass{size: 1}
	}
	// 0x80-0xC1 (continuation bytes, overlong C0/C1) and 0xF5-0xFF stay zero.
	for b := 0xC2; b <= 0xDF; b++ {
		t[b] = leadClass{size: 2, lo: locb, hi: hicb}
	}
	t[0xE0] = leadClass{size: 3, lo: 0xA0, hi: hicb}
	for b := 0xE1; b <= 0xEC; b++ {
		t[b] = leadClass{size: 3, lo: locb, hi: hicb}
	}
	t[0xED] = leadClass{size: 3, lo: locb, hi: 0x9F}
	t[0xEE] = leadClass{size: 3, lo: locb, hi: hicb}
	t[0xEF] = leadClass{size: 3, lo: locb, hi: hicb}
	t[0xF0] = leadClass{size: 4, lo: 0x90, hi: hicb}
	for b := 0xF1; b <= 0xF3; b++ {
		t[b] = leadClass{size: 4, lo: locb, hi: hicb}
	}
	t[0xF4] = leadClass{size: 4, lo: locb, hi: 0x8F}
	return t
}

// First decodes the outcome at the start of p. Spans are relative to p.
//
// short reports that an invalid outcome was produced only because p ended in
// the middle of an otherwise valid prefix; callers feeding chunks should wait
// for more input before committing such an outcome. First returns a zero
// Outcome when p is empty.
func First(p []byte) (out Outcome, short bool) {
	n := len(p)
	if n == 0 {
		return Outcome{}, false
	}
	c0 := p[0]
	class := leadTable[c0]
	switch class.size {
	case 0:
		return invalid(1), false
	case 1:
		return Outcome{Kind: Scalar, Span: Span{0, 1}, Rune: rune(c0)}, false
	}

	size := int(class.size)
	for i := 1; i < size; i++ {
		if i >= n {
			return invalid(i), true
		}
		lo, hi := byte(locb), byte(hicb)
		if i == 1 {
			lo, hi = class.lo, class.hi
		}
		if c := p[i]; c < lo || hi < c {
			return invalid(i), false
		}
	}

	var r rune
	switch size {
	case 2:
		r = rune(c0&mask2)<<6 | rune(p[1]&maskx)
	case 3:
		r = rune(c0&mask3)<<12 | rune(p[1]&maskx)<<6 | rune(p[2]&maskx)
	default:
		r = rune(c0&mask4)<<18 | rune(p[1]&maskx)<<12 | rune(p[2]&maskx)<<6 | rune(p[3]&maskx)
	}
	return Outcome{Kind: Scalar, Span: Span{0, size}, Rune: r}, false
}

func invalid(n int) Outcome {
	return Outcome{Kind: Invalid, Span: Span{0, n}}
}

// Outcomes returns a lazy sequence of outcomes covering p in order. Each range
// over the returned sequence starts again from the beginning of p.
func Outcomes(p []byte) iter.Seq[Outcome] {
	return func(yield func(Outcome) bool) {
		for pos := 0; pos < len(p); {
			out, _ := First(p[pos:])
			out.Span.Start += pos
			out.Span.End += pos
			if !yield(out) {
				return
			}
			pos = out.Span.End
		}
	}
}

// DecodeAll collects every outcome of p.
func DecodeAll(p []byte) []Outcome {
	outs := make([]Outcome, 0, len(p))
	for out := range Outcomes(p) {
		outs = append(outs, out)
	}
	return outs
}

// Validate returns an *InvalidUTF8Error for the first invalid span in p.
func Validate(p []byte) error {
	for out := range Outcomes(p) {
		if out.Kind == Invalid {
			return &InvalidUTF8Error{Span: out.Span}
		}
	}
	return nil
}

// Scalars decodes p into scalar values and the span each one came from.
// Ill-formed input fails with *InvalidUTF8Error and no partial result.
func Scalars(p []byte) ([]rune, []Span, error) {
	runes := make([]rune, 0, len(p))
	spans := make([]Span, 0, len(p))
	for out := range Outcomes(p) {
		if out.Kind == Invalid {
			return nil, nil, &InvalidUTF8Error{Span: out.Span}
		}
		runes = append(runes, out.Rune)
		spans = append(spans, out.Span)
	}
	return runes, spans, nil
}
