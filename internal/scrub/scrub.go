// Package scrub repairs ill-formed UTF-8.
//
// Every invalid span reported by the decoder is replaced by exactly one U+FFFD,
// whatever its length. Well-formed input comes back unchanged, so scrubbing is
// idempotent.
package scrub

import (
	"unicode/utf8"

	"golang.org/x/text/transform"

	"mojibox/internal/decoder"
)

var replacement = []byte(string(utf8.RuneError))

// Bytes returns a well-formed copy of p.
func Bytes(p []byte) []byte {
	out, _ := Report(p)
	return out
}

// String returns a well-formed string built from p.
func String(p []byte) string {
	return string(Bytes(p))
}

// Report scrubs p and also returns the spans that were replaced.
func Report(p []byte) ([]byte, []decoder.Span) {
	out := make([]byte, 0, len(p))
	var replaced []decoder.Span
	for o := range decoder.Outcomes(p) {
		switch o.Kind {
		case decoder.Scalar:
			out = append(out, p[o.Span.Start:o.Span.End]...)
		case decoder.Invalid:
			out = append(out, replacement...)
			replaced = append(replaced, o.Span)
		}
	}
	return out, replaced
}

// Transformer scrubs UTF-8 as a transform.Transformer. It holds no state
// between calls, so a zero value is ready to use.
type Transformer struct {
	transform.NopResetter
}

var _ transform.Transformer = Transformer{}

// Transform implements transform.Transformer. An invalid span cut short by the
// end of src is held back until more input arrives or atEOF is set, so chunked
// input is repaired exactly like a single buffer.
func (Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	return transformChunk(dst, src, atEOF, nil)
}

// Recorder is a Transformer that also keeps the input span of every
// replacement. Offsets count from the first byte seen since the last Reset.
// A Recorder must not be shared between concurrent transforms.
type Recorder struct {
	Spans  []decoder.Span
	offset int
}

var _ transform.Transformer = (*Recorder)(nil)

// Reset clears the recorded spans.
func (r *Recorder) Reset() {
	r.Spans = nil
	r.offset = 0
}

// Transform implements transform.Transformer.
func (r *Recorder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	base := r.offset
	nDst, nSrc, err = transformChunk(dst, src, atEOF, func(span decoder.Span) {
		r.Spans = append(r.Spans, decoder.Span{Start: base + span.Start, End: base + span.End})
	})
	r.offset += nSrc
	return nDst, nSrc, err
}

// transformChunk scrubs src into dst. onInvalid, when set, receives the span
// of each replacement written, relative to src.
func transformChunk(dst, src []byte, atEOF bool, onInvalid func(decoder.Span)) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		o, short := decoder.First(src[nSrc:])
		if short && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		chunk := replacement
		if o.Kind == decoder.Scalar {
			chunk = src[nSrc : nSrc+o.Span.End]
		}
		if len(dst)-nDst < len(chunk) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], chunk)
		if o.Kind == decoder.Invalid && onInvalid != nil {
			onInvalid(decoder.Span{Start: nSrc, End: nSrc + o.Span.End})
		}
		nSrc += o.Span.End
	}
	return nDst, nSrc, nil
}
