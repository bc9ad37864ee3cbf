// Package decoder validates UTF-8 byte buffers and decodes them into Unicode
// scalar values.
//
// Decoding never stops at the first error. Every byte of the input belongs to
// exactly one Outcome: either a scalar value with the span it was decoded from,
// or an invalid span covering the maximal subpart of an ill-formed sequence as
// recommended by the Unicode Standard (chapter 3, "U+FFFD Substitution of
// Maximal Subparts"). The scrubber and the unit segmenter both consume these
// outcomes, so repair and error reporting always agree on span boundaries.
//
// Classification is table driven: each leading byte maps to a sequence length
// and the accepted range of its first continuation byte. The narrowed ranges
// for E0, ED, F0 and F4 reject overlong encodings, surrogates and values above
// U+10FFFF as soon as the offending byte is seen.
package decoder
