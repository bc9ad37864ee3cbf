// Package inspect describes grapheme clusters and the code points inside
// them, with Unicode character names.
package inspect

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"mojibox/internal/segment"
)

const (
	controlName    = "<control>"
	unassignedName = "<unassigned>"
)

// CodePoint is one scalar value of a cluster.
type CodePoint struct {
	Char      string `json:"char"`
	CodePoint string `json:"codepoint"`
	Name      string `json:"name"`
}

// Span is a half-open byte range of the input.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Cluster describes one extended grapheme cluster.
type Cluster struct {
	Index      int         `json:"index"`
	Grapheme   string      `json:"grapheme"`
	Span       Span        `json:"span"`
	CodePoints []CodePoint `json:"codepoints"`
}

// Dump segments buf into grapheme clusters using engine. Ill-formed input
// fails with *decoder.InvalidUTF8Error.
func Dump(buf []byte, engine string) ([]Cluster, error) {
	units, err := segment.Iterate(buf, segment.Grapheme, engine)
	if err != nil {
		return nil, err
	}
	clusters := make([]Cluster, 0)
	for u := range units {
		c := Cluster{
			Index:      len(clusters),
			Grapheme:   u.Text,
			Span:       Span{Start: u.Span.Start, End: u.Span.End},
			CodePoints: make([]CodePoint, 0, len(u.Runes)),
		}
		for _, r := range u.Runes {
			c.CodePoints = append(c.CodePoints, Describe(r))
		}
		clusters = append(clusters, c)
	}
	return clusters, nil
}

// Describe returns the display data for one scalar value.
func Describe(r rune) CodePoint {
	return CodePoint{
		Char:      string(r),
		CodePoint: Label(r),
		Name:      Name(r),
	}
}

// Label formats r as U+XXXX with at least four digits.
func Label(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// Name returns the Unicode name of r, or a placeholder for control
// characters and values without a name.
func Name(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	if unicode.IsControl(r) {
		return controlName
	}
	return unassignedName
}
