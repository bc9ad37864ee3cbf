package decoder

import "fmt"

// InvalidUTF8Error reports the first ill-formed subsequence of a buffer that
// had to be well-formed.
type InvalidUTF8Error struct {
	Span Span
}

func (e *InvalidUTF8Error) Error() string {
	if e.Span.Len() == 1 {
		return fmt.Sprintf("invalid UTF-8 at byte %d", e.Span.Start)
	}
	return fmt.Sprintf("invalid UTF-8 at bytes %d-%d", e.Span.Start, e.Span.End-1)
}
