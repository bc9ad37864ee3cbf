package grapheme

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

type unisegProvider struct{}

func (unisegProvider) Boundaries(runes []rune) []int {
	if len(runes) == 0 {
		return nil
	}
	rest := string(runes)
	ends := make([]int, 0, len(runes))
	state := -1
	offset := 0
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += utf8.RuneCountInString(cluster)
		ends = append(ends, offset)
	}
	return ends
}
