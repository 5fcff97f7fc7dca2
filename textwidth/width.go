// Package textwidth classifies the display width of characters and
// strings: the number of terminal columns a character occupies
// (0, 1 or 2). Cursor and layout math depends on these values.
package textwidth

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Rune returns the display width of a single code point: 0 for
// control characters, 2 for East-Asian wide and fullwidth characters
// and wide emoji, 1 otherwise. Results from the underlying classifier
// are normalized into 0..2; wcwidth-style classifiers report -1 for
// both "invalid" and "control", which this layer folds away.
func Rune(r rune) int {
	if r < 0x20 || (r >= 0x7f && r < 0xa0) {
		// C0, DEL and C1 controls occupy no columns
		return 0
	}
	w := runewidth.RuneWidth(r)
	switch {
	case w < 0:
		return 1
	case w > 2:
		return 2
	default:
		return w
	}
}

// String returns the width of s as the sum of its code point widths.
// The additive model does not cluster graphemes: a combining mark
// contributes 0, but an emoji ZWJ sequence counts each scalar. Use
// Graphemes for cluster-aware measurement.
func String(s string) int {
	total := 0
	for _, r := range s {
		total += Rune(r)
	}
	return total
}

// Graphemes returns the width of s measured over grapheme clusters,
// matching how modern terminals render ZWJ sequences and regional
// indicator pairs.
func Graphemes(s string) int {
	return uniseg.StringWidth(s)
}
