package edit

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// widthCondition is the shared go-runewidth condition used for all width
// measurements. EastAsianWidth toggles whether ambiguous-width code points
// (e.g. many box-drawing and Greek characters) are measured as 1 or 2 cells,
// per the WithAmbiguousWide option.
var widthCondition = runewidth.NewCondition()

// setAmbiguousWide configures whether ambiguous-width code points measure as
// two cells. The source (and most terminal emulators) fix a single answer;
// callers still need the toggle because some terminals disagree.
func setAmbiguousWide(wide bool) {
	widthCondition.EastAsianWidth = wide
}

// runeWidth returns the display width of a single code point: 0 for
// zero-width/combining marks, 1 for normal-width, 2 for wide East-Asian
// characters.
func runeWidth(r rune) int {
	return widthCondition.RuneWidth(r)
}

// tabWidth returns the number of columns a hard tab consumes when it starts
// at column col, expanding to the next multiple of 8.
func tabWidth(col int) int {
	const stop = 8
	return stop - col%stop
}

// graphemeLen returns the number of runes making up the first grapheme
// cluster of text, using Unicode grapheme cluster boundaries rather than the
// simpler "zero-width attaches to the previous rune" heuristic. This matters
// for multi-rune emoji (ZWJ sequences, skin-tone modifiers) as well as plain
// combining marks.
func graphemeLen(text []rune) int {
	if len(text) == 0 {
		return 0
	}
	if len(text) == 1 {
		return 1
	}
	gr := uniseg.NewGraphemes(string(text))
	if !gr.Next() {
		return 1
	}
	return len(gr.Runes())
}

// prevGraphemeLen returns the number of runes making up the last grapheme
// cluster of text.
func prevGraphemeLen(text []rune) int {
	if len(text) == 0 {
		return 0
	}
	if len(text) == 1 {
		return 1
	}
	gr := uniseg.NewGraphemes(string(text))
	var lastLen int
	for gr.Next() {
		lastLen = len(gr.Runes())
	}
	if lastLen == 0 {
		return 1
	}
	return lastLen
}
