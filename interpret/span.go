package interpret

import "strings"

// TextSpan is one run of text emitted by a Tj/TJ/'/" operator at a single
// text-space position, per §4.2's emission rule.
type TextSpan struct {
	Text     string
	X        float64 // left edge
	Y        float64 // baseline
	Width    float64 // filled in by callers that can measure glyph widths; 0 if unknown
	FontSize float64
	FontName string
	Bold     bool
	Italic   bool
}

// NewTextSpan builds a span and derives Bold/Italic from the font name the
// same way the teacher's layout analyzer does: case-insensitive substring
// matches against the PostScript name.
func NewTextSpan(text string, x, y, fontSize float64, fontName string) TextSpan {
	lower := strings.ToLower(fontName)
	bold := strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
	italic := strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return TextSpan{
		Text:     text,
		X:        x,
		Y:        y,
		FontSize: fontSize,
		FontName: fontName,
		Bold:     bold,
		Italic:   italic,
	}
}

// Bottom and Top approximate the glyph's vertical extent from font size
// alone, since this pipeline never loads per-glyph metrics.
func (s TextSpan) Bottom() float64 { return s.Y - s.FontSize*0.2 }
func (s TextSpan) Top() float64    { return s.Y + s.FontSize*0.8 }

// IsSpacelessScriptChar reports whether c belongs to a script that does not
// use inter-word spaces (§4.2's spaceless-script predicate). CJK
// ideographs, Hiragana, Katakana, and CJK punctuation qualify; Hangul does
// not, since Korean uses word spaces like English.
func IsSpacelessScriptChar(c rune) bool {
	switch {
	case c >= 0x4E00 && c <= 0x9FFF: // CJK Unified Ideographs
		return true
	case c >= 0x3400 && c <= 0x4DBF: // Extension A
		return true
	case c >= 0x20000 && c <= 0x2A6DF, c >= 0x2A700 && c <= 0x2B73F,
		c >= 0x2B740 && c <= 0x2B81F, c >= 0x2B820 && c <= 0x2CEAF,
		c >= 0x2CEB0 && c <= 0x2EBEF: // Extensions B-F
		return true
	case c >= 0x3040 && c <= 0x309F: // Hiragana
		return true
	case c >= 0x30A0 && c <= 0x30FF: // Katakana
		return true
	case c >= 0x3000 && c <= 0x303F: // CJK Symbols and Punctuation
		return true
	default:
		return false
	}
}
