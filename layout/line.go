package layout

import (
	"sort"
	"strings"
	"unicode"

	"unpdf/interpret"
)

// Line is a set of spans sharing a baseline (within tolerance), in reading
// order, per §4.5.
type Line struct {
	Spans       []interpret.TextSpan
	Y           float64
	X           float64
	FontSize    float64
	IsHeading   bool
	HeadingLevel int
}

// FromSpans builds a Line from spans already known to belong together,
// sorting them by X and computing the character-length-weighted mean font
// size.
func FromSpans(spans []interpret.TextSpan) Line {
	if len(spans) == 0 {
		return Line{}
	}
	sorted := append([]interpret.TextSpan(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	totalChars := 0
	weighted := 0.0
	for _, s := range sorted {
		n := len([]rune(s.Text))
		totalChars += n
		weighted += s.FontSize * float64(n)
	}
	fontSize := sorted[0].FontSize
	if totalChars > 0 {
		fontSize = weighted / float64(totalChars)
	}

	return Line{
		Spans:    sorted,
		Y:        sorted[0].Y,
		X:        sorted[0].X,
		FontSize: fontSize,
	}
}

// Text assembles the line's spans into one string, inserting spaces
// between adjacent spans per §4.5's gap-based rule.
func (l Line) Text() string {
	if len(l.Spans) == 0 {
		return ""
	}
	if len(l.Spans) == 1 {
		return l.Spans[0].Text
	}

	var b strings.Builder
	for i, span := range l.Spans {
		if i == 0 {
			b.WriteString(span.Text)
			continue
		}
		prev := l.Spans[i-1]

		gap := span.X - (prev.X + prev.Width)
		charCount := len([]rune(span.Text))
		avgCharWidth := span.FontSize * 0.5
		if charCount > 0 && span.Width > 0 {
			avgCharWidth = span.Width / float64(charCount)
		}
		spaceThreshold := avgCharWidth * 0.2

		shouldInsert := false
		if gap > spaceThreshold {
			prevIsCJK := lastCharIsSpaceless(prev.Text)
			currIsCJK := firstCharIsSpaceless(span.Text)
			shouldInsert = !(prevIsCJK && currIsCJK)
		}

		prevEndsWithSpace := strings.HasSuffix(prev.Text, " ") || strings.HasSuffix(prev.Text, " ")
		currStartsWithSpace := strings.HasPrefix(span.Text, " ") || strings.HasPrefix(span.Text, " ")

		if shouldInsert && !prevEndsWithSpace && !currStartsWithSpace {
			b.WriteByte(' ')
		}
		b.WriteString(span.Text)
	}
	return b.String()
}

func lastCharIsSpaceless(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	return interpret.IsSpacelessScriptChar(r[len(r)-1])
}

func firstCharIsSpaceless(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	return interpret.IsSpacelessScriptChar(r[0])
}

// IsBold reports whether more than half the character mass in the line
// belongs to spans flagged bold.
func (l Line) IsBold() bool {
	boldChars, totalChars := 0, 0
	for _, s := range l.Spans {
		n := len([]rune(s.Text))
		totalChars += n
		if s.Bold {
			boldChars += n
		}
	}
	return totalChars > 0 && float64(boldChars)/float64(totalChars) > 0.5
}

// IsUppercase reports whether the line has at least one letter and every
// letter is uppercase.
func (l Line) IsUppercase() bool {
	text := l.Text()
	found := false
	for _, c := range text {
		if !unicode.IsLetter(c) {
			continue
		}
		found = true
		if !unicode.IsUpper(c) {
			return false
		}
	}
	return found
}

// GroupSpansIntoLines assigns spans to (possibly multiple) columns, then
// within each column groups by Y with tolerance 0.3*font_size, and finally
// interleaves the columns' lines into a single top-to-bottom reading
// order: sort by Y descending, ties by column index ascending.
func GroupSpansIntoLines(spans []interpret.TextSpan) []Line {
	if len(spans) == 0 {
		return nil
	}

	columns := DetectColumns(spans)
	if len(columns) <= 1 {
		return groupSingleColumn(spans)
	}

	perColumn := make([][]interpret.TextSpan, len(columns))
	for _, s := range spans {
		idx := 0
		for i, c := range columns {
			if c.ContainsSpan(s) {
				idx = i
				break
			}
		}
		perColumn[idx] = append(perColumn[idx], s)
	}

	type colLine struct {
		col  int
		line Line
	}
	var all []colLine
	for colIdx, colSpans := range perColumn {
		for _, line := range groupSingleColumn(colSpans) {
			all = append(all, colLine{col: colIdx, line: line})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].line.Y != all[j].line.Y {
			return all[i].line.Y > all[j].line.Y
		}
		return all[i].col < all[j].col
	})

	lines := make([]Line, len(all))
	for i, cl := range all {
		lines[i] = cl.line
	}
	return lines
}

func groupSingleColumn(spans []interpret.TextSpan) []Line {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]interpret.TextSpan(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	var current []interpret.TextSpan
	var currentY float64
	haveY := false

	for _, s := range sorted {
		tolerance := s.FontSize * 0.3
		if haveY && absFloat(s.Y-currentY) <= tolerance {
			current = append(current, s)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, FromSpans(current))
		}
		current = []interpret.TextSpan{s}
		currentY = s.Y
		haveY = true
	}
	if len(current) > 0 {
		lines = append(lines, FromSpans(current))
	}
	return lines
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
