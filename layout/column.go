package layout

import "unpdf/interpret"

// Column is a detected vertical reading region, padded outward by ±10
// points, per §4.4.
type Column struct {
	Left  float64
	Right float64
	Index int
}

// Contains reports whether x falls within the column's bounds.
func (c Column) Contains(x float64) bool {
	return x >= c.Left && x <= c.Right
}

// ContainsSpan reports whether a span belongs to this column: its left
// edge or its horizontal center falls within the bounds.
func (c Column) ContainsSpan(s interpret.TextSpan) bool {
	center := s.X + s.Width/2.0
	return c.Contains(s.X) || c.Contains(center)
}

const (
	minMultiColumnWidth = 250.0
	sliceWidth          = 3.0
	minGapWidth         = 10.0
	minColumnWidth      = 12.0 // minimum gap width for a real gutter
	minColumnBodyWidth  = 80.0
)

// DetectColumns splits spans into at most two columns by locating a
// central gutter, per §4.4. Returns a single full-width column when no
// qualifying gutter is found.
func DetectColumns(spans []interpret.TextSpan) []Column {
	if len(spans) == 0 {
		return nil
	}

	minX, maxX := spans[0].X, spans[0].X+spans[0].Width
	for _, s := range spans {
		if s.X < minX {
			minX = s.X
		}
		if right := s.X + s.Width; right > maxX {
			maxX = right
		}
	}
	pageWidth := maxX - minX

	singleColumn := []Column{{Left: minX - 10, Right: maxX + 10, Index: 0}}

	if pageWidth < minMultiColumnWidth {
		return singleColumn
	}

	numSlices := int(pageWidth/sliceWidth) + 1
	occupancy := make([]int, numSlices)
	for _, s := range spans {
		start := int((s.X - minX) / sliceWidth)
		end := int((s.X + s.Width - minX) / sliceWidth)
		if end >= numSlices {
			end = numSlices - 1
		}
		if start < 0 {
			start = 0
		}
		for i := start; i <= end; i++ {
			occupancy[i]++
		}
	}

	searchStart := numSlices * 15 / 100
	searchEnd := numSlices * 85 / 100
	pageCenter := numSlices / 2

	bestGapStart, bestGapLen := 0, 0
	bestGapCenterDist := float64(1 << 30)
	curGapStart, curGapLen := 0, 0

	considerGap := func(start, length int) {
		if length == 0 {
			return
		}
		gapCenter := start + length/2
		centerDist := absInt(gapCenter - pageCenter)
		curWidth := float64(length) * sliceWidth
		bestWidth := float64(bestGapLen) * sliceWidth
		if curWidth < minColumnWidth {
			return
		}
		if curWidth > bestWidth*1.5 || (curWidth >= bestWidth*0.7 && float64(centerDist) < bestGapCenterDist) {
			bestGapStart, bestGapLen, bestGapCenterDist = start, length, float64(centerDist)
		}
	}

	for i := searchStart; i < searchEnd && i < numSlices; i++ {
		if occupancy[i] == 0 {
			if curGapLen == 0 {
				curGapStart = i
			}
			curGapLen++
		} else {
			considerGap(curGapStart, curGapLen)
			curGapLen = 0
		}
	}
	considerGap(curGapStart, curGapLen)

	gapWidth := float64(bestGapLen) * sliceWidth
	if gapWidth < minColumnWidth {
		return singleColumn
	}

	gutterCenter := minX + (float64(bestGapStart)+float64(bestGapLen)/2.0)*sliceWidth
	leftWidth := gutterCenter - minX
	rightWidth := maxX - gutterCenter
	if leftWidth < minColumnBodyWidth || rightWidth < minColumnBodyWidth {
		return singleColumn
	}

	leftSpans, rightSpans := 0, 0
	for _, s := range spans {
		if s.X+s.Width/2.0 < gutterCenter {
			leftSpans++
		} else {
			rightSpans++
		}
	}
	minSpans := len(spans) / 10
	if minSpans < 2 {
		minSpans = 2
	}
	if leftSpans < minSpans || rightSpans < minSpans {
		return singleColumn
	}

	return []Column{
		{Left: minX - 10, Right: gutterCenter, Index: 0},
		{Left: gutterCenter, Right: maxX + 10, Index: 1},
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
