// Package layout turns a page's interpret.TextSpans into lines and blocks:
// font-size statistics, column detection, line grouping, and the
// heading/paragraph classifier of spec §4.3-§4.6.
package layout

import (
	"math"
	"sort"
)

// FontStatistics accumulates a histogram of observed font sizes (bucketed
// to 0.1-point precision) and derives the body-text size and the ranked
// set of heading sizes, per §4.3.
type FontStatistics struct {
	BodySize     float64
	HeadingSizes []float64 // sorted descending

	histogram map[int]int // key = round(size*10)
}

// NewFontStatistics returns an empty accumulator ready for AddSize calls.
func NewFontStatistics() *FontStatistics {
	return &FontStatistics{histogram: make(map[int]int)}
}

// AddSize records one observed font size.
func (fs *FontStatistics) AddSize(size float64) {
	key := bucketKey(size)
	fs.histogram[key]++
}

func bucketKey(size float64) int {
	return int(math.Round(size * 10.0))
}

// Analyze computes BodySize (highest-frequency bucket, ties won by the
// smallest size) and HeadingSizes (buckets strictly greater than
// BodySize+0.5, descending). Call once after all AddSize calls for a page.
func (fs *FontStatistics) Analyze() {
	if len(fs.histogram) == 0 {
		fs.BodySize = 12.0
		return
	}

	bestKey := 0
	bestCount := -1
	keys := make([]int, 0, len(fs.histogram))
	for k := range fs.histogram {
		keys = append(keys, k)
	}
	sort.Ints(keys) // ascending, so equal counts favor the smallest size
	for _, k := range keys {
		count := fs.histogram[k]
		if count > bestCount {
			bestCount = count
			bestKey = k
		}
	}
	fs.BodySize = float64(bestKey) / 10.0

	var larger []float64
	for _, k := range keys {
		size := float64(k) / 10.0
		if size > fs.BodySize+0.5 {
			larger = append(larger, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(larger)))
	fs.HeadingSizes = larger
}

// GetHeadingLevel returns 0 for body text, else a 1-indexed rank (clamped
// to 6) among HeadingSizes. isBold is accepted for symmetry with the
// original signature but does not affect the decision, per §4.3.
func (fs *FontStatistics) GetHeadingLevel(fontSize float64, isBold bool) int {
	_ = isBold
	threshold := fs.BodySize + 1.5
	if fontSize < threshold {
		return 0
	}
	for i, headingSize := range fs.HeadingSizes {
		if fontSize >= headingSize-0.5 {
			level := i + 1
			if level > 6 {
				level = 6
			}
			return level
		}
	}
	return 5
}
