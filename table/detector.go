// Package table detects tabular regions among a page's text spans by
// alignment analysis (no graphical lines required), per spec §4.7.
package table

import (
	"sort"
	"strings"

	"unpdf/interpret"
)

// RowData is one row of spans grouped by Y position.
type RowData struct {
	Y     float64
	Spans []interpret.TextSpan
}

// Detected is a candidate table region before conversion to the document
// model.
type Detected struct {
	TopY, BottomY   float64
	LeftX, RightX   float64
	Columns         []float64
	Rows            []RowData
}

// Config holds the detector's tunable parameters; Default matches §4.7.
type Config struct {
	MinRows           int
	MinColumns        int
	MaxColumns        int
	YToleranceFactor  float64
	MinAlignmentRatio float64
	MinColumnGap      float64
}

// Default returns the §4.7 parameter defaults.
func Default() Config {
	return Config{
		MinRows:           2,
		MinColumns:        2,
		MaxColumns:        6,
		YToleranceFactor:  0.4,
		MinAlignmentRatio: 0.3,
		MinColumnGap:      15.0,
	}
}

// Detector finds table regions among a page's spans.
type Detector struct {
	cfg Config
}

// New returns a Detector configured with the §4.7 defaults.
func New() *Detector { return &Detector{cfg: Default()} }

// NewWithConfig returns a Detector using custom parameters.
func NewWithConfig(cfg Config) *Detector { return &Detector{cfg: cfg} }

// Detect partitions spans into table regions and the spans left over for
// the paragraph classifier, per §4.7's five-step algorithm.
func (d *Detector) Detect(spans []interpret.TextSpan) ([]Detected, []interpret.TextSpan) {
	if len(spans) < d.cfg.MinRows*d.cfg.MinColumns {
		return nil, spans
	}

	rows := d.groupIntoRows(spans)
	if len(rows) < d.cfg.MinRows {
		return nil, spans
	}

	columns := d.detectColumnEdges(rows)
	if len(columns) < d.cfg.MinColumns {
		return nil, spans
	}

	regions := d.findTableRegions(rows, columns)
	if len(regions) == 0 {
		return nil, spans
	}

	var tables []Detected
	used := make(map[int]bool)

	for _, region := range regions {
		regionRows := rows[region.start : region.end+1]
		if len(regionRows) == 0 {
			continue
		}

		regionColumns := d.detectColumnEdges(regionRows)
		if len(regionColumns) < d.cfg.MinColumns || len(regionColumns) > d.cfg.MaxColumns {
			continue
		}
		if isListRegion(regionRows, len(regionColumns)) {
			continue
		}

		topY := regionRows[0].Y
		bottomY := regionRows[len(regionRows)-1].Y
		leftX, rightX := regionBounds(regionRows)

		for _, row := range regionRows {
			for _, span := range row.Spans {
				if i := indexOfSpan(spans, span); i >= 0 {
					used[i] = true
				}
			}
		}

		tables = append(tables, Detected{
			TopY: topY, BottomY: bottomY,
			LeftX: leftX, RightX: rightX,
			Columns: regionColumns,
			Rows:    append([]RowData(nil), regionRows...),
		})
	}

	var remaining []interpret.TextSpan
	for i, s := range spans {
		if !used[i] {
			remaining = append(remaining, s)
		}
	}

	return tables, remaining
}

func indexOfSpan(spans []interpret.TextSpan, target interpret.TextSpan) int {
	for i, s := range spans {
		if absF(s.X-target.X) < 0.1 && absF(s.Y-target.Y) < 0.1 && s.Text == target.Text {
			return i
		}
	}
	return -1
}

func regionBounds(rows []RowData) (left, right float64) {
	first := true
	for _, row := range rows {
		for _, s := range row.Spans {
			if first {
				left, right = s.X, s.X+s.Width
				first = false
				continue
			}
			if s.X < left {
				left = s.X
			}
			if r := s.X + s.Width; r > right {
				right = r
			}
		}
	}
	return left, right
}

// groupIntoRows sorts spans by Y descending (ties by X ascending) and
// groups consecutive spans within y_tolerance_factor*font_size of each
// other into rows; a row's Y is the mean of its spans' Y.
func (d *Detector) groupIntoRows(spans []interpret.TextSpan) []RowData {
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

	var rows []RowData
	var current []interpret.TextSpan
	var currentY float64
	haveY := false

	flush := func() {
		if len(current) == 0 {
			return
		}
		sum := 0.0
		for _, s := range current {
			sum += s.Y
		}
		rows = append(rows, RowData{Y: sum / float64(len(current)), Spans: current})
		current = nil
	}

	for _, s := range sorted {
		tolerance := s.FontSize * d.cfg.YToleranceFactor
		if haveY && absF(s.Y-currentY) <= tolerance {
			current = append(current, s)
			continue
		}
		flush()
		current = []interpret.TextSpan{s}
		currentY = s.Y
		haveY = true
	}
	flush()

	return rows
}

const columnBucketSize = 5.0

// detectColumnEdges votes for column-edge X positions among rows with ≥ 2
// spans (deduplicated per row), falling back to the simple every-span
// variant when too few multi-span rows exist, per §4.7 step 2.
func (d *Detector) detectColumnEdges(rows []RowData) []float64 {
	if len(rows) == 0 {
		return nil
	}

	var multiSpanRows []RowData
	for _, r := range rows {
		if len(r.Spans) >= 2 {
			multiSpanRows = append(multiSpanRows, r)
		}
	}

	if len(multiSpanRows) < d.cfg.MinRows {
		return d.detectColumnEdgesOver(rows, len(rows))
	}
	return d.detectColumnEdgesOver(multiSpanRows, len(multiSpanRows))
}

func (d *Detector) detectColumnEdgesOver(rows []RowData, denom int) []float64 {
	edgeCounts := make(map[int]int)
	for _, row := range rows {
		seen := make(map[int]bool)
		for _, s := range row.Spans {
			bucket := roundToBucket(s.X, columnBucketSize)
			seen[bucket] = true
		}
		for bucket := range seen {
			edgeCounts[bucket]++
		}
	}

	minOccurrences := int(float64(denom) * d.cfg.MinAlignmentRatio)
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	var edges []float64
	for bucket, count := range edgeCounts {
		if count >= minOccurrences {
			edges = append(edges, float64(bucket)*columnBucketSize)
		}
	}
	sort.Float64s(edges)

	var merged []float64
	for _, edge := range edges {
		if len(merged) == 0 || edge-merged[len(merged)-1] >= d.cfg.MinColumnGap {
			merged = append(merged, edge)
		}
	}
	return merged
}

func roundToBucket(x, bucket float64) int {
	return int(roundHalfAwayFromZero(x / bucket))
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return float64(int(v - 0.5))
}

type rowRange struct{ start, end int }

// findTableRegions walks rows in order, maintaining a run of rows whose
// column-alignment score meets the threshold, emitting runs of length ≥
// min_rows as candidate regions.
func (d *Detector) findTableRegions(rows []RowData, columns []float64) []rowRange {
	if len(rows) == 0 || len(columns) < d.cfg.MinColumns {
		return nil
	}

	var regions []rowRange
	start := -1
	run := 0

	for i, row := range rows {
		score := alignmentScore(row, columns)
		if score >= d.cfg.MinAlignmentRatio {
			if start < 0 {
				start = i
			}
			run++
			continue
		}
		if start >= 0 && run >= d.cfg.MinRows {
			regions = append(regions, rowRange{start, i - 1})
		}
		start = -1
		run = 0
	}
	if start >= 0 && run >= d.cfg.MinRows {
		regions = append(regions, rowRange{start, len(rows) - 1})
	}
	return regions
}

const alignmentTolerance = 5.0

func alignmentScore(row RowData, columns []float64) float64 {
	if len(row.Spans) == 0 || len(columns) == 0 {
		return 0
	}
	aligned := 0
	for _, s := range row.Spans {
		for _, col := range columns {
			if absF(s.X-col) <= alignmentTolerance {
				aligned++
				break
			}
		}
	}
	return float64(aligned) / float64(len(row.Spans))
}

// bulletMarkers is the §4.7 fixed bullet-glyph set.
var bulletMarkers = map[string]bool{}

func init() {
	for _, r := range []rune("- – — • · * ○ ▪ ◦ ▸ ▹ ► ■ ● □ ◆ ◇ ▶ ▷ ※ ☞ ➤ ➜") {
		if r == ' ' {
			continue
		}
		bulletMarkers[string(r)] = true
	}
}

// isBulletMarker reports an exact match against the fixed bullet set.
func isBulletMarker(trimmed string) bool {
	return bulletMarkers[trimmed]
}

// isNumericMarker reports digits optionally followed by '.' or ')'
// (ignoring internal whitespace), a bare small integer, or a single
// letter followed by '.' or ')'.
func isNumericMarker(trimmed string) bool {
	s := strings.ReplaceAll(trimmed, " ", "")
	if s == "" {
		return false
	}
	body := s
	if last := s[len(s)-1]; last == '.' || last == ')' {
		body = s[:len(s)-1]
	}
	if body == "" {
		return false
	}
	if isAllDigits(body) {
		return true
	}
	if len(body) == 1 && isASCIILetter(rune(body[0])) && body != s {
		// single letter followed by '.' or ')'
		return true
	}
	return false
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isListRegion implements §4.7 step 5: a region is a list when its
// bullet-marker ratio ≥ 0.5, or when it has exactly 2 columns and the
// combined bullet+numeric-marker ratio ≥ 0.5.
func isListRegion(rows []RowData, columnCount int) bool {
	if len(rows) == 0 {
		return false
	}
	bulletCount, numericCount := 0, 0
	for _, row := range rows {
		leading := leftmostSpan(row)
		if leading == "" {
			continue
		}
		trimmed := strings.TrimSpace(leading)
		if isBulletMarker(trimmed) {
			bulletCount++
		} else if isNumericMarker(trimmed) {
			numericCount++
		}
	}
	total := float64(len(rows))
	bulletRatio := float64(bulletCount) / total
	if bulletRatio >= 0.5 {
		return true
	}
	if columnCount == 2 && float64(bulletCount+numericCount)/total >= 0.5 {
		return true
	}
	return false
}

func leftmostSpan(row RowData) string {
	if len(row.Spans) == 0 {
		return ""
	}
	best := row.Spans[0]
	for _, s := range row.Spans[1:] {
		if s.X < best.X {
			best = s
		}
	}
	return best.Text
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
