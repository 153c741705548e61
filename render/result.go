package render

import (
	"strings"

	"unpdf/model"
)

// Stats accumulates counters during a render pass, per §4.10.
type Stats struct {
	PageCount           int
	ParagraphCount      int
	TableCount          int
	ImageCount          int
	ListItemCount       int
	WordCount           int
	CharCount           int
	HeadingCount        int
	HorizontalRuleCount int
}

// AddParagraph increments the paragraph counter.
func (s *Stats) AddParagraph() { s.ParagraphCount++ }

// AddTable increments the table counter.
func (s *Stats) AddTable() { s.TableCount++ }

// AddImage increments the image counter.
func (s *Stats) AddImage() { s.ImageCount++ }

// AddListItem increments the list-item counter.
func (s *Stats) AddListItem() { s.ListItemCount++ }

// AddHeading increments the heading counter.
func (s *Stats) AddHeading() { s.HeadingCount++ }

// AddHorizontalRule increments the horizontal-rule counter.
func (s *Stats) AddHorizontalRule() { s.HorizontalRuleCount++ }

// AddPage increments the page counter.
func (s *Stats) AddPage() { s.PageCount++ }

// CountText adds whitespace-split word count and non-whitespace character
// count from a final rendered string, per §4.10's "final pass" rule.
func (s *Stats) CountText(text string) {
	s.WordCount += len(strings.Fields(text))
	for _, c := range text {
		if !isSpace(c) {
			s.CharCount++
		}
	}
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// Merge accumulates other's counters into s, for combining per-page-worker
// statistics after parallel rendering.
func (s *Stats) Merge(other Stats) {
	s.PageCount += other.PageCount
	s.ParagraphCount += other.ParagraphCount
	s.TableCount += other.TableCount
	s.ImageCount += other.ImageCount
	s.ListItemCount += other.ListItemCount
	s.WordCount += other.WordCount
	s.CharCount += other.CharCount
	s.HeadingCount += other.HeadingCount
	s.HorizontalRuleCount += other.HorizontalRuleCount
}

// Result bundles rendered content with the source document's metadata and,
// when requested, extraction statistics.
type Result struct {
	Content  string
	Metadata model.Metadata
	Stats    Stats
}

// NewResult builds a Result from its three parts.
func NewResult(content string, metadata model.Metadata, stats Stats) Result {
	return Result{Content: content, Metadata: metadata, Stats: stats}
}

// ContentOnly builds a Result carrying just content, zero metadata and stats.
func ContentOnly(content string) Result {
	return Result{Content: content}
}

// ContentLen returns the content length in bytes.
func (r Result) ContentLen() int { return len(r.Content) }
