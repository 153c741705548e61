// Package cleanup implements the §4.9 text-cleanup pipeline: a fixed
// ordered sequence of normalization passes applied to extracted text before
// it reaches a renderer, tuned by preset or explicit options.
package cleanup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Preset selects a bundle of CleanupOptions; see FromPreset.
type Preset int

// ENUM(minimal, standard, aggressive)
const (
	Minimal Preset = iota
	Standard
	Aggressive
)

func (p Preset) String() string {
	switch p {
	case Minimal:
		return "minimal"
	case Standard:
		return "standard"
	case Aggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// Options controls which cleanup stages run and how aggressively.
// RemoveHeadersFooters, RemoveTOC and DetectMojibake are set by the presets
// but no stage of Process reads them.
type Options struct {
	NormalizeUnicode       bool
	StandardizeBullets     bool
	RemovePageNumbers      bool
	RemoveHeadersFooters   bool
	RemoveTOC              bool
	FixLigatures           bool
	FixHyphenation         bool
	DetectMojibake         bool
	RemovePUA              bool
	RemoveReplacementChar  bool
	MergeSingleNewlines    bool
	MergeListMarkers       bool
	MergeCJKLines          bool
	NormalizeWhitespace    bool
	MaxConsecutiveNewlines int
	PreserveFrontmatter    bool
}

// FromPreset returns the Options bundle for a preset, per §4.9.
func FromPreset(p Preset) Options {
	switch p {
	case Minimal:
		return MinimalOptions()
	case Aggressive:
		return AggressiveOptions()
	default:
		return StandardOptions()
	}
}

// MinimalOptions normalizes Unicode and whitespace only.
func MinimalOptions() Options {
	return Options{
		NormalizeUnicode:    true,
		NormalizeWhitespace: true,
		PreserveFrontmatter: true,
	}
}

// StandardOptions is the default: NFC, line cleanup, structure-preserving
// merges, newlines capped at 1.
func StandardOptions() Options {
	return Options{
		NormalizeUnicode:       true,
		StandardizeBullets:     true,
		RemovePageNumbers:      true,
		RemoveHeadersFooters:   true,
		FixLigatures:           true,
		FixHyphenation:         true,
		RemoveReplacementChar:  true,
		MergeSingleNewlines:    true,
		MergeListMarkers:       true,
		MergeCJKLines:          true,
		NormalizeWhitespace:    true,
		MaxConsecutiveNewlines: 1,
		PreserveFrontmatter:    true,
	}
}

// AggressiveOptions is StandardOptions plus RemoveTOC, DetectMojibake and
// PUA removal, and allows up to 2 consecutive newlines. Process does not act
// on RemoveTOC or DetectMojibake, so no table-of-contents lines are removed
// and no mojibake is detected; only PUA removal and the newline cap change
// the output relative to Standard.
func AggressiveOptions() Options {
	return Options{
		NormalizeUnicode:       true,
		StandardizeBullets:     true,
		RemovePageNumbers:      true,
		RemoveHeadersFooters:   true,
		RemoveTOC:              true,
		FixLigatures:           true,
		FixHyphenation:         true,
		DetectMojibake:         true,
		RemovePUA:              true,
		RemoveReplacementChar:  true,
		MergeSingleNewlines:    true,
		MergeListMarkers:       true,
		MergeCJKLines:          true,
		NormalizeWhitespace:    true,
		MaxConsecutiveNewlines: 2,
		PreserveFrontmatter:    true,
	}
}

type ligature struct {
	glyph, expansion string
}

// Pipeline runs Options' enabled stages over text in the §4.9 fixed order.
type Pipeline struct {
	opts            Options
	pageNumberRegex *regexp.Regexp
	ligatures       []ligature
}

// New builds a Pipeline from explicit Options.
func New(opts Options) *Pipeline {
	return &Pipeline{
		opts:            opts,
		pageNumberRegex: regexp.MustCompile(`(?m)^[\s]*[-–—]?\s*\d+\s*[-–—]?\s*$`),
		ligatures: []ligature{
			{"ﬀ", "ff"},
			{"ﬁ", "fi"},
			{"ﬂ", "fl"},
			{"ﬃ", "ffi"},
			{"ﬄ", "ffl"},
			{"ﬅ", "st"},
			{"ﬆ", "st"},
		},
	}
}

// NewFromPreset builds a Pipeline from a named preset.
func NewFromPreset(p Preset) *Pipeline {
	return New(FromPreset(p))
}

// Process runs the pipeline over text, preserving a leading YAML
// frontmatter block untouched when Options.PreserveFrontmatter is set.
func (p *Pipeline) Process(text string) string {
	if p.opts.PreserveFrontmatter {
		if fm, content, ok := extractFrontmatter(text); ok {
			return fm + "\n" + p.processContent(content)
		}
	}
	return p.processContent(text)
}

// processContent runs the fixed-order §4.9 stage sequence.
func (p *Pipeline) processContent(text string) string {
	result := text

	if p.opts.NormalizeUnicode {
		result = norm.NFC.String(result)
	}

	if p.opts.FixLigatures {
		for _, l := range p.ligatures {
			result = strings.ReplaceAll(result, l.glyph, l.expansion)
		}
	}

	if p.opts.StandardizeBullets {
		result = standardizeBullets(result)
	}

	if p.opts.RemovePUA {
		result = removePUAChars(result)
	}

	if p.opts.RemoveReplacementChar {
		result = strings.ReplaceAll(result, "�", "")
	}

	if p.opts.RemovePageNumbers {
		result = p.pageNumberRegex.ReplaceAllString(result, "")
	}

	if p.opts.FixHyphenation {
		result = fixHyphenation(result)
	}

	if p.opts.MergeListMarkers {
		result = mergeListMarkers(result)
	}

	if p.opts.MergeCJKLines {
		result = mergeCJKLines(result)
	}

	if p.opts.MergeSingleNewlines {
		result = mergeSingleNewlines(result)
	}

	if p.opts.NormalizeWhitespace {
		result = normalizeWhitespace(result)
	}

	if p.opts.MaxConsecutiveNewlines > 0 {
		result = limitNewlines(result, p.opts.MaxConsecutiveNewlines)
	}

	return strings.TrimSpace(result)
}

func extractFrontmatter(text string) (frontmatter, content string, ok bool) {
	const prefix = "---\n"
	if !strings.HasPrefix(text, prefix) {
		return "", "", false
	}
	stripped := text[len(prefix):]
	endPos := strings.Index(stripped, "\n---\n")
	if endPos < 0 {
		return "", "", false
	}
	fmEnd := len(prefix) + endPos + len("\n---\n")
	return text[:fmEnd], text[fmEnd:], true
}

var standardBullets = []rune{'●', '○', '■', '□', '◆', '◇', '▪', '▫', '►', '▻'}

func standardizeBullets(text string) string {
	result := text
	for _, b := range standardBullets {
		result = strings.ReplaceAll(result, string(b), "•")
	}
	return result
}

func removePUAChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if (c >= 0xE000 && c <= 0xF8FF) ||
			(c >= 0xF0000 && c <= 0xFFFFD) ||
			(c >= 0x100000 && c <= 0x10FFFD) {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

var hyphenationRegex = regexp.MustCompile(`([a-zA-Z])-\s*\n?\s*([a-z])`)

func fixHyphenation(text string) string {
	return hyphenationRegex.ReplaceAllString(text, "$1$2")
}

var extraSpacesRegex = regexp.MustCompile(`[ ]{3,}`)

func normalizeWhitespace(text string) string {
	return extraSpacesRegex.ReplaceAllString(text, "  ")
}

func limitNewlines(text string, max int) string {
	re := regexp.MustCompile(fmt.Sprintf(`\n{%d,}`, max+1))
	return re.ReplaceAllString(text, strings.Repeat("\n", max))
}

// NUL-delimited placeholders/markers: real extracted text never contains a
// NUL byte, so these can never collide with document content the way a
// printable-character marker could.
const (
	paraPlaceholder   = "\x00PARA\x00"
	sentPlaceholder   = "\x00SENT\x00"
	headingLineMarker = "\x00H\x00"
	listLineMarker    = "\x00L\x00"
	tableLineMarker   = "\x00T\x00"
)

var (
	headingLineRegex = regexp.MustCompile(`(?m)^(#{1,6}\s)`)
	listLineRegex    = regexp.MustCompile(`(?m)^([-*]\s|[0-9]+\.\s)`)
	tableLineRegex   = regexp.MustCompile(`(?m)^(\|)`)
	paraBreakRegex   = regexp.MustCompile(`\n{2,}`)
	sentEndRegex     = regexp.MustCompile(`([.。!?！？])\s*\n`)
)

// mergeSingleNewlines collapses lines split mid-sentence (as PDF text
// extraction often produces one word per line) into spaces, while
// preserving paragraph breaks, sentence endings, and markdown block
// elements (headings, list items, table rows) via a placeholder swap.
func mergeSingleNewlines(text string) string {
	protected := headingLineRegex.ReplaceAllString(text, headingLineMarker+"$1")
	protected = listLineRegex.ReplaceAllString(protected, listLineMarker+"$1")
	protected = tableLineRegex.ReplaceAllString(protected, tableLineMarker+"$1")
	protected = paraBreakRegex.ReplaceAllString(protected, paraPlaceholder)
	protected = sentEndRegex.ReplaceAllString(protected, "$1"+sentPlaceholder)

	merged := strings.ReplaceAll(protected, "\n", " ")
	merged = strings.ReplaceAll(merged, sentPlaceholder, "\n")
	merged = strings.ReplaceAll(merged, paraPlaceholder, "\n\n")
	merged = strings.ReplaceAll(merged, headingLineMarker, "\n")
	merged = strings.ReplaceAll(merged, listLineMarker, "\n")
	merged = strings.ReplaceAll(merged, tableLineMarker, "\n")
	return merged
}

var (
	bulletMarkerRegex      = regexp.MustCompile(`([•\-■□▪▸►◆◇➤✓✗])\s*\n\s*`)
	numberedMarkerRegex    = regexp.MustCompile(`(\d{1,3}[.)]\s*)\n\s*`)
	parenNumberMarkerRegex = regexp.MustCompile(`(\(\d{1,3}\)\s*)\n\s*`)
	koreanMarkerRegex      = regexp.MustCompile(`([가-힣][.)]\s*)\n\s*`)
	circledNumberRegex     = regexp.MustCompile(`([❶-❿])\s*\n\s*`)
)

// mergeListMarkers joins a list/bullet marker left stranded on its own
// line by PDF extraction with the content that follows it, across bullet,
// Arabic, parenthesized, Korean, and circled-numeral marker styles.
func mergeListMarkers(text string) string {
	result := bulletMarkerRegex.ReplaceAllString(text, "$1 ")
	result = numberedMarkerRegex.ReplaceAllString(result, "$1")
	result = parenNumberMarkerRegex.ReplaceAllString(result, "$1")
	result = koreanMarkerRegex.ReplaceAllString(result, "$1")
	result = circledNumberRegex.ReplaceAllString(result, "$1 ")
	return result
}

const cjkParaPlaceholder = "\x00CJKPARA\x00"

var cjkLineBreakRegex = regexp.MustCompile(
	`([\p{Hangul}\p{Han}\p{Hiragana}\p{Katakana}])([^.。!?！？\n]?)\n([\p{Hangul}\p{Han}\p{Hiragana}\p{Katakana}])`)

// mergeCJKLines joins CJK text split mid-sentence across a single line
// break (not a paragraph break), since a bare newline in CJK script
// carries no word-boundary meaning the way ASCII whitespace does.
func mergeCJKLines(text string) string {
	protected := paraBreakRegex.ReplaceAllString(text, cjkParaPlaceholder)
	merged := cjkLineBreakRegex.ReplaceAllString(protected, "$1$2$3")
	return strings.ReplaceAll(merged, cjkParaPlaceholder, "\n\n")
}
