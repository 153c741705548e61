package model

import "strings"

// Paragraph is an ordered sequence of inline content sharing one style.
type Paragraph struct {
	Content []InlineContent `json:"content"`
	Style   ParagraphStyle  `json:"style"`
}

// WithText returns a single-run paragraph, the common case for synthesized
// content (table cell text, list items rebuilt from plain strings).
func WithText(text string) *Paragraph {
	return &Paragraph{Content: []InlineContent{{Kind: InlineText, Text: &TextRun{Text: text}}}}
}

// PlainText concatenates the paragraph's inline text, turning LineBreak
// items into newlines.
func (p *Paragraph) PlainText() string {
	var b strings.Builder
	for _, c := range p.Content {
		switch c.Kind {
		case InlineText:
			if c.Text != nil {
				b.WriteString(c.Text.Text)
			}
		case InlineLineBreak:
			b.WriteByte('\n')
		case InlineLinkKind:
			if c.Link != nil {
				b.WriteString(c.Link.Text)
			}
		case InlineImageKind:
			if c.Image != nil {
				b.WriteString(c.Image.AltText)
			}
		}
	}
	return b.String()
}

// InlineKind tags which field of InlineContent is populated.
//
// ENUM(text, lineBreak, link, image)
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineLineBreak
	InlineLinkKind
	InlineImageKind
)

// InlineContent is a tagged union over a paragraph's inline items.
type InlineContent struct {
	Kind  InlineKind   `json:"kind"`
	Text  *TextRun     `json:"text,omitempty"`
	Link  *InlineLink  `json:"link,omitempty"`
	Image *InlineImage `json:"image,omitempty"`
}

// TextRun is a run of styled text.
type TextRun struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// InlineLink is a hyperlink run.
type InlineLink struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// InlineImage references a Resource inline within a paragraph's flow.
type InlineImage struct {
	ResourceID string `json:"resourceId"`
	AltText    string `json:"altText,omitempty"`
}

// TextRunContent wraps a TextRun as an InlineContent.
func TextRunContent(r TextRun) InlineContent { return InlineContent{Kind: InlineText, Text: &r} }

// LineBreakContent is the inline line-break marker.
func LineBreakContent() InlineContent { return InlineContent{Kind: InlineLineBreak} }

// TextStyle carries character-level formatting.
type TextStyle struct {
	Bold            bool    `json:"bold,omitempty"`
	Italic          bool    `json:"italic,omitempty"`
	Underline       bool    `json:"underline,omitempty"`
	Strikethrough   bool    `json:"strikethrough,omitempty"`
	Superscript     bool    `json:"superscript,omitempty"`
	Subscript       bool    `json:"subscript,omitempty"`
	FontName        string  `json:"fontName,omitempty"`
	FontSize        float64 `json:"fontSize,omitempty"`
	Color           string  `json:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
}

// HasStyling reports whether any boolean or color attribute is set.
func (s TextStyle) HasStyling() bool {
	return s.Bold || s.Italic || s.Underline || s.Strikethrough ||
		s.Superscript || s.Subscript || s.Color != "" || s.BackgroundColor != ""
}

// Alignment is a paragraph's horizontal text alignment.
//
// ENUM(left, center, right, justify)
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParagraphStyle is the block-level style attached to a Paragraph.
type ParagraphStyle struct {
	HeadingLevel    int        `json:"headingLevel,omitempty"` // 0 = not a heading, else 1..6
	Alignment       Alignment  `json:"alignment"`
	IndentLevel     int        `json:"indentLevel,omitempty"`
	List            *ListInfo  `json:"list,omitempty"`
	LineSpacing     float64    `json:"lineSpacing,omitempty"`
	SpaceBefore     float64    `json:"spaceBefore,omitempty"`
	SpaceAfter      float64    `json:"spaceAfter,omitempty"`
	FirstLineIndent float64    `json:"firstLineIndent,omitempty"`
}

// IsHeading reports whether this style marks a heading paragraph.
func (s ParagraphStyle) IsHeading() bool { return s.HeadingLevel > 0 }

// ListInfo describes a paragraph that is a list item.
type ListInfo struct {
	Style  ListStyle `json:"style"`
	Level  int       `json:"level"`
	Number *int      `json:"number,omitempty"`
}

// ListStyleKind tags which field of ListStyle applies.
//
// ENUM(ordered, unordered)
type ListStyleKind int

const (
	ListOrdered ListStyleKind = iota
	ListUnordered
)

// ListStyle is a tagged union over ordered/unordered list markers.
type ListStyle struct {
	Kind ListStyleKind `json:"kind"`

	// Ordered
	Start       int         `json:"start,omitempty"`
	NumberStyle NumberStyle `json:"numberStyle,omitempty"`

	// Unordered
	Marker rune `json:"marker,omitempty"`
}

// NumberStyle is the numbering scheme of an ordered list.
//
// ENUM(decimal, lowerAlpha, upperAlpha, lowerRoman, upperRoman)
type NumberStyle int

const (
	NumberDecimal NumberStyle = iota
	NumberLowerAlpha
	NumberUpperAlpha
	NumberLowerRoman
	NumberUpperRoman
)
