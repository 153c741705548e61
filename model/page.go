package model

import "strings"

// Rotation is a page's clockwise rotation in degrees, one of 0/90/180/270.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Page is one page of the document. Coordinates follow the PDF default
// space: origin bottom-left, Y increases upward, units are points (1/72in).
type Page struct {
	Number   int      `json:"number"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation Rotation `json:"rotation"`
	Blocks   []Block  `json:"blocks"`
}

// Letter returns an empty US Letter page (612x792pt).
func Letter(number int) *Page {
	return &Page{Number: number, Width: 612, Height: 792}
}

// A4 returns an empty A4 page (595x842pt).
func A4(number int) *Page {
	return &Page{Number: number, Width: 595, Height: 842}
}

// PlainText joins the page's blocks' plain texts with a blank line.
func (p *Page) PlainText() string {
	parts := make([]string, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if t := b.PlainText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Block is a tagged union over the kinds of content a page can contain.
// At most one of the typed fields is set, selected by Kind; HorizontalRule,
// PageBreak and SectionBreak blocks carry none.
type Block struct {
	Kind BlockKind `json:"kind"`

	Paragraph *Paragraph  `json:"paragraph,omitempty"`
	Table     *Table      `json:"table,omitempty"`
	Image     *ImageBlock `json:"image,omitempty"`
	Raw       *RawBlock   `json:"raw,omitempty"`
}

// BlockKind tags which variant a Block holds.
//
// ENUM(paragraph, table, image, horizontalRule, pageBreak, sectionBreak, raw)
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
	BlockImage
	BlockHorizontalRule
	BlockPageBreak
	BlockSectionBreak
	BlockRaw
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockTable:
		return "table"
	case BlockImage:
		return "image"
	case BlockHorizontalRule:
		return "horizontalRule"
	case BlockPageBreak:
		return "pageBreak"
	case BlockSectionBreak:
		return "sectionBreak"
	default:
		return "raw"
	}
}

// ImageBlock places a Resource on a page, optionally positioned/sized.
type ImageBlock struct {
	ResourceID string   `json:"resourceId"`
	AltText    string   `json:"altText,omitempty"`
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
}

// RawBlock carries pass-through text the pipeline chose not to classify.
type RawBlock struct {
	Content string `json:"content"`
}

// ParagraphBlock wraps p as a Block.
func ParagraphBlock(p *Paragraph) Block { return Block{Kind: BlockParagraph, Paragraph: p} }

// TableBlock wraps t as a Block.
func TableBlock(t *Table) Block { return Block{Kind: BlockTable, Table: t} }

// HorizontalRuleBlock returns a standalone rule block.
func HorizontalRuleBlock() Block { return Block{Kind: BlockHorizontalRule} }

// PageBreakBlock returns a standalone page-break marker block.
func PageBreakBlock() Block { return Block{Kind: BlockPageBreak} }

// SectionBreakBlock returns a standalone section-break marker block.
func SectionBreakBlock() Block { return Block{Kind: BlockSectionBreak} }

// PlainText renders the block the way Page.PlainText expects: paragraph and
// table content render their own plain text; structural markers render empty.
func (b Block) PlainText() string {
	switch b.Kind {
	case BlockParagraph:
		if b.Paragraph != nil {
			return b.Paragraph.PlainText()
		}
	case BlockTable:
		if b.Table != nil {
			return b.Table.PlainText()
		}
	case BlockRaw:
		if b.Raw != nil {
			return b.Raw.Content
		}
	}
	return ""
}
