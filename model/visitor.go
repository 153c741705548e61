package model

// VisitorAction is what a Visitor callback asks the walker to do with the
// element it was just shown.
//
// ENUM(continue, replace, skip)
type VisitorAction int

const (
	ActionContinue VisitorAction = iota
	ActionReplace
	ActionSkip
)

// Replacement pairs an ActionReplace verdict with its substitute text. The
// zero value (ActionContinue) carries no text and the walker proceeds with
// its own default rendering of the element.
type Replacement struct {
	Action VisitorAction
	Text   string
}

// Continue is the default, no-op verdict.
func Continue() Replacement { return Replacement{Action: ActionContinue} }

// Skip asks the walker to emit nothing for this element.
func Skip() Replacement { return Replacement{Action: ActionSkip} }

// Replace asks the walker to emit text verbatim instead of its own rendering.
func Replace(text string) Replacement { return Replacement{Action: ActionReplace, Text: text} }

// Visitor lets a caller intercept rendering of individual document elements
// without reimplementing a renderer. Every method has a default no-op
// embedding (BaseVisitor) so callers only override what they care about.
type Visitor interface {
	VisitParagraph(p *Paragraph) Replacement
	VisitTable(t *Table) Replacement
	VisitImage(resourceID, altText string) Replacement
	VisitHeading(text string, level int) Replacement
	VisitListItem(p *Paragraph, level int, ordered bool) Replacement
	VisitHorizontalRule() Replacement
	VisitRaw(content string) Replacement
	OnPageStart(pageNumber int)
	OnPageEnd(pageNumber int)
}

// BaseVisitor implements Visitor with ActionContinue/no-ops everywhere.
// Embed it to override only the methods a concrete visitor cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitParagraph(*Paragraph) Replacement           { return Continue() }
func (BaseVisitor) VisitTable(*Table) Replacement                   { return Continue() }
func (BaseVisitor) VisitImage(string, string) Replacement           { return Continue() }
func (BaseVisitor) VisitHeading(string, int) Replacement            { return Continue() }
func (BaseVisitor) VisitListItem(*Paragraph, int, bool) Replacement  { return Continue() }
func (BaseVisitor) VisitHorizontalRule() Replacement                { return Continue() }
func (BaseVisitor) VisitRaw(string) Replacement                     { return Continue() }
func (BaseVisitor) OnPageStart(int)                                 {}
func (BaseVisitor) OnPageEnd(int)                                   {}

// PageFilter decides whether a 1-indexed page number is included in a walk.
// A nil PageFilter includes every page.
type PageFilter func(pageNumber int) bool

// Walk drives v over the document in reading order, honoring pages. Every
// block is passed to emit together with the visitor's verdict: ActionReplace
// carries the substitute text; ActionSkip tells the caller to emit nothing
// for the block; ActionContinue carries "" so the caller falls back to its
// own rendering of the element (Walk itself renders nothing — it only decides
// whether and what to hand a renderer, leaving the actual formatting to it).
func (d *Document) Walk(v Visitor, pages PageFilter, emit func(block Block, repl Replacement)) {
	for _, p := range d.Pages {
		if pages != nil && !pages(p.Number) {
			continue
		}
		v.OnPageStart(p.Number)
		for _, b := range p.Blocks {
			emit(b, visitBlock(v, b))
		}
		v.OnPageEnd(p.Number)
	}
}

func visitBlock(v Visitor, b Block) Replacement {
	switch b.Kind {
	case BlockParagraph:
		if b.Paragraph == nil {
			return Continue()
		}
		if b.Paragraph.Style.IsHeading() {
			return v.VisitHeading(b.Paragraph.PlainText(), b.Paragraph.Style.HeadingLevel)
		}
		if li := b.Paragraph.Style.List; li != nil {
			return v.VisitListItem(b.Paragraph, li.Level, li.Style.Kind == ListOrdered)
		}
		return v.VisitParagraph(b.Paragraph)
	case BlockTable:
		if b.Table == nil {
			return Continue()
		}
		return v.VisitTable(b.Table)
	case BlockImage:
		if b.Image == nil {
			return Continue()
		}
		return v.VisitImage(b.Image.ResourceID, b.Image.AltText)
	case BlockHorizontalRule:
		return v.VisitHorizontalRule()
	case BlockRaw:
		if b.Raw == nil {
			return Continue()
		}
		return v.VisitRaw(b.Raw.Content)
	default:
		return Continue()
	}
}
