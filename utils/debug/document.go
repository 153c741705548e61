package debug

import "unpdf/model"

// DumpDocument renders doc as an indented tree, one line per block, for a
// --debug troubleshooting report. It walks the document with
// model.Document.Walk but writes structure instead of prose, so a bug report shows exactly what parse/layout produced.
func DumpDocument(doc *model.Document) string {
	tw := NewTreeWriter()
	tw.Line(0, "document: %d page(s), title=%q", len(doc.Pages), doc.Metadata.Title)
	if doc.Outline != nil {
		tw.Line(1, "outline: %d top-level item(s)", len(doc.Outline.Items))
		dumpOutlineItems(tw, doc.Outline.Items, 2)
	}

	v := &dumpVisitor{tw: tw}
	doc.Walk(v, nil, func(block model.Block, repl model.Replacement) {})
	return tw.String()
}

func dumpOutlineItems(tw *TreeWriter, items []*model.OutlineItem, depth int) {
	for _, item := range items {
		tw.Line(depth, "- %s", item.Title)
		dumpOutlineItems(tw, item.Children, depth+1)
	}
}

// dumpVisitor turns a model.Document walk into tree lines. It only reads;
// every Visit method returns Continue so Walk's emit callback (unused here)
// never sees a replacement.
type dumpVisitor struct {
	model.BaseVisitor
	tw    *TreeWriter
	depth int
}

func (v *dumpVisitor) OnPageStart(pageNumber int) {
	v.tw.Line(1, "page %d:", pageNumber)
	v.depth = 2
}

func (v *dumpVisitor) OnPageEnd(int) { v.depth = 1 }

func (v *dumpVisitor) VisitParagraph(p *model.Paragraph) model.Replacement {
	v.tw.TextBlock(v.depth, "paragraph", p.PlainText())
	return model.Continue()
}

func (v *dumpVisitor) VisitHeading(text string, level int) model.Replacement {
	v.tw.TextBlock(v.depth, headingLabel(level), text)
	return model.Continue()
}

func (v *dumpVisitor) VisitListItem(p *model.Paragraph, level int, ordered bool) model.Replacement {
	kind := "bullet"
	if ordered {
		kind = "ordered"
	}
	v.tw.Line(v.depth, "list-item(%s, level=%d):", kind, level)
	v.tw.TextBlock(v.depth+1, "text", p.PlainText())
	return model.Continue()
}

func (v *dumpVisitor) VisitTable(t *model.Table) model.Replacement {
	v.tw.Line(v.depth, "table: %d row(s)", len(t.Rows))
	return model.Continue()
}

func (v *dumpVisitor) VisitImage(resourceID, altText string) model.Replacement {
	v.tw.Line(v.depth, "image: resource=%s alt=%q", resourceID, altText)
	return model.Continue()
}

func (v *dumpVisitor) VisitHorizontalRule() model.Replacement {
	v.tw.Line(v.depth, "horizontal-rule")
	return model.Continue()
}

func (v *dumpVisitor) VisitRaw(content string) model.Replacement {
	v.tw.TextBlock(v.depth, "raw", content)
	return model.Continue()
}

func headingLabel(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h2"
	case 3:
		return "h3"
	case 4:
		return "h4"
	case 5:
		return "h5"
	default:
		return "h6"
	}
}
