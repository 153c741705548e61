package backend

import (
	"github.com/ledongthuc/pdf"

	"unpdf/model"
)

// maxOutlineDepth guards against a malformed or cyclic /Outlines tree; no
// real bookmark tree nests this deep.
const maxOutlineDepth = 64

// Outline walks the document catalog's /Outlines tree and returns the
// bookmark hierarchy, per §4.8. Page resolution is intentionally left to the
// caller's best effort elsewhere: this library's Value type does not expose
// the low-level object identity a /Dest array's page reference would need to
// be matched against a page dictionary, so every item's Page stays nil here.
func (b *pdfBackend) Outline() *model.Outline {
	root := b.reader.Trailer().Key("Root")
	if root.IsNull() {
		return nil
	}
	outlines := root.Key("Outlines")
	if outlines.IsNull() {
		return nil
	}
	first := outlines.Key("First")
	if first.IsNull() {
		return nil
	}

	items := walkOutlineSiblings(first, 1, 0)
	if len(items) == 0 {
		return nil
	}
	return &model.Outline{Items: items}
}

func walkOutlineSiblings(v pdf.Value, level, depth int) []*model.OutlineItem {
	if depth >= maxOutlineDepth || v.IsNull() {
		return nil
	}

	var items []*model.OutlineItem
	cur := v
	for i := 0; i < maxOutlineDepth && !cur.IsNull(); i++ {
		title := cur.Key("Title").Text()
		item := &model.OutlineItem{Title: title, Level: level}

		if first := cur.Key("First"); !first.IsNull() {
			item.Children = walkOutlineSiblings(first, level+1, depth+1)
		}
		items = append(items, item)

		cur = cur.Key("Next")
	}
	return items
}
