package model

import "testing"

type recordingVisitor struct {
	BaseVisitor
	sawTable   bool
	headingLvl int
}

func (v *recordingVisitor) VisitTable(*Table) Replacement {
	v.sawTable = true
	return Skip()
}

func (v *recordingVisitor) VisitHeading(text string, level int) Replacement {
	v.headingLvl = level
	return Replace("## " + text)
}

func TestDocumentWalk(t *testing.T) {
	heading := WithText("Intro")
	heading.Style.HeadingLevel = 2

	page := Letter(1)
	page.Blocks = []Block{
		ParagraphBlock(heading),
		TableBlock(NewTable()),
	}
	d := &Document{Pages: []*Page{page}}

	v := &recordingVisitor{}
	var emitted []Replacement
	d.Walk(v, nil, func(b Block, r Replacement) {
		emitted = append(emitted, r)
	})

	if !v.sawTable {
		t.Error("expected table visit")
	}
	if v.headingLvl != 2 {
		t.Errorf("headingLvl = %d, want 2", v.headingLvl)
	}
	if len(emitted) != 2 {
		t.Fatalf("emitted %d blocks, want 2", len(emitted))
	}
	if emitted[0].Action != ActionReplace || emitted[0].Text != "## Intro" {
		t.Errorf("heading replacement = %+v", emitted[0])
	}
	if emitted[1].Action != ActionSkip {
		t.Errorf("table action = %v, want ActionSkip", emitted[1].Action)
	}
}

func TestDocumentWalkPageFilter(t *testing.T) {
	p1 := Letter(1)
	p1.Blocks = []Block{ParagraphBlock(WithText("one"))}
	p2 := Letter(2)
	p2.Blocks = []Block{ParagraphBlock(WithText("two"))}
	d := &Document{Pages: []*Page{p1, p2}}

	var seen []int
	d.Walk(&BaseVisitor{}, func(n int) bool { return n == 2 }, func(Block, Replacement) {
		seen = append(seen, 1)
	})
	if len(seen) != 1 {
		t.Errorf("filtered walk emitted %d blocks, want 1", len(seen))
	}
}
