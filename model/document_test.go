package model

import (
	"strings"
	"testing"
	"time"
)

func TestMetadataToYAMLFrontmatter(t *testing.T) {
	m := Metadata{
		Title:     `A "Quoted" Title\Path`,
		Author:    "Jane Doe",
		PageCount: 3,
		Encrypted: false,
		Created:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	out := m.ToYAMLFrontmatter()

	if !strings.HasPrefix(out, "---\n") || !strings.HasSuffix(out, "---\n") {
		t.Fatalf("frontmatter not fenced: %q", out)
	}
	if !strings.Contains(out, `title: "A \"Quoted\" Title\\Path"`) {
		t.Errorf("title not escaped correctly: %q", out)
	}
	if !strings.Contains(out, "pages: 3") {
		t.Errorf("missing pages count: %q", out)
	}
	if strings.Contains(out, "encrypted") {
		t.Errorf("frontmatter should not include an encrypted key: %q", out)
	}
	if !strings.Contains(out, "created: 2024-01-02T03:04:05Z") {
		t.Errorf("created not RFC3339: %q", out)
	}
}

func TestDocumentValidatePageCount(t *testing.T) {
	d := &Document{
		Metadata: Metadata{PageCount: 2},
		Pages:    []*Page{Letter(1)},
	}
	if err := d.Validate(false); err == nil {
		t.Fatal("expected page count mismatch error")
	}
	if err := d.Validate(true); err != nil {
		t.Errorf("filtered validate should ignore page count: %v", err)
	}
}

func TestDocumentValidateSingleResource(t *testing.T) {
	res := ImageResource([]byte{0xFF, 0xD8, 0xFF}, "image/jpeg")
	d := &Document{
		Metadata:  Metadata{PageCount: 0},
		Resources: map[string]*Resource{"img1": res},
	}
	if err := d.Validate(false); err != nil {
		t.Errorf("single resource should validate: %v", err)
	}
}

func TestDocumentValidateOutline(t *testing.T) {
	d := &Document{
		Metadata: Metadata{PageCount: 0},
		Outline: &Outline{Items: []*OutlineItem{
			{Title: "Ch1", Level: 1, Children: []*OutlineItem{
				{Title: "1.1", Level: 3}, // wrong level: should be 2
			}},
		}},
	}
	if err := d.Validate(false); err == nil {
		t.Fatal("expected invalid outline level to fail validation")
	}
}

func TestOutlineTotalItems(t *testing.T) {
	o := &Outline{Items: []*OutlineItem{
		{Title: "A", Level: 1, Children: []*OutlineItem{
			{Title: "A.1", Level: 2},
			{Title: "A.2", Level: 2},
		}},
		{Title: "B", Level: 1},
	}}
	if got := o.TotalItems(); got != 4 {
		t.Errorf("TotalItems() = %d, want 4", got)
	}
}

func TestDocumentPlainText(t *testing.T) {
	p1 := Letter(1)
	p1.Blocks = []Block{ParagraphBlock(WithText("hello"))}
	p2 := Letter(2)
	p2.Blocks = []Block{ParagraphBlock(WithText("world"))}

	d := &Document{Pages: []*Page{p1, p2}}
	got := d.PlainText()
	want := "hello\n\nworld"
	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}
