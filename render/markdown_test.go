package render

import (
	"strings"
	"testing"

	"unpdf/model"
)

func simplePageDoc(text string) *model.Document {
	page := &model.Page{Number: 1, Width: 612, Height: 792}
	page.Blocks = []model.Block{model.ParagraphBlock(model.WithText(text))}
	return &model.Document{Pages: []*model.Page{page}}
}

func TestRenderSimpleParagraph(t *testing.T) {
	doc := simplePageDoc("Hello, world!")
	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Hello, world!") {
		t.Fatalf("expected rendered content to contain text, got %q", out)
	}
}

func TestRenderHeading(t *testing.T) {
	p := model.WithText("Chapter One")
	p.Style.HeadingLevel = 2
	page := &model.Page{Number: 1, Blocks: []model.Block{model.ParagraphBlock(p)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "## Chapter One") {
		t.Fatalf("expected level-2 heading prefix, got %q", out)
	}
}

func TestRenderHeadingClampedToMaxLevel(t *testing.T) {
	p := model.WithText("Deep")
	p.Style.HeadingLevel = 9
	page := &model.Page{Number: 1, Blocks: []model.Block{model.ParagraphBlock(p)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	opts := DefaultOptions()
	opts.MaxHeadingLevel = 3
	out, err := ToMarkdown(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "### Deep") {
		t.Fatalf("expected heading clamped to level 3, got %q", out)
	}
}

func TestRenderWithFrontmatter(t *testing.T) {
	doc := simplePageDoc("Body text")
	doc.Metadata.Title = "My Doc"

	opts := DefaultOptions()
	opts.IncludeFrontmatter = true
	out, err := ToMarkdown(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "---\ntitle: \"My Doc\"") {
		t.Fatalf("expected YAML frontmatter prefix, got %q", out)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("a*b_c[d]e|f")
	want := `a\*b\_c\[d\]e\|f`
	if got != want {
		t.Errorf("escapeMarkdown: got %q, want %q", got, want)
	}
}

func TestEscapeMarkdownDoesNotEscapeBacktick(t *testing.T) {
	got := escapeMarkdown("`code`")
	if got != "`code`" {
		t.Errorf("expected backtick untouched per spec, got %q", got)
	}
}

func TestToRoman(t *testing.T) {
	cases := map[int]string{1: "i", 4: "iv", 9: "ix", 14: "xiv", 2024: "mmxxiv"}
	for n, want := range cases {
		if got := toRoman(n, false); got != want {
			t.Errorf("toRoman(%d) = %q, want %q", n, got, want)
		}
	}
	if got := toRoman(14, true); got != "XIV" {
		t.Errorf("toRoman(14, upper) = %q, want XIV", got)
	}
}

func TestApplyTextStyleNestingOrder(t *testing.T) {
	style := model.TextStyle{Bold: true, Italic: true}
	got := applyTextStyle("x", style)
	want := "***x***"
	if got != want {
		t.Errorf("expected innermost-first nesting %q, got %q", want, got)
	}
}

func TestRenderListItem(t *testing.T) {
	p := model.WithText("first item")
	p.Style.List = &model.ListInfo{
		Style: model.ListStyle{Kind: model.ListUnordered, Marker: '-'},
		Level: 0,
	}
	page := &model.Page{Number: 1, Blocks: []model.Block{model.ParagraphBlock(p)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "- first item") {
		t.Fatalf("expected unordered list marker, got %q", out)
	}
}

func TestRenderOrderedListItem(t *testing.T) {
	n := 3
	p := model.WithText("third")
	p.Style.List = &model.ListInfo{
		Style:  model.ListStyle{Kind: model.ListOrdered, NumberStyle: model.NumberDecimal},
		Number: &n,
	}
	page := &model.Page{Number: 1, Blocks: []model.Block{model.ParagraphBlock(p)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "3. third") {
		t.Fatalf("expected ordered marker '3.', got %q", out)
	}
}

func TestRenderTableMarkdown(t *testing.T) {
	table := model.WithHeader(1)
	table.AddRow(model.HeaderRow(model.TextCell("A"), model.TextCell("B")))
	table.AddRow(model.NewRow(model.TextCell("1"), model.TextCell("2")))
	page := &model.Page{Number: 1, Blocks: []model.Block{model.TableBlock(table)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "| A | B |") || !strings.Contains(out, "| --- | --- |") {
		t.Fatalf("expected pipe table with separator row, got %q", out)
	}
}

func TestRenderTableMarkdownMultiRowHeaderSeparatesTwice(t *testing.T) {
	table := model.WithHeader(2)
	table.AddRow(model.HeaderRow(model.TextCell("Group"), model.TextCell("Group")))
	table.AddRow(model.HeaderRow(model.TextCell("A"), model.TextCell("B")))
	table.AddRow(model.NewRow(model.TextCell("1"), model.TextCell("2")))
	page := &model.Page{Number: 1, Blocks: []model.Block{model.TableBlock(table)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out, "| --- | --- |"); n != 2 {
		t.Fatalf("expected a separator row after the first row and after the last header row (2 total), got %d in %q", n, out)
	}
}

func TestRenderTableHTMLFallbackOnMergedCells(t *testing.T) {
	table := model.NewTable()
	cell := model.TextCell("merged")
	cell.Colspan = 2
	table.AddRow(model.NewRow(cell))
	page := &model.Page{Number: 1, Blocks: []model.Block{model.TableBlock(table)}}
	doc := &model.Document{Pages: []*model.Page{page}}

	opts := DefaultOptions()
	opts.TableFallback = TableHTML
	out, err := ToMarkdown(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table>") || !strings.Contains(out, `colspan="2"`) {
		t.Fatalf("expected HTML table with colspan, got %q", out)
	}
}

func TestRenderHorizontalRule(t *testing.T) {
	page := &model.Page{Number: 1, Blocks: []model.Block{model.HorizontalRuleBlock()}}
	doc := &model.Document{Pages: []*model.Page{page}}

	out, err := ToMarkdown(doc, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "---" {
		t.Fatalf("expected standalone rule, got %q", out)
	}
}

func TestRenderImage(t *testing.T) {
	img := &model.ImageBlock{ResourceID: "img1", AltText: "a cat"}
	page := &model.Page{Number: 1, Blocks: []model.Block{{Kind: model.BlockImage, Image: img}}}
	doc := &model.Document{Pages: []*model.Page{page}}

	opts := DefaultOptions()
	opts.ImagePathPrefix = "images/"
	out, err := ToMarkdown(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "![a cat](images/img1)" {
		t.Fatalf("unexpected image markdown: %q", out)
	}
}

func TestRenderWithStatsCountsBlocks(t *testing.T) {
	heading := model.WithText("Title")
	heading.Style.HeadingLevel = 1
	para := model.WithText("body text")
	page := &model.Page{Number: 1, Blocks: []model.Block{
		model.ParagraphBlock(heading),
		model.ParagraphBlock(para),
	}}
	doc := &model.Document{Pages: []*model.Page{page}}

	opts := DefaultOptions()
	opts.CollectStats = true
	result, err := ToMarkdownWithStats(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.HeadingCount != 1 {
		t.Errorf("expected 1 heading, got %d", result.Stats.HeadingCount)
	}
	if result.Stats.PageCount != 1 {
		t.Errorf("expected 1 page, got %d", result.Stats.PageCount)
	}
	if result.Stats.WordCount == 0 {
		t.Error("expected nonzero word count")
	}
}

func TestRenderPageSelectionSkipsExcludedPages(t *testing.T) {
	page1 := &model.Page{Number: 1, Blocks: []model.Block{model.ParagraphBlock(model.WithText("page one"))}}
	page2 := &model.Page{Number: 2, Blocks: []model.Block{model.ParagraphBlock(model.WithText("page two"))}}
	doc := &model.Document{Pages: []*model.Page{page1, page2}}

	opts := DefaultOptions()
	opts.PageSelection = PageRange(2, 2)
	out, err := ToMarkdown(doc, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "page one") || !strings.Contains(out, "page two") {
		t.Fatalf("expected only page two rendered, got %q", out)
	}
}
