package parse

import (
	"strconv"
	"strings"
	"testing"

	"unpdf/backend"
	"unpdf/model"
	"unpdf/render"
)

// fakeBackend is a minimal in-memory backend.Backend used to drive buildPage
// / buildDocument without a real PDF file.
type fakeBackend struct {
	pages   []int
	content map[int][]byte
	fonts   map[int][]backend.FontInfo
	images  map[int][]backend.ImageXObject
	info    backend.Info
	outline *model.Outline
	failOn  int // page number whose PageContent should error; 0 = never
}

func (b *fakeBackend) Pages() []int { return b.pages }

func (b *fakeBackend) PageSize(page int) (float64, float64, error) { return 612, 792, nil }

func (b *fakeBackend) PageRotation(page int) (int, error) { return 0, nil }

func (b *fakeBackend) PageFonts(page int) ([]backend.FontInfo, error) { return b.fonts[page], nil }

func (b *fakeBackend) PageContent(page int) ([]byte, error) {
	if b.failOn != 0 && page == b.failOn {
		return nil, errTestPage
	}
	return b.content[page], nil
}

func (b *fakeBackend) PageImages(page int) ([]backend.ImageXObject, error) { return b.images[page], nil }

func (b *fakeBackend) DecodeText(page int, fontName string, data []byte) (string, error) {
	return string(data), nil
}

func (b *fakeBackend) Info() backend.Info { return b.info }

func (b *fakeBackend) Outline() *model.Outline { return b.outline }

func (b *fakeBackend) Close() error { return nil }

var errTestPage = fakeErr("page content unavailable")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func simpleContent(fontSize int, y int, text string) []byte {
	return []byte("BT /F1 " + strconv.Itoa(fontSize) + " Tf 72 " + strconv.Itoa(y) + " Td (" + text + ") Tj ET ")
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		pages: []int{1, 2},
		content: map[int][]byte{
			1: append(simpleContent(24, 700, "A Heading"), simpleContent(12, 650, "Body paragraph text here.")...),
			2: simpleContent(12, 700, "Second page paragraph."),
		},
		fonts: map[int][]backend.FontInfo{
			1: {{ResourceName: "F1", BaseFont: "Helvetica"}},
			2: {{ResourceName: "F1", BaseFont: "Helvetica"}},
		},
		info: backend.Info{Title: "Test Doc", Keywords: "alpha, beta"},
	}
}

func TestBuildDocumentTwoPages(t *testing.T) {
	b := newFakeBackend()
	doc, err := buildDocument(b, DefaultOptions())
	if err != nil {
		t.Fatalf("buildDocument() error = %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("len(doc.Pages) = %d, want 2", len(doc.Pages))
	}
	if doc.Metadata.Title != "Test Doc" {
		t.Errorf("Metadata.Title = %q, want %q", doc.Metadata.Title, "Test Doc")
	}
	if len(doc.Metadata.Keywords) != 2 {
		t.Errorf("Metadata.Keywords = %v, want 2 entries", doc.Metadata.Keywords)
	}
}

func TestBuildDocumentPageSelection(t *testing.T) {
	b := newFakeBackend()
	opts := DefaultOptions()
	opts.Pages.Kind = render.SelectRange
	opts.Pages.RangeStart = 1
	opts.Pages.RangeEnd = 1

	doc, err := buildDocument(b, opts)
	if err != nil {
		t.Fatalf("buildDocument() error = %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("len(doc.Pages) = %d, want 1 (page-filtered)", len(doc.Pages))
	}
}

func TestBuildDocumentStrictErrorAborts(t *testing.T) {
	b := newFakeBackend()
	b.failOn = 2
	opts := DefaultOptions()
	opts.Parallel = false

	if _, err := buildDocument(b, opts); err == nil {
		t.Fatal("expected error in Strict mode when a page fails")
	}
}

func TestBuildDocumentLenientErrorProducesErrorPage(t *testing.T) {
	b := newFakeBackend()
	b.failOn = 2
	opts := DefaultOptions()
	opts.ErrorMode = Lenient
	opts.Parallel = false

	doc, err := buildDocument(b, opts)
	if err != nil {
		t.Fatalf("buildDocument() error = %v, want nil in Lenient mode", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("len(doc.Pages) = %d, want 2", len(doc.Pages))
	}
	page2 := doc.Pages[1]
	if len(page2.Blocks) != 1 || page2.Blocks[0].Kind != model.BlockRaw {
		t.Errorf("page 2 = %+v, want single raw error block", page2)
	}
}

func TestBuildPageDetectsHeading(t *testing.T) {
	b := newFakeBackend()
	page, err := buildPage(b, 1, DefaultOptions())
	if err != nil {
		t.Fatalf("buildPage() error = %v", err)
	}
	var sawHeading, sawParagraph bool
	for _, blk := range page.Blocks {
		if blk.Kind != model.BlockParagraph || blk.Paragraph == nil {
			continue
		}
		if blk.Paragraph.Style.IsHeading() {
			sawHeading = true
		} else if strings.Contains(blk.Paragraph.PlainText(), "Body paragraph") {
			sawParagraph = true
		}
	}
	if !sawHeading {
		t.Error("expected the large-font line to be classified as a heading")
	}
	if !sawParagraph {
		t.Error("expected the body-font line to survive as a plain paragraph")
	}
}

func TestDetectListMarkerBullet(t *testing.T) {
	info, ok := detectListMarker("- first item")
	if !ok {
		t.Fatal("expected bullet line to be detected as a list item")
	}
	if info.Style.Kind != model.ListUnordered {
		t.Errorf("Style.Kind = %v, want ListUnordered", info.Style.Kind)
	}
}

func TestDetectListMarkerNumbered(t *testing.T) {
	info, ok := detectListMarker("1. first item")
	if !ok {
		t.Fatal("expected numbered line to be detected as a list item")
	}
	if info.Style.Kind != model.ListOrdered || info.Style.NumberStyle != model.NumberDecimal {
		t.Errorf("got %+v, want ordered decimal", info.Style)
	}
	if info.Number == nil || *info.Number != 1 {
		t.Errorf("Number = %v, want 1", info.Number)
	}
}

func TestDetectListMarkerNone(t *testing.T) {
	if _, ok := detectListMarker("Just a regular sentence."); ok {
		t.Error("expected a plain sentence not to be detected as a list item")
	}
}

func TestErrorPageContainsPageNumber(t *testing.T) {
	page := errorPage(3, errTestPage)
	if page.Number != 3 {
		t.Errorf("Number = %d, want 3", page.Number)
	}
	if !strings.Contains(page.Blocks[0].Raw.Content, "page 3") {
		t.Errorf("raw content = %q, want mention of page 3", page.Blocks[0].Raw.Content)
	}
}

func TestSplitKeywords(t *testing.T) {
	got := splitKeywords(" alpha, beta ;gamma")
	want := []string{"alpha", "beta", "gamma"}
	if len(got) != len(want) {
		t.Fatalf("splitKeywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitKeywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
