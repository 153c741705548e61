package render

import (
	"fmt"
	"strings"

	"unpdf/model"
)

// RenderEventKind tags which field of RenderEvent applies.
//
// ENUM(documentStart, pageStart, block, pageEnd, documentEnd, frontmatter)
type RenderEventKind int

const (
	EventDocumentStart RenderEventKind = iota
	EventPageStart
	EventBlock
	EventPageEnd
	EventDocumentEnd
	EventFrontmatter
)

// RenderEvent is one unit of output from a StreamingRenderer.
type RenderEvent struct {
	Kind RenderEventKind

	Metadata  model.Metadata // DocumentStart
	PageCount int            // DocumentStart
	Number    int            // PageStart, PageEnd
	Text      string         // Block, Frontmatter
}

// HasContent reports whether the event carries renderable text.
func (e RenderEvent) HasContent() bool {
	return e.Kind == EventBlock || e.Kind == EventFrontmatter
}

// Content returns the event's text and true when HasContent is true.
func (e RenderEvent) Content() (string, bool) {
	if e.HasContent() {
		return e.Text, true
	}
	return "", false
}

// IsDocumentBoundary reports whether this is a DocumentStart/DocumentEnd event.
func (e RenderEvent) IsDocumentBoundary() bool {
	return e.Kind == EventDocumentStart || e.Kind == EventDocumentEnd
}

// IsPageBoundary reports whether this is a PageStart/PageEnd event.
func (e RenderEvent) IsPageBoundary() bool {
	return e.Kind == EventPageStart || e.Kind == EventPageEnd
}

type streamState int

const (
	streamInitial streamState = iota
	streamFrontmatter
	streamDocumentStarted
	streamInPage
	streamBetweenPages
	streamPagesComplete
	streamDone
)

// StreamingRenderer yields Markdown rendering events one at a time via
// repeated calls to Next, so a large document's rendered output never
// needs to live entirely in memory at once.
type StreamingRenderer struct {
	doc     *model.Document
	opts    Options
	state   streamState
	curPage int

	pageIndex  int
	blockIndex int
	nextPage   int
}

// NewStreamingRenderer builds a renderer over doc under opts.
func NewStreamingRenderer(doc *model.Document, opts Options) *StreamingRenderer {
	return &StreamingRenderer{doc: doc, opts: opts, state: streamInitial}
}

// PageCount returns the document's page count.
func (r *StreamingRenderer) PageCount() int { return len(r.doc.Pages) }

// IsDone reports whether rendering has completed.
func (r *StreamingRenderer) IsDone() bool { return r.state == streamDone }

// CurrentPage returns the 1-indexed page number currently being processed.
func (r *StreamingRenderer) CurrentPage() int { return r.curPage }

func (r *StreamingRenderer) findNextPage(start int) (int, bool) {
	for i := start; i < len(r.doc.Pages); i++ {
		if r.opts.PageSelection.Includes(i + 1) {
			return i, true
		}
	}
	return 0, false
}

// Next advances the state machine and returns the next event, or
// (RenderEvent{}, false) once rendering is complete. Calling Next again
// after it returns false is a no-op that keeps returning false.
func (r *StreamingRenderer) Next() (RenderEvent, bool) {
	for {
		switch r.state {
		case streamInitial:
			if r.opts.IncludeFrontmatter {
				r.state = streamFrontmatter
				return RenderEvent{Kind: EventFrontmatter, Text: r.doc.Metadata.ToYAMLFrontmatter()}, true
			}
			r.state = streamDocumentStarted
			return RenderEvent{Kind: EventDocumentStart, Metadata: r.doc.Metadata, PageCount: len(r.doc.Pages)}, true

		case streamFrontmatter:
			r.state = streamDocumentStarted
			return RenderEvent{Kind: EventDocumentStart, Metadata: r.doc.Metadata, PageCount: len(r.doc.Pages)}, true

		case streamDocumentStarted:
			if idx, ok := r.findNextPage(0); ok {
				r.curPage = r.doc.Pages[idx].Number
				r.pageIndex, r.blockIndex = idx, 0
				r.state = streamInPage
				return RenderEvent{Kind: EventPageStart, Number: r.curPage}, true
			}
			r.state = streamPagesComplete

		case streamInPage:
			page := r.doc.Pages[r.pageIndex]
			if r.blockIndex < len(page.Blocks) {
				block := page.Blocks[r.blockIndex]
				content := r.renderBlock(block)
				r.blockIndex++
				if content == "" {
					continue
				}
				return RenderEvent{Kind: EventBlock, Text: content}, true
			}
			pageNum := page.Number
			r.nextPage = r.pageIndex + 1
			r.state = streamBetweenPages
			return RenderEvent{Kind: EventPageEnd, Number: pageNum}, true

		case streamBetweenPages:
			if idx, ok := r.findNextPage(r.nextPage); ok {
				r.curPage = r.doc.Pages[idx].Number
				r.pageIndex, r.blockIndex = idx, 0
				r.state = streamInPage
				return RenderEvent{Kind: EventPageStart, Number: r.curPage}, true
			}
			r.state = streamPagesComplete

		case streamPagesComplete:
			r.state = streamDone
			return RenderEvent{Kind: EventDocumentEnd}, true

		case streamDone:
			return RenderEvent{}, false
		}
	}
}

func (r *StreamingRenderer) renderBlock(block model.Block) string {
	mr := &markdownRenderer{opts: r.opts}
	switch block.Kind {
	case model.BlockParagraph:
		if block.Paragraph == nil {
			return ""
		}
		p := block.Paragraph
		if p.Style.IsHeading() {
			level := p.Style.HeadingLevel
			if level > r.opts.MaxHeadingLevel {
				level = r.opts.MaxHeadingLevel
			}
			inline := mr.renderInlineContent(p.Content)
			return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), inline)
		}
		if p.Style.List != nil {
			return mr.renderListItem(p.Style.List, mr.renderInlineContent(p.Content)) + "\n"
		}
		inline := mr.renderInlineContent(p.Content)
		if inline == "" {
			return ""
		}
		return inline + "\n\n"

	case model.BlockTable:
		if block.Table == nil || block.Table.IsEmpty() {
			return ""
		}
		return mr.renderTable(block.Table) + "\n\n"

	case model.BlockImage:
		if block.Image == nil {
			return ""
		}
		return mr.renderImage(block.Image) + "\n\n"

	case model.BlockHorizontalRule:
		return "\n---\n\n"

	case model.BlockPageBreak, model.BlockSectionBreak:
		return "\n\n"

	case model.BlockRaw:
		if block.Raw == nil {
			return ""
		}
		return block.Raw.Content + "\n\n"
	}
	return ""
}

// CollectContent drains a StreamingRenderer into a single trimmed string,
// concatenating every content-bearing event.
func CollectContent(r *StreamingRenderer) string {
	var b strings.Builder
	for {
		event, ok := r.Next()
		if !ok {
			break
		}
		if text, has := event.Content(); has {
			b.WriteString(text)
		}
	}
	return strings.TrimSpace(b.String())
}
