// Package model holds the in-memory representation a parse produces:
// Document, Page, Block variants, Paragraph/inline content, Table and
// Resource. Nodes are built once by the parse pipeline and are treated as
// read-only from every renderer's perspective; only the cleanup pipeline
// touches rendered strings, never these nodes.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Document is the root of the parsed representation of a PDF.
type Document struct {
	Metadata  Metadata             `json:"metadata"`
	Pages     []*Page              `json:"pages"`
	Resources map[string]*Resource `json:"resources,omitempty"`
	Outline   *Outline             `json:"outline,omitempty"`
}

// Metadata mirrors a PDF's info dictionary plus a handful of values derived
// during parsing (page count, encryption flag).
type Metadata struct {
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Keywords   []string  `json:"keywords,omitempty"`
	Creator    string    `json:"creator,omitempty"`
	Producer   string    `json:"producer,omitempty"`
	Created    time.Time `json:"created,omitempty"`
	Modified   time.Time `json:"modified,omitempty"`
	PDFVersion string    `json:"pdfVersion,omitempty"`
	PageCount  int       `json:"pageCount"`
	Encrypted  bool      `json:"encrypted"`
	Tagged     bool      `json:"tagged"`
}

// ToYAMLFrontmatter renders the subset of Metadata renderers embed ahead of
// Markdown output, matching the escaping rules of the original exporter:
// backslash and double-quote are escaped, embedded newlines become the
// two-character sequence "\n".
func (m Metadata) ToYAMLFrontmatter() string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "title", m.Title)
	writeField(&b, "author", m.Author)
	writeField(&b, "subject", m.Subject)
	if len(m.Keywords) > 0 {
		writeField(&b, "keywords", strings.Join(m.Keywords, ", "))
	}
	writeField(&b, "creator", m.Creator)
	writeField(&b, "producer", m.Producer)
	if !m.Created.IsZero() {
		fmt.Fprintf(&b, "created: %s\n", m.Created.Format(time.RFC3339))
	}
	if !m.Modified.IsZero() {
		fmt.Fprintf(&b, "modified: %s\n", m.Modified.Format(time.RFC3339))
	}
	if m.PDFVersion != "" {
		writeField(&b, "pdf_version", m.PDFVersion)
	}
	fmt.Fprintf(&b, "pages: %d\n", m.PageCount)
	b.WriteString("---\n")
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: \"%s\"\n", key, escapeYAML(value))
}

func escapeYAML(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// Validate checks the invariants spec'd for a Document: page count
// consistency (skipped when the document was built from a filtered page
// selection), unique resource ids, and a well-formed outline tree.
func (d *Document) Validate(pageFiltered bool) error {
	if !pageFiltered && d.Metadata.PageCount != len(d.Pages) {
		return fmt.Errorf("model: metadata page_count %d disagrees with %d parsed pages", d.Metadata.PageCount, len(d.Pages))
	}
	seen := make(map[string]struct{}, len(d.Resources))
	for id := range d.Resources {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("model: duplicate resource id %q", id)
		}
		seen[id] = struct{}{}
	}
	if d.Outline != nil {
		for _, item := range d.Outline.Items {
			if err := item.validate(1); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlainText joins every page's plain text with a blank line between pages.
func (d *Document) PlainText() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if t := p.PlainText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Outline is the document's bookmark tree, when present.
type Outline struct {
	Items []*OutlineItem `json:"items"`
}

// TotalItems counts every item in the tree, recursively.
func (o *Outline) TotalItems() int {
	if o == nil {
		return 0
	}
	var n int
	var walk func([]*OutlineItem)
	walk = func(items []*OutlineItem) {
		n += len(items)
		for _, it := range items {
			walk(it.Children)
		}
	}
	walk(o.Items)
	return n
}

// OutlineItem is one node of the bookmark tree. Page is nil when the
// destination could not be resolved to a concrete page (§4.8: only direct
// references and simple GoTo actions are guaranteed to resolve).
type OutlineItem struct {
	Title    string         `json:"title"`
	Page     *int           `json:"page,omitempty"`
	Level    int            `json:"level"`
	Children []*OutlineItem `json:"children,omitempty"`
}

func (it *OutlineItem) validate(level int) error {
	if it.Level != level {
		return fmt.Errorf("model: outline item %q has level %d, expected %d", it.Title, it.Level, level)
	}
	for _, c := range it.Children {
		if err := c.validate(level + 1); err != nil {
			return err
		}
	}
	return nil
}
