package render

import (
	"fmt"
	"strings"

	"unpdf/cleanup"
	"unpdf/model"
)

// markdownSpecialChars is the escaped set per spec §4.10. Deliberately
// narrower than the original exporter (which also escapes backtick): the
// spec names exactly these six and says "only".
const markdownSpecialChars = "\\*_[]|"

// ToMarkdown renders doc as Markdown under opts.
func ToMarkdown(doc *model.Document, opts Options) (string, error) {
	result, err := ToMarkdownWithStats(doc, opts)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// ToMarkdownWithStats renders doc as Markdown and, when opts.CollectStats is
// set, returns extraction statistics alongside the content.
func ToMarkdownWithStats(doc *model.Document, opts Options) (Result, error) {
	r := &markdownRenderer{opts: opts}
	content := r.renderDocument(doc)

	if opts.Cleanup != nil {
		content = cleanup.New(*opts.Cleanup).Process(content)
	}

	if opts.CollectStats {
		r.stats.CountText(content)
		return NewResult(content, doc.Metadata, r.stats), nil
	}
	return ContentOnly(content), nil
}

type markdownRenderer struct {
	opts  Options
	stats Stats
}

func (r *markdownRenderer) renderDocument(doc *model.Document) string {
	var b strings.Builder

	if r.opts.IncludeFrontmatter {
		b.WriteString(doc.Metadata.ToYAMLFrontmatter())
		b.WriteString("\n")
	}

	first := true
	for i, page := range doc.Pages {
		pageNum := i + 1
		if !r.opts.PageSelection.Includes(pageNum) {
			continue
		}
		pageContent := r.renderPage(page)
		if strings.TrimSpace(pageContent) == "" {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		b.WriteString(pageContent)
		r.stats.AddPage()
	}

	return strings.TrimSpace(b.String())
}

func (r *markdownRenderer) renderPage(page *model.Page) string {
	var parts []string
	for _, block := range page.Blocks {
		if s := r.renderBlock(block); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *markdownRenderer) renderBlock(block model.Block) string {
	switch block.Kind {
	case model.BlockParagraph:
		if block.Paragraph != nil {
			return r.renderParagraph(block.Paragraph)
		}
	case model.BlockTable:
		if block.Table != nil {
			r.stats.AddTable()
			return r.renderTable(block.Table)
		}
	case model.BlockImage:
		if block.Image != nil {
			r.stats.AddImage()
			return r.renderImage(block.Image)
		}
	case model.BlockHorizontalRule:
		r.stats.AddHorizontalRule()
		return "---"
	case model.BlockPageBreak, model.BlockSectionBreak:
		return ""
	case model.BlockRaw:
		if block.Raw != nil {
			return block.Raw.Content
		}
	}
	return ""
}

func (r *markdownRenderer) renderParagraph(p *model.Paragraph) string {
	inline := r.renderInlineContent(p.Content)

	if p.Style.IsHeading() {
		level := p.Style.HeadingLevel
		if level > r.opts.MaxHeadingLevel {
			level = r.opts.MaxHeadingLevel
		}
		r.stats.AddHeading()
		return fmt.Sprintf("%s %s", strings.Repeat("#", level), inline)
	}

	if p.Style.List != nil {
		r.stats.AddListItem()
		return r.renderListItem(p.Style.List, inline)
	}

	r.stats.AddParagraph()
	return inline
}

func (r *markdownRenderer) renderListItem(list *model.ListInfo, inline string) string {
	indent := strings.Repeat("  ", list.Level)
	marker := r.listMarker(list)
	return fmt.Sprintf("%s%s %s", indent, marker, inline)
}

func (r *markdownRenderer) listMarker(list *model.ListInfo) string {
	if list.Style.Kind == model.ListUnordered {
		m := list.Style.Marker
		if m == 0 {
			m = r.opts.ListMarker
		}
		return string(m) + ""
	}

	n := list.Style.Start
	if n == 0 {
		n = 1
	}
	if list.Number != nil {
		n = *list.Number
	}
	return formatOrdinal(n, list.Style.NumberStyle) + "."
}

func formatOrdinal(n int, style model.NumberStyle) string {
	switch style {
	case model.NumberLowerAlpha:
		return alphaOrdinal(n, false)
	case model.NumberUpperAlpha:
		return alphaOrdinal(n, true)
	case model.NumberLowerRoman:
		return toRoman(n, false)
	case model.NumberUpperRoman:
		return toRoman(n, true)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func alphaOrdinal(n int, upper bool) string {
	if n < 1 {
		n = 1
	}
	var b strings.Builder
	for n > 0 {
		n--
		c := byte('a' + n%26)
		if upper {
			c = byte('A' + n%26)
		}
		b.WriteByte(c)
		n /= 26
	}
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// toRoman converts n (1..3999) to a Roman numeral, lowercase or uppercase.
func toRoman(n int, upper bool) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			b.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	s := b.String()
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

func (r *markdownRenderer) renderInlineContent(content []model.InlineContent) string {
	var b strings.Builder
	for _, c := range content {
		switch c.Kind {
		case model.InlineText:
			if c.Text != nil {
				b.WriteString(r.renderTextRun(*c.Text))
			}
		case model.InlineLineBreak:
			if r.opts.PreserveLineBreaks {
				b.WriteString("  \n")
			} else {
				b.WriteString(" ")
			}
		case model.InlineLinkKind:
			if c.Link != nil {
				text := r.escapeIfNeeded(c.Link.Text)
				b.WriteString(fmt.Sprintf("[%s](%s)", text, c.Link.URL))
			}
		case model.InlineImageKind:
			if c.Image != nil {
				b.WriteString(r.renderInlineImage(*c.Image))
			}
		}
	}
	return b.String()
}

func (r *markdownRenderer) renderTextRun(run model.TextRun) string {
	text := r.escapeIfNeeded(run.Text)
	return applyTextStyle(text, run.Style)
}

func (r *markdownRenderer) escapeIfNeeded(text string) string {
	if r.opts.EscapeSpecialChars {
		return escapeMarkdown(text)
	}
	return text
}

// escapeMarkdown backslash-escapes the spec's six special characters.
func escapeMarkdown(text string) string {
	var b strings.Builder
	for _, c := range text {
		if strings.ContainsRune(markdownSpecialChars, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// applyTextStyle wraps text in Markdown emphasis markers, innermost-first:
// strikethrough, italic, bold, superscript, subscript, underline.
func applyTextStyle(text string, style model.TextStyle) string {
	if text == "" {
		return text
	}
	if style.Strikethrough {
		text = "~~" + text + "~~"
	}
	if style.Italic {
		text = "*" + text + "*"
	}
	if style.Bold {
		text = "**" + text + "**"
	}
	if style.Superscript {
		text = "^" + text + "^"
	}
	if style.Subscript {
		text = "~" + text + "~"
	}
	if style.Underline {
		text = "<u>" + text + "</u>"
	}
	return text
}

func (r *markdownRenderer) renderInlineImage(img model.InlineImage) string {
	return fmt.Sprintf("![%s](%s%s)", img.AltText, r.opts.ImagePathPrefix, img.ResourceID)
}

func (r *markdownRenderer) renderImage(img *model.ImageBlock) string {
	return fmt.Sprintf("![%s](%s%s)", img.AltText, r.opts.ImagePathPrefix, img.ResourceID)
}

func (r *markdownRenderer) renderTable(t *model.Table) string {
	if t.IsEmpty() {
		return ""
	}
	if t.HasMergedCells() && r.opts.TableFallback == TableHTML {
		return r.renderTableHTML(t)
	}
	return r.renderTableMarkdown(t)
}

func (r *markdownRenderer) renderTableMarkdown(t *model.Table) string {
	var lines []string
	headerRows := t.HeaderRows
	if headerRows == 0 {
		headerRows = 1
	}
	if headerRows > len(t.Rows) {
		headerRows = len(t.Rows)
	}

	for i, row := range t.Rows {
		lines = append(lines, r.renderMarkdownRow(row))
		if i == 0 || (headerRows > 0 && i == headerRows-1) {
			lines = append(lines, r.renderSeparatorRow(row))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *markdownRenderer) renderMarkdownRow(row model.TableRow) string {
	var cells []string
	for _, cell := range row.Cells {
		cells = append(cells, r.renderCellText(cell))
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func (r *markdownRenderer) renderCellText(cell model.TableCell) string {
	var parts []string
	for _, p := range cell.Content {
		parts = append(parts, r.renderInlineContent(p.Content))
	}
	text := strings.Join(parts, " ")
	return strings.ReplaceAll(text, "\n", " ")
}

func (r *markdownRenderer) renderSeparatorRow(row model.TableRow) string {
	var cells []string
	for _, cell := range row.Cells {
		switch cell.Alignment {
		case model.AlignCenter:
			cells = append(cells, ":---:")
		case model.AlignRight:
			cells = append(cells, "---:")
		default:
			cells = append(cells, "---")
		}
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func (r *markdownRenderer) renderTableHTML(t *model.Table) string {
	var b strings.Builder
	b.WriteString("<table>\n")

	headerRows := t.Header()
	if len(headerRows) > 0 {
		b.WriteString("<thead>\n")
		for _, row := range headerRows {
			b.WriteString(r.renderHTMLRow(row, true))
		}
		b.WriteString("</thead>\n")
	}

	bodyRows := t.Body()
	if len(bodyRows) > 0 {
		b.WriteString("<tbody>\n")
		for _, row := range bodyRows {
			b.WriteString(r.renderHTMLRow(row, false))
		}
		b.WriteString("</tbody>\n")
	}

	b.WriteString("</table>")
	return b.String()
}

func (r *markdownRenderer) renderHTMLRow(row model.TableRow, header bool) string {
	tag := "td"
	if header {
		tag = "th"
	}
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range row.Cells {
		var attrs strings.Builder
		if cell.Rowspan > 1 {
			fmt.Fprintf(&attrs, " rowspan=\"%d\"", cell.Rowspan)
		}
		if cell.Colspan > 1 {
			fmt.Fprintf(&attrs, " colspan=\"%d\"", cell.Colspan)
		}
		fmt.Fprintf(&b, "<%s%s>%s</%s>", tag, attrs.String(), r.renderCellText(cell), tag)
	}
	b.WriteString("</tr>\n")
	return b.String()
}
