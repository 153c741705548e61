package render

import (
	"strings"

	"unpdf/cleanup"
	"unpdf/model"
)

// ToText renders doc as plain text under opts: page selection is applied,
// the optional cleanup pipeline runs over the joined text, and the result
// is trimmed.
func ToText(doc *model.Document, opts Options) (string, error) {
	result, err := ToTextWithStats(doc, opts)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// ToTextWithStats is ToText plus extraction statistics when requested.
func ToTextWithStats(doc *model.Document, opts Options) (Result, error) {
	var stats Stats
	var parts []string

	for i, page := range doc.Pages {
		pageNum := i + 1
		if !opts.PageSelection.Includes(pageNum) {
			continue
		}
		if t := page.PlainText(); t != "" {
			parts = append(parts, t)
			stats.AddPage()
			countPageBlocks(page, &stats)
		}
	}

	content := strings.Join(parts, "\n\n")

	if opts.IncludeFrontmatter {
		content = doc.Metadata.ToYAMLFrontmatter() + "\n" + content
	}

	if opts.Cleanup != nil {
		content = cleanup.New(*opts.Cleanup).Process(content)
	} else {
		content = strings.TrimSpace(content)
	}

	if opts.CollectStats {
		stats.CountText(content)
		return NewResult(content, doc.Metadata, stats), nil
	}
	return ContentOnly(content), nil
}

func countPageBlocks(page *model.Page, stats *Stats) {
	for _, block := range page.Blocks {
		switch block.Kind {
		case model.BlockParagraph:
			if block.Paragraph != nil {
				if block.Paragraph.Style.IsHeading() {
					stats.AddHeading()
				} else if block.Paragraph.Style.List != nil {
					stats.AddListItem()
				} else {
					stats.AddParagraph()
				}
			}
		case model.BlockTable:
			stats.AddTable()
		case model.BlockImage:
			stats.AddImage()
		case model.BlockHorizontalRule:
			stats.AddHorizontalRule()
		}
	}
}
