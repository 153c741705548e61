// Package render turns a parsed model.Document into Markdown, plain text,
// or JSON, plus a streaming event iterator and extraction statistics, per
// spec §4.10/§4.11.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"unpdf/cleanup"
	"unpdf/errors"
)

// TableFallback selects how a table that can't be expressed in plain
// Markdown (a table with merged cells) is rendered.
//
// ENUM(markdown, html, ascii)
type TableFallback int

const (
	TableMarkdown TableFallback = iota
	TableHTML
	TableASCII
)

func (f TableFallback) String() string {
	switch f {
	case TableHTML:
		return "html"
	case TableASCII:
		return "ascii"
	default:
		return "markdown"
	}
}

// PageSelectionKind tags which field of PageSelection is populated.
//
// ENUM(all, range, pages)
type PageSelectionKind int

const (
	SelectAll PageSelectionKind = iota
	SelectRange
	SelectPages
)

// PageSelection restricts rendering (and, per §6, parsing) to a subset of
// 1-indexed pages. The zero value is SelectAll.
type PageSelection struct {
	Kind          PageSelectionKind
	RangeStart    int
	RangeEnd      int
	Pages         []int
}

// AllPages returns the selection that includes every page.
func AllPages() PageSelection { return PageSelection{Kind: SelectAll} }

// PageRange returns an inclusive, 1-indexed page-range selection.
func PageRange(start, end int) PageSelection {
	return PageSelection{Kind: SelectRange, RangeStart: start, RangeEnd: end}
}

// PageList returns a selection of specific 1-indexed pages.
func PageList(pages []int) PageSelection {
	return PageSelection{Kind: SelectPages, Pages: pages}
}

// Includes reports whether page (1-indexed) is part of the selection.
func (s PageSelection) Includes(page int) bool {
	switch s.Kind {
	case SelectRange:
		return page >= s.RangeStart && page <= s.RangeEnd
	case SelectPages:
		for _, p := range s.Pages {
			if p == page {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// ParsePageSelection parses the §6 page-selection string grammar:
// "all" | number ("-" number)? ("," number ("-" number)?)*, whitespace
// ignored. The result list is deduplicated and sorted when it names
// discrete/mixed pages; a single bare range collapses to SelectRange.
func ParsePageSelection(s string) (PageSelection, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "all" {
		return AllPages(), nil
	}

	if !strings.Contains(trimmed, ",") {
		if start, end, ok := splitRange(trimmed); ok {
			startN, err1 := parsePageNumber(start)
			endN, err2 := parsePageNumber(end)
			if err1 != nil || err2 != nil {
				return PageSelection{}, errors.New(errors.InvalidPageRange, fmt.Sprintf("invalid page range %q", s))
			}
			return PageRange(startN, endN), nil
		}
	}

	var pages []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if start, end, ok := splitRange(part); ok {
			startN, err1 := parsePageNumber(start)
			endN, err2 := parsePageNumber(end)
			if err1 != nil || err2 != nil {
				return PageSelection{}, errors.New(errors.InvalidPageRange, fmt.Sprintf("invalid page range %q", s))
			}
			for p := startN; p <= endN; p++ {
				if !seen[p] {
					seen[p] = true
					pages = append(pages, p)
				}
			}
			continue
		}
		n, err := parsePageNumber(part)
		if err != nil {
			return PageSelection{}, errors.New(errors.InvalidPageRange, fmt.Sprintf("invalid page number in %q", s))
		}
		if !seen[n] {
			seen[n] = true
			pages = append(pages, n)
		}
	}

	sort.Ints(pages)
	return PageList(pages), nil
}

func splitRange(s string) (start, end string, ok bool) {
	idx := strings.Index(s, "-")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return n, nil
}

// Options controls how a Document is rendered.
type Options struct {
	ImageDir            string
	ImagePathPrefix     string
	TableFallback       TableFallback
	MaxHeadingLevel     int
	IncludeFrontmatter  bool
	PreserveLineBreaks  bool
	ListMarker          rune
	EscapeSpecialChars  bool
	Cleanup             *cleanup.Options
	PageSelection       PageSelection
	LineWidth           int
	CollectStats        bool
}

// DefaultOptions returns the spec's §6 default render options.
func DefaultOptions() Options {
	return Options{
		TableFallback:      TableMarkdown,
		MaxHeadingLevel:    6,
		ListMarker:         '-',
		EscapeSpecialChars: true,
		PageSelection:      AllPages(),
	}
}

// WithCleanupPreset attaches the named cleanup preset to o and returns it.
func (o Options) WithCleanupPreset(p cleanup.Preset) Options {
	opts := cleanup.FromPreset(p)
	o.Cleanup = &opts
	return o
}
