// Package parse is the top-level entry point: it drives the backend,
// content-stream interpreter, layout analysis, and table detection into a
// complete model.Document, per spec §5/§6/§7.
package parse

import (
	"unpdf/config"
	"unpdf/render"
)

// ErrorMode controls how a page-level failure is handled during Parse.
//
// ENUM(strict, lenient)
type ErrorMode int

const (
	// Strict aborts the whole parse on the first page-level error.
	Strict ErrorMode = iota
	// Lenient records the page as a Raw block carrying an error note and
	// continues with the remaining pages.
	Lenient
)

// ExtractMode controls how much of each page is built.
//
// ENUM(full, textOnly, structureOnly)
type ExtractMode int

const (
	// Full builds paragraphs, tables, images and heading/list structure.
	Full ExtractMode = iota
	// TextOnly builds paragraphs only: detected tables are dropped (their
	// text stays as prose) and no image blocks are added.
	TextOnly
	// StructureOnly builds heading/list/table/image structure but replaces
	// paragraph text with an empty run, for layout-shape-only callers.
	StructureOnly
)

// Options controls a Parse call. Per REDESIGN FLAGS(a) this is a plain
// struct, not a builder chain.
type Options struct {
	ErrorMode        ErrorMode
	ExtractMode      ExtractMode
	MemoryLimitMB    int // 0 = unlimited
	ExtractResources bool
	Parallel         bool
	Pages            render.PageSelection
	Password         config.SecretString
}

// DefaultOptions returns the original's defaults: strict, full extraction,
// resources extracted, parallel, every page.
func DefaultOptions() Options {
	return Options{
		ErrorMode:        Strict,
		ExtractMode:      Full,
		ExtractResources: true,
		Parallel:         true,
		Pages:            render.AllPages(),
	}
}
