package parse

import (
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"unpdf/backend"
	"unpdf/interpret"
	"unpdf/layout"
	"unpdf/model"
	"unpdf/table"

	unerrors "unpdf/errors"
)

// Parse opens and fully parses the PDF at path.
func Parse(path string, opts Options) (*model.Document, error) {
	b, err := backend.LoadFile(path, backend.LoadOptions{Password: opts.Password})
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return buildDocument(b, opts)
}

// ParseBytes parses a PDF already held in memory.
func ParseBytes(data []byte, opts Options) (*model.Document, error) {
	b, err := backend.LoadBytes(data, backend.LoadOptions{Password: opts.Password})
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return buildDocument(b, opts)
}

// ParseReader parses a PDF read in full from r.
func ParseReader(r io.Reader, opts Options) (*model.Document, error) {
	b, err := backend.LoadReader(r, backend.LoadOptions{Password: opts.Password})
	if err != nil {
		return nil, err
	}
	defer b.Close()
	return buildDocument(b, opts)
}

// ParseFileHandle is a thin convenience wrapper for callers that already
// hold an *os.File (e.g. the CLI), so they don't need to re-derive a path.
func ParseFileHandle(f *os.File, opts Options) (*model.Document, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, unerrors.Wrap(unerrors.Io, "reading PDF file handle", err)
	}
	return ParseBytes(data, opts)
}

func buildDocument(b backend.Backend, opts Options) (*model.Document, error) {
	allPages := b.Pages()
	selected := make([]int, 0, len(allPages))
	for _, p := range allPages {
		if opts.Pages.Includes(p) {
			selected = append(selected, p)
		}
	}

	pages := make([]*model.Page, len(selected))
	var (
		mu       sync.Mutex
		combined error
	)

	buildOne := func(i int) error {
		pageNum := selected[i]
		page, err := buildPage(b, pageNum, opts)
		if err != nil {
			if opts.ErrorMode == Strict {
				return err
			}
			page = errorPage(pageNum, err)
		}
		mu.Lock()
		pages[i] = page
		mu.Unlock()
		return nil
	}

	if opts.Parallel && len(selected) > 1 {
		var wg sync.WaitGroup
		errs := make([]error, len(selected))
		for i := range selected {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = buildOne(i)
			}(i)
		}
		wg.Wait()
		for _, e := range errs {
			combined = multierr.Append(combined, e)
		}
	} else {
		for i := range selected {
			combined = multierr.Append(combined, buildOne(i))
		}
	}

	if combined != nil {
		return nil, combined
	}

	info := b.Info()
	doc := &model.Document{
		Metadata: model.Metadata{
			Title:      info.Title,
			Author:     info.Author,
			Subject:    info.Subject,
			Keywords:   splitKeywords(info.Keywords),
			Creator:    info.Creator,
			Producer:   info.Producer,
			Created:    info.Created,
			Modified:   info.Modified,
			PDFVersion: info.PDFVersion,
			PageCount:  len(allPages),
			Encrypted:  info.Encrypted,
			Tagged:     info.Tagged,
		},
		Pages: pages,
	}

	if opts.ExtractResources {
		doc.Resources = extractResources(b, selected, pages)
	}

	doc.Outline = b.Outline()

	pageFiltered := len(selected) != len(allPages)
	if err := doc.Validate(pageFiltered); err != nil {
		return nil, unerrors.Wrap(unerrors.PdfParse, "validating parsed document", err)
	}

	return doc, nil
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func errorPage(pageNum int, err error) *model.Page {
	page := model.Letter(pageNum)
	page.Blocks = []model.Block{{
		Kind: model.BlockRaw,
		Raw:  &model.RawBlock{Content: "[page " + strconv.Itoa(pageNum) + " failed to parse: " + err.Error() + "]"},
	}}
	return page
}

func buildPage(b backend.Backend, pageNum int, opts Options) (*model.Page, error) {
	width, height, err := b.PageSize(pageNum)
	if err != nil {
		return nil, err
	}
	rotation, err := b.PageRotation(pageNum)
	if err != nil {
		return nil, err
	}

	page := &model.Page{Number: pageNum, Width: width, Height: height, Rotation: model.Rotation(rotation)}

	if opts.ExtractMode == StructureOnly {
		// fall through: still build blocks, text runs get emptied below.
	}

	fonts, err := b.PageFonts(pageNum)
	if err != nil {
		return nil, err
	}
	fontBaseNames := make(map[string]string, len(fonts))
	for _, f := range fonts {
		fontBaseNames[f.ResourceName] = f.BaseFont
	}

	content, err := b.PageContent(pageNum)
	if err != nil {
		return nil, err
	}

	ops := interpret.Decode(content)
	decodeFn := func(fontResourceName string, data []byte) string {
		text, derr := b.DecodeText(pageNum, fontResourceName, data)
		if derr != nil {
			return ""
		}
		return text
	}
	spans := interpret.Interpret(ops, fontBaseNames, decodeFn)

	blocks := buildBlocks(spans, opts)

	if opts.ExtractMode != TextOnly && opts.ExtractResources {
		images, ierr := b.PageImages(pageNum)
		if ierr == nil {
			for _, img := range images {
				blocks = append(blocks, model.Block{
					Kind:  model.BlockImage,
					Image: &model.ImageBlock{ResourceID: imageResourceID(pageNum, img.ResourceName)},
				})
			}
		}
	}

	page.Blocks = blocks
	return page, nil
}

// positionedBlock carries a Y coordinate purely to restore top-to-bottom
// reading order once paragraph blocks and table blocks (built from two
// disjoint span sets) are merged back together.
type positionedBlock struct {
	y     float64
	block model.Block
}

func buildBlocks(spans []interpret.TextSpan, opts Options) []model.Block {
	if len(spans) == 0 {
		return nil
	}

	detector := table.New()
	detectedTables, remaining := detector.Detect(spans)

	var positioned []positionedBlock

	if opts.ExtractMode != TextOnly {
		for _, dt := range detectedTables {
			tm := table.ToTableModel(dt)
			positioned = append(positioned, positionedBlock{y: dt.TopY, block: model.TableBlock(tm)})
		}
	} else {
		// TextOnly drops the detected tables: feed every span back
		// into the line grouper so table text still surfaces as prose.
		remaining = spans
	}

	lines := layout.GroupSpansIntoLines(remaining)
	stats := layout.NewFontStatistics()
	for _, l := range lines {
		stats.AddSize(l.FontSize)
	}
	stats.Analyze()
	lines = layout.DetectHeadings(lines, stats)

	for _, blk := range layout.GroupLinesIntoBlocks(lines) {
		if p := convertBlock(blk, opts); p != nil {
			y := 0.0
			if len(blk.Lines) > 0 {
				y = blk.Lines[0].Y
			}
			positioned = append(positioned, positionedBlock{y: y, block: model.ParagraphBlock(p)})
		}
	}

	sort.SliceStable(positioned, func(i, j int) bool { return positioned[i].y > positioned[j].y })

	out := make([]model.Block, len(positioned))
	for i, p := range positioned {
		out[i] = p.block
	}
	return out
}

var (
	bulletPrefixRegex  = regexp.MustCompile(`^[•●○■□◆◇▪▫►◻\-\*]\s+`)
	numberPrefixRegex  = regexp.MustCompile(`^(\d+)[.)]\s+`)
	alphaPrefixRegex   = regexp.MustCompile(`^([a-zA-Z])[.)]\s+`)
	romanPrefixRegex   = regexp.MustCompile(`^([ivxlcdmIVXLCDM]+)[.)]\s+`)
)

func convertBlock(blk layout.Block, opts Options) *model.Paragraph {
	text := blk.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	p := model.WithText(text)
	if opts.ExtractMode == StructureOnly {
		p = model.WithText("")
	}

	switch blk.Kind {
	case layout.HeadingBlock:
		p.Style.HeadingLevel = blk.HeadingLevel
		return p
	}

	if info, ok := detectListMarker(text); ok {
		p.Style.List = &info
	}
	return p
}

// detectListMarker recognizes the common bullet/numbered/lettered/Roman
// prefixes a paragraph-grouped line can start with and, if found, strips it
// is left to the caller; this only reports the ListInfo to attach.
func detectListMarker(text string) (model.ListInfo, bool) {
	if bulletPrefixRegex.MatchString(text) {
		return model.ListInfo{Style: model.ListStyle{Kind: model.ListUnordered, Marker: '-'}}, true
	}
	if m := numberPrefixRegex.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return model.ListInfo{Style: model.ListStyle{Kind: model.ListOrdered, NumberStyle: model.NumberDecimal}, Number: &n}, true
	}
	if m := romanPrefixRegex.FindStringSubmatch(text); m != nil && isRomanNumeral(m[1]) {
		return model.ListInfo{Style: model.ListStyle{Kind: model.ListOrdered, NumberStyle: model.NumberLowerRoman}}, true
	}
	if m := alphaPrefixRegex.FindStringSubmatch(text); m != nil {
		style := model.NumberLowerAlpha
		if m[1] == strings.ToUpper(m[1]) {
			style = model.NumberUpperAlpha
		}
		return model.ListInfo{Style: model.ListStyle{Kind: model.ListOrdered, NumberStyle: style}}, true
	}
	return model.ListInfo{}, false
}

func isRomanNumeral(s string) bool {
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return len(s) > 0
}

func imageResourceID(pageNum int, resourceName string) string {
	return "p" + strconv.Itoa(pageNum) + "-" + resourceName
}

func extractResources(b backend.Backend, pages []int, built []*model.Page) map[string]*model.Resource {
	resources := make(map[string]*model.Resource)
	for _, pageNum := range pages {
		images, err := b.PageImages(pageNum)
		if err != nil {
			continue
		}
		for _, img := range images {
			id := imageResourceID(pageNum, img.ResourceName)
			mimeType := img.MimeType
			if mimeType == "" {
				mimeType = model.DetectMimeType(img.Data)
			}
			res := model.ImageResource(img.Data, mimeType)
			if img.Width > 0 {
				w := img.Width
				res.Width = &w
			}
			if img.Height > 0 {
				h := img.Height
				res.Height = &h
			}
			res.ColorSpace = img.ColorSpace
			res.Filename = uuid.NewString() + "." + res.Extension()
			resources[id] = res
		}
	}
	return resources
}
