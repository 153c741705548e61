// Package backend isolates the concrete PDF object library
// (github.com/ledongthuc/pdf) from everything downstream: the content-stream
// interpreter, layout analysis, and table detection never see a pdf.Value,
// only the four primitives spec'd in §4.1 (pages, page fonts, raw page
// content bytes, and best-effort text decoding).
package backend

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ledongthuc/pdf"

	"unpdf/errors"
	"unpdf/model"
)

// FontInfo is one entry of a page's font resource dictionary.
type FontInfo struct {
	ResourceName string // key in the page's /Font dictionary, e.g. "F1"
	BaseFont     string // e.g. "Helvetica-Bold"
}

// Info carries the document-level facts extractInfo reads from the trailer:
// the /Info dictionary fields and whether an /Encrypt entry is present.
// PDFVersion and Tagged are not filled in by any Load function and stay at
// their zero values; the page count comes from Pages.
type Info struct {
	Title      string
	Author     string
	Subject    string
	Keywords   string
	Creator    string
	Producer   string
	Created    time.Time
	Modified   time.Time
	PDFVersion string
	Encrypted  bool
	Tagged     bool
}

// Backend is the facade every downstream package depends on. pdfBackend is
// the only implementation; the interface exists so interpret/layout/table
// code and their tests can be exercised against a fake.
type Backend interface {
	// Pages returns every page number, 1-indexed, in document order.
	Pages() []int
	// PageSize returns a page's MediaBox width/height in points.
	PageSize(page int) (width, height float64, err error)
	// PageRotation returns a page's /Rotate value normalized to {0,90,180,270}.
	PageRotation(page int) (int, error)
	// PageFonts returns the page's font resource entries.
	PageFonts(page int) ([]FontInfo, error)
	// PageContent returns the fully decompressed content stream bytes for a
	// page, concatenating a Contents array with a single space per entry.
	PageContent(page int) ([]byte, error)
	// PageImages returns every raster image XObject referenced by the
	// page's resource dictionary.
	PageImages(page int) ([]ImageXObject, error)
	// DecodeText turns raw string-operand bytes into Unicode text using the
	// named font's encoding when available, else the fallback ladder
	// (UTF-16BE via BOM, UTF-8, Latin-1).
	DecodeText(page int, fontName string, data []byte) (string, error)
	// Info returns the document-level metadata and container state.
	Info() Info
	// Outline returns the document's bookmark tree, or nil when it has none.
	Outline() *model.Outline
	// Close releases the underlying file handle, if any.
	Close() error
}

type pdfBackend struct {
	file   *os.File // nil when loaded from an in-memory byte slice
	reader *pdf.Reader
	info   Info
}

// LoadFile opens a PDF from a filesystem path.
func LoadFile(path string, opts LoadOptions) (Backend, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, wrapOpenErr(err)
	}
	b := &pdfBackend{file: f, reader: reader}
	b.info = extractInfo(reader)
	return b, nil
}

// LoadBytes opens a PDF already held in memory.
func LoadBytes(data []byte, opts LoadOptions) (Backend, error) {
	if _, err := Detect(data); err != nil {
		return nil, err
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, wrapOpenErr(err)
	}
	b := &pdfBackend{reader: reader}
	b.info = extractInfo(reader)
	return b, nil
}

// LoadReader opens a PDF from an arbitrary io.Reader by buffering it fully;
// ledongthuc/pdf itself requires an io.ReaderAt and a known size.
func LoadReader(r io.Reader, opts LoadOptions) (Backend, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.Io, "reading PDF stream", err)
	}
	return LoadBytes(data, opts)
}

func wrapOpenErr(err error) error {
	msg := err.Error()
	switch {
	case containsFold(msg, "decrypt") || containsFold(msg, "encrypt"):
		return errors.Wrap(errors.Encrypted, "opening PDF", err)
	case containsFold(msg, "password"):
		return errors.Wrap(errors.InvalidPassword, "opening PDF", err)
	default:
		return errors.Wrap(errors.Corrupted, "opening PDF", err)
	}
}

func containsFold(s, substr string) bool {
	return bytes.Contains(bytes.ToLower([]byte(s)), []byte(substr))
}

func extractInfo(reader *pdf.Reader) Info {
	var info Info
	trailer := reader.Trailer()
	if trailer.IsNull() {
		return info
	}
	if enc := trailer.Key("Encrypt"); !enc.IsNull() {
		info.Encrypted = true
	}
	dict := trailer.Key("Info")
	if dict.IsNull() {
		return info
	}
	info.Title = textOf(dict.Key("Title"))
	info.Author = textOf(dict.Key("Author"))
	info.Subject = textOf(dict.Key("Subject"))
	info.Keywords = textOf(dict.Key("Keywords"))
	info.Creator = textOf(dict.Key("Creator"))
	info.Producer = textOf(dict.Key("Producer"))
	info.Created = parsePDFDate(textOf(dict.Key("CreationDate")))
	info.Modified = parsePDFDate(textOf(dict.Key("ModDate")))
	return info
}

func textOf(v pdf.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.Text()
}

// parsePDFDate parses the PDF date string form D:YYYYMMDDHHmmSS. Any portion
// beyond the year is optional; an unparseable value yields the zero time,
// never an error (metadata dates are best-effort, per §3).
func parsePDFDate(s string) time.Time {
	if len(s) >= 2 && s[:2] == "D:" {
		s = s[2:]
	}
	layouts := []string{"20060102150405", "200601021504", "2006010215", "20060102", "200601", "2006"}
	for _, layout := range layouts {
		if len(s) >= len(layout) {
			if t, err := time.Parse(layout, s[:len(layout)]); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

func (b *pdfBackend) Info() Info { return b.info }

func (b *pdfBackend) Close() error {
	if b.file != nil {
		return b.file.Close()
	}
	return nil
}

func (b *pdfBackend) Pages() []int {
	n := b.reader.NumPage()
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		if !b.reader.Page(i).V.IsNull() {
			out = append(out, i)
		}
	}
	return out
}

func (b *pdfBackend) pageValue(page int) (pdf.Value, error) {
	p := b.reader.Page(page)
	if p.V.IsNull() {
		return pdf.Value{}, errors.PageRange(page, b.reader.NumPage())
	}
	return p.V, nil
}

func (b *pdfBackend) PageSize(page int) (float64, float64, error) {
	v, err := b.pageValue(page)
	if err != nil {
		return 0, 0, err
	}
	box := inheritedKey(v, "MediaBox")
	if box.IsNull() || box.Len() != 4 {
		return 612, 792, nil // US Letter default, matching model.Letter
	}
	llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
	urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
	return urx - llx, ury - lly, nil
}

func (b *pdfBackend) PageRotation(page int) (int, error) {
	v, err := b.pageValue(page)
	if err != nil {
		return 0, err
	}
	rot := inheritedKey(v, "Rotate")
	if rot.IsNull() {
		return 0, nil
	}
	r := int(rot.Int64()) % 360
	if r < 0 {
		r += 360
	}
	// Round down to a multiple of 90 rather than trust malformed data.
	r = (r / 90) * 90
	if r != 0 && r != 90 && r != 180 && r != 270 {
		r = 0
	}
	return r, nil
}

// inheritedKey walks /Parent links, matching how page attributes such as
// /MediaBox and /Rotate are allowed to live on an ancestor Pages node.
func inheritedKey(v pdf.Value, key string) pdf.Value {
	cur := v
	for depth := 0; depth < 32; depth++ {
		if k := cur.Key(key); !k.IsNull() {
			return k
		}
		parent := cur.Key("Parent")
		if parent.IsNull() {
			break
		}
		cur = parent
	}
	return pdf.Value{}
}

func (b *pdfBackend) PageFonts(page int) ([]FontInfo, error) {
	v, err := b.pageValue(page)
	if err != nil {
		return nil, err
	}
	resources := inheritedKey(v, "Resources")
	if resources.IsNull() {
		return nil, nil
	}
	fonts := resources.Key("Font")
	if fonts.IsNull() {
		return nil, nil
	}
	keys := fonts.Keys()
	out := make([]FontInfo, 0, len(keys))
	for _, name := range keys {
		dict := fonts.Key(name)
		base := "Unknown"
		if bf := dict.Key("BaseFont"); !bf.IsNull() {
			base = bf.Name()
		}
		out = append(out, FontInfo{ResourceName: name, BaseFont: base})
	}
	return out, nil
}

func (b *pdfBackend) PageContent(page int) ([]byte, error) {
	v, err := b.pageValue(page)
	if err != nil {
		return nil, err
	}
	contents := v.Key("Contents")
	if contents.IsNull() {
		return nil, nil
	}
	if contents.Len() > 0 {
		var buf bytes.Buffer
		for i := 0; i < contents.Len(); i++ {
			part, perr := readStream(contents.Index(i))
			if perr != nil {
				return nil, errors.Wrap(errors.PdfParse, fmt.Sprintf("decoding content stream %d", i), perr)
			}
			buf.Write(part)
			buf.WriteByte(' ')
		}
		return buf.Bytes(), nil
	}
	data, rerr := readStream(contents)
	if rerr != nil {
		return nil, errors.Wrap(errors.PdfParse, "decoding content stream", rerr)
	}
	return data, nil
}

func readStream(v pdf.Value) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panic reading stream: %v", r)
		}
	}()
	rc := v.Reader()
	if rc == nil {
		return nil, nil
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
