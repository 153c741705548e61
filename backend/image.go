package backend

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/ledongthuc/pdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageXObject is one raster image object found in a page's /XObject
// resource dictionary, still carrying its raw (PDF-filtered) stream bytes.
type ImageXObject struct {
	ResourceName string
	Data         []byte
	Width        int
	Height       int
	ColorSpace   string
	MimeType     string // best-effort; "" when sniffing fails
}

// PageImages walks the page's /XObject resources and returns every entry
// whose /Subtype is /Image, per §4.? resource extraction. A single
// unreadable stream is skipped rather than failing the whole page — image
// extraction is always best-effort.
func (b *pdfBackend) PageImages(page int) ([]ImageXObject, error) {
	v, err := b.pageValue(page)
	if err != nil {
		return nil, err
	}
	resources := inheritedKey(v, "Resources")
	if resources.IsNull() {
		return nil, nil
	}
	xobjects := resources.Key("XObject")
	if xobjects.IsNull() {
		return nil, nil
	}

	var out []ImageXObject
	for _, name := range xobjects.Keys() {
		dict := xobjects.Key(name)
		if dict.Key("Subtype").Name() != "Image" {
			continue
		}
		img, ok := decodeImageXObject(name, dict)
		if ok {
			out = append(out, img)
		}
	}
	return out, nil
}

func decodeImageXObject(name string, dict pdf.Value) (ImageXObject, bool) {
	data, err := readStream(dict)
	if err != nil || len(data) == 0 {
		return ImageXObject{}, false
	}

	img := ImageXObject{ResourceName: name, Data: data}
	if w := dict.Key("Width"); !w.IsNull() {
		img.Width = int(w.Int64())
	}
	if h := dict.Key("Height"); !h.IsNull() {
		img.Height = int(h.Int64())
	}
	if cs := dict.Key("ColorSpace"); !cs.IsNull() {
		img.ColorSpace = cs.Name()
	}

	img.MimeType = sniffMime(data)

	// The decoded pixel dimensions (when decodable) are more reliable than
	// the dictionary's /Width /Height for anything re-encoded along the
	// way; imaging.Decode also applies EXIF auto-orientation.
	if decoded, derr := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); derr == nil {
		bounds := decoded.Bounds()
		img.Width, img.Height = bounds.Dx(), bounds.Dy()
	}

	return img, true
}

// sniffMime detects a MIME type from magic bytes with the filetype library
// and returns "" when it finds no match; parse then falls back to
// model.DetectMimeType's fixed table.
func sniffMime(data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return ""
}
