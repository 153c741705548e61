package model

import "fmt"

// ResourceType classifies an embedded Resource.
//
// ENUM(image, font, attachment, other)
type ResourceType int

const (
	ResourceImage ResourceType = iota
	ResourceFont
	ResourceAttachment
	ResourceOther
)

func (t ResourceType) String() string {
	switch t {
	case ResourceImage:
		return "image"
	case ResourceFont:
		return "font"
	case ResourceAttachment:
		return "attachment"
	default:
		return "other"
	}
}

// Resource is an embedded piece of binary content: an image, an embedded
// font program, or an attached file. Data is never serialized to JSON
// (the field is tagged json:"-").
type Resource struct {
	Data             []byte       `json:"-"`
	MimeType         string       `json:"mimeType,omitempty"`
	Type             ResourceType `json:"type"`
	Filename         string       `json:"filename,omitempty"`
	Width            *int         `json:"width,omitempty"`
	Height           *int         `json:"height,omitempty"`
	ColorSpace       string       `json:"colorSpace,omitempty"`
	BitsPerComponent *int         `json:"bitsPerComponent,omitempty"`
}

// NewResource builds a Resource of the given type.
func NewResource(data []byte, mimeType string, rtype ResourceType) *Resource {
	return &Resource{Data: data, MimeType: mimeType, Type: rtype}
}

// ImageResource builds an image Resource.
func ImageResource(data []byte, mimeType string) *Resource {
	return NewResource(data, mimeType, ResourceImage)
}

// Size returns the length of the resource's raw data.
func (r *Resource) Size() int { return len(r.Data) }

// IsImage reports whether this resource is an image.
func (r *Resource) IsImage() bool { return r.Type == ResourceImage }

// IsFont reports whether this resource is a font.
func (r *Resource) IsFont() bool { return r.Type == ResourceFont }

// SuggestedFilename returns r.Filename if set, else id plus an extension
// inferred from the MIME type.
func (r *Resource) SuggestedFilename(id string) string {
	if r.Filename != "" {
		return r.Filename
	}
	return fmt.Sprintf("%s.%s", id, r.Extension())
}

// Extension maps the resource's MIME type to a conventional file extension.
func (r *Resource) Extension() string {
	switch r.MimeType {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/tiff":
		return "tiff"
	case "image/bmp":
		return "bmp"
	case "image/webp":
		return "webp"
	case "image/jp2", "image/jpeg2000":
		return "jp2"
	case "application/pdf":
		return "pdf"
	case "font/ttf", "font/truetype":
		return "ttf"
	case "font/otf", "font/opentype":
		return "otf"
	case "font/woff":
		return "woff"
	case "font/woff2":
		return "woff2"
	default:
		if r.IsImage() {
			return "raw"
		}
		return "bin"
	}
}

// DetectMimeType inspects magic bytes and returns the matching MIME type, or
// "" when none of the recognized signatures match. This is the fixed,
// spec-mandated fallback table consulted after the filetype library's own
// detection (see backend.sniffMime).
func DetectMimeType(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "image/gif"
	case len(data) >= 4 && (string(data[:4]) == "II*\x00" || string(data[:4]) == "MM\x00*"):
		return "image/tiff"
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return "image/bmp"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	case len(data) >= 8 && string(data[:8]) == "\x00\x00\x00\x0cjP  ":
		return "image/jp2"
	default:
		return ""
	}
}
