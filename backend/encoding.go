package backend

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText implements the §4.1 fallback ladder: the named font's simple
// encoding when it names one we recognize, else UTF-16BE (BOM-detected),
// else UTF-8, else Latin-1 byte-to-codepoint (always lossless).
func (b *pdfBackend) DecodeText(page int, fontName string, data []byte) (string, error) {
	if enc := b.simpleEncodingName(page, fontName); enc != "" {
		if cm := charmapFor(enc); cm != nil {
			out, err := cm.NewDecoder().String(string(data))
			if err == nil {
				return out, nil
			}
		}
	}
	return decodeTextFallback(data), nil
}

func (b *pdfBackend) simpleEncodingName(page int, fontName string) string {
	v, err := b.pageValue(page)
	if err != nil {
		return ""
	}
	resources := inheritedKey(v, "Resources")
	if resources.IsNull() {
		return ""
	}
	fonts := resources.Key("Font")
	if fonts.IsNull() {
		return ""
	}
	dict := fonts.Key(fontName)
	if dict.IsNull() {
		return ""
	}
	enc := dict.Key("Encoding")
	if enc.IsNull() {
		return ""
	}
	if name := enc.Name(); name != "" {
		return name
	}
	// Encoding may be a dictionary with a /BaseEncoding entry rather than a
	// bare name.
	if base := enc.Key("BaseEncoding"); !base.IsNull() {
		return base.Name()
	}
	return ""
}

func charmapFor(name string) *charmap.Charmap {
	switch name {
	case "WinAnsiEncoding":
		return charmap.Windows1252
	case "MacRomanEncoding":
		return charmap.Macintosh
	default:
		return nil
	}
}

// decodeTextFallback applies the three-step ladder when no font encoding is
// known: UTF-16BE (FE FF BOM), UTF-8, Latin-1.
func decodeTextFallback(data []byte) string {
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16BE(data[2:])
	}
	if isValidUTF8(data) {
		return string(data)
	}
	return decodeLatin1(data)
}

func decodeUTF16BE(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}

func isValidUTF8(data []byte) bool {
	return strings.ToValidUTF8(string(data), "�") == string(data)
}

func decodeLatin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
