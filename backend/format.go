package backend

import "unpdf/errors"

// Format is the result of sniffing a PDF's header, exposed as a thin public
// helper independent of loading a full document.
type Format struct {
	Version    string
	Linearized bool
}

func (f Format) String() string { return "PDF " + f.Version }

// Detect reads the PDF version from the %PDF-X.Y header at the start of
// data and reports it, or errors.UnknownFormat / errors.UnsupportedVersion.
// The Linearized flag comes from a scan of up to the first 1024 bytes.
func Detect(data []byte) (Format, error) {
	const magic = "%PDF-"
	if len(data) < len(magic)+3 {
		return Format{}, errors.New(errors.UnknownFormat, "header too short to be a PDF")
	}
	if string(data[:len(magic)]) != magic {
		return Format{}, errors.New(errors.UnknownFormat, "missing %PDF- signature")
	}
	version := string(data[len(magic) : len(magic)+3])
	if !isValidVersion(version) {
		return Format{}, errors.UnsupportedVersionError(version)
	}
	return Format{Version: version, Linearized: isLinearized(data)}, nil
}

func isValidVersion(v string) bool {
	if len(v) != 3 {
		return false
	}
	return v[0] >= '0' && v[0] <= '9' && v[1] == '.' && v[2] >= '0' && v[2] <= '9'
}

// isLinearized checks for a /Linearized marker within the leading window the
// caller supplied. This is purely descriptive metadata (SPEC_FULL supplement
// #2) and never gates parsing.
func isLinearized(data []byte) bool {
	window := data
	if len(window) > 1024 {
		window = window[:1024]
	}
	return containsLinearizedTag(window)
}

func containsLinearizedTag(b []byte) bool {
	const tag = "/Linearized"
	if len(b) < len(tag) {
		return false
	}
	for i := 0; i+len(tag) <= len(b); i++ {
		if string(b[i:i+len(tag)]) == tag {
			return true
		}
	}
	return false
}

// IsPDF reports whether data starts with a recognizable PDF header.
func IsPDF(data []byte) bool {
	_, err := Detect(data)
	return err == nil
}
