package render

import (
	"encoding/json"

	"unpdf/errors"
	"unpdf/model"
)

// JSONFormat selects indented or compact JSON serialization.
//
// ENUM(pretty, compact)
type JSONFormat int

const (
	JSONPretty JSONFormat = iota
	JSONCompact
)

func (f JSONFormat) String() string {
	if f == JSONCompact {
		return "compact"
	}
	return "pretty"
}

// ToJSON serializes doc to JSON. Resource binary data is always excluded
// (model.Resource.Data is tagged json:"-"); page selection restricts which
// pages appear.
func ToJSON(doc *model.Document, format JSONFormat, selection PageSelection) (string, error) {
	out := doc
	if selection.Kind != SelectAll {
		filtered := *doc
		var pages []*model.Page
		for i, p := range doc.Pages {
			if selection.Includes(i + 1) {
				pages = append(pages, p)
			}
		}
		filtered.Pages = pages
		out = &filtered
	}

	var (
		data []byte
		err  error
	)
	if format == JSONCompact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return "", errors.Wrap(errors.Render, "marshal document to JSON", err)
	}
	return string(data), nil
}
