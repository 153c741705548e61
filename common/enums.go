// Package common holds small enums shared between the CLI and the library
// packages, kept separate so a change to one doesn't require touching the
// config package's validation tags.
package common

// OutputFormat selects what the CLI renders a parsed document to.
// ENUM(markdown, text, json)
type OutputFormat int

const (
	OutputFormatMarkdown OutputFormat = iota
	OutputFormatText
	OutputFormatJSON
)

func (o OutputFormat) String() string {
	switch o {
	case OutputFormatText:
		return "text"
	case OutputFormatJSON:
		return "json"
	default:
		return "markdown"
	}
}

// OutputFormatNames lists the accepted --to values, in declaration order.
func OutputFormatNames() []string {
	return []string{
		OutputFormatMarkdown.String(),
		OutputFormatText.String(),
		OutputFormatJSON.String(),
	}
}

// ParseOutputFormat maps a --to flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch s {
	case "markdown", "md":
		return OutputFormatMarkdown, true
	case "text", "txt":
		return OutputFormatText, true
	case "json":
		return OutputFormatJSON, true
	default:
		return 0, false
	}
}

// Ext returns the conventional file extension for writing output of this
// format to disk.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatText:
		return ".txt"
	case OutputFormatJSON:
		return ".json"
	default:
		return ".md"
	}
}
