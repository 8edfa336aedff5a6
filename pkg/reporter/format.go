package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDiff Format = "diff"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(name string) (Format, error) {
	switch format := Format(name); format {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatDiff:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff", name)
	}
}

func (f Format) String() string {
	return string(f)
}
