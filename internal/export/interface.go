// Package export writes the account list (never secrets) in several formats.
package export

import (
	"fmt"
	"io"

	"github.com/iksnae/valswitch/internal"
)

// Formats lists the accepted format names
var Formats = []string{"jsonl", "json", "yaml", "md"}

// Exporter writes account metadata in one format
type Exporter interface {
	Export(accounts []internal.Account, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
