package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/valswitch/internal"
)

// JSONExporter writes the accounts as one pretty-printed array
type JSONExporter struct{}

// Export writes accounts as a JSON array; an empty list is "[]"
func (e *JSONExporter) Export(accounts []internal.Account, w io.Writer) error {
	if accounts == nil {
		accounts = []internal.Account{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(accounts)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
