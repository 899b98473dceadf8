package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/valswitch/internal"
)

// JSONLExporter writes one account per line
type JSONLExporter struct{}

// Export writes each account as a single JSON line
func (e *JSONLExporter) Export(accounts []internal.Account, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, a := range accounts {
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode account %s: %w", a.ID, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
