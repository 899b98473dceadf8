package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/valswitch/internal"
)

// MarkdownExporter writes the accounts as a Markdown table
type MarkdownExporter struct{}

// Export writes a heading and one table row per account
func (e *MarkdownExporter) Export(accounts []internal.Account, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Accounts\n\n")
	_, _ = fmt.Fprintf(w, "**Total:** %d\n\n", len(accounts))

	if len(accounts) == 0 {
		_, _ = fmt.Fprintf(w, "_No accounts stored._\n")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| Name | Region | ID | Added | Last used |\n")
	_, _ = fmt.Fprintf(w, "|------|--------|----|-------|-----------|\n")
	for _, a := range accounts {
		lastUsed := "never"
		if a.LastUsedAt != nil {
			lastUsed = a.LastUsedAt.UTC().Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(w, "| %s | %s | `%s` | %s | %s |\n",
			escapeCell(a.DisplayName),
			a.Region,
			a.ID,
			a.CreatedAt.UTC().Format(time.RFC3339),
			lastUsed,
		)
	}

	return nil
}

// escapeCell keeps user text from breaking the table layout
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	return strings.TrimSpace(text)
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
