package export

import (
	"io"

	"github.com/iksnae/valswitch/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the accounts as a YAML document
type YAMLExporter struct{}

// yamlDocument wraps the list so the file is self-describing
type yamlDocument struct {
	Accounts []internal.Account `yaml:"accounts"`
}

// Export writes accounts under a top-level "accounts" key
func (e *YAMLExporter) Export(accounts []internal.Account, w io.Writer) error {
	if accounts == nil {
		accounts = []internal.Account{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(yamlDocument{Accounts: accounts})
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
