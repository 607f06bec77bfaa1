package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the report as a YAML document.
func EncodeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
