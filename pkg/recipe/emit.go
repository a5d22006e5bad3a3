package recipe

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal emits the canonical YAML form of the record: fields in declaration
// order, two-space indent. Fields with non-zero framework defaults are always
// emitted so an explicitly cleared value (report_to: []) survives re-parsing;
// only fields whose default is empty are dropped when unset. Parse(Marshal(r))
// yields a record equal to r for every valid r — list order of dataset_splits
// and report_to included, and floats like 5.0e-7 survive without becoming
// strings or losing precision.
func (r *Recipe) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding recipe: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding recipe: %w", err)
	}

	return buf.Bytes(), nil
}
