package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/prefopt-project/prefopt/pkg/afero"
)

// Parse decodes a single YAML document into a Recipe on top of Default().
// Unknown top-level keys are errors: a typo'd hyperparameter silently
// falling back to its default is the worst possible failure mode for a
// training run.
func Parse(data []byte) (*Recipe, error) {
	r := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty recipe document")
		}
		return nil, fmt.Errorf("decoding recipe: %w", err)
	}

	// A recipe file holds exactly one record.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("recipe file contains more than one document")
	}

	return r, nil
}

// Load reads and parses the recipe at path.
func Load(fs afero.Fs, path string) (*Recipe, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", path, err)
	}

	return r, nil
}
