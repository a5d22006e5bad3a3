package preference

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prefopt-project/prefopt/pkg/afero"
)

// maxLineBytes bounds a single JSONL record. Reflection transcripts get
// long, but not megabytes long.
const maxLineBytes = 4 * 1024 * 1024

// ReadJSONL reads line-delimited reflection rows and converts each into a
// Comparison. Blank lines are skipped; a malformed line fails the whole read
// with its line number.
func ReadJSONL(fs afero.Fs, path string) ([]Comparison, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var comparisons []Comparison

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var row ReflectionRow
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		comparison := FromReflectionRow(row)
		if err := comparison.Validate(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		comparisons = append(comparisons, comparison)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	if len(comparisons) == 0 {
		return nil, fmt.Errorf("dataset %s contains no records", path)
	}

	return comparisons, nil
}
