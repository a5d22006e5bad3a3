package launch_agent

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/prefopt-project/prefopt/pkg/afero"
)

var checkpointDirPattern = regexp.MustCompile(`^checkpoint-(\d+)$`)

// LatestCheckpoint scans outputDir for trainer checkpoint directories
// (checkpoint-<step>) and returns the path of the one with the highest step.
// A missing output directory just means there is nothing to resume from.
func LatestCheckpoint(fs afero.Fs, outputDir string) (string, bool, error) {
	exists, err := afero.DirExists(fs, outputDir)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	entries, err := afero.ReadDir(fs, outputDir)
	if err != nil {
		return "", false, err
	}

	bestStep := -1
	bestName := ""
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := checkpointDirPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		step, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if step > bestStep {
			bestStep = step
			bestName = entry.Name()
		}
	}

	if bestStep < 0 {
		return "", false, nil
	}

	return filepath.Join(outputDir, bestName), true, nil
}
