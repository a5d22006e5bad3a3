// Package afero wraps spf13's afero with the small set of helpers the
// agents need for recipe and metrics file handling, so tests can run
// against an in-mem fs.
package afero

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/prefopt-project/prefopt/pkg/logging"
)

type Fs interface {
	afero.Fs
}

func WriteFile(fs Fs, filename string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(fs, filename, data, perm)
}

func ReadFile(fs Fs, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}

func ReadDir(fs Fs, dirname string) ([]os.FileInfo, error) {
	return afero.ReadDir(fs, dirname)
}

// Exists returns true and nil error if the given path for a file or
// directory exists.
func Exists(fs afero.Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}

// DirExists returns true if the given path exists and is a directory.
func DirExists(fs afero.Fs, path string) (bool, error) {
	return afero.DirExists(fs, path)
}

// AtomicFileUpdate updates a file only when its contents changed, writing
// through a temp file and rename so a half-written canonical recipe is never
// observed.
func AtomicFileUpdate(
	fs afero.Fs,
	destDir string,
	destFile string,
	data []byte,
	fileMode os.FileMode,
	log logging.Interface,
) error {
	destPath := filepath.Join(destDir, destFile)
	oldContents, err := afero.ReadFile(fs, destPath)
	if err == nil && bytes.Equal(oldContents, data) {
		return fs.Chmod(destPath, fileMode)
	}

	log.WithField("destPath", destPath).
		Info("Writing file...")

	if isRenameBugged(fs) {
		log.WithField("fsType", fmt.Sprintf("%T", fs)).
			WithField("destPath", destPath).
			Debug("Renaming files in this fs implementation is bugged. " +
				"Skipping atomic rename and just writing into file directly")

		if err := afero.WriteFile(fs, destPath, data, fileMode); err != nil {
			return fmt.Errorf("error writing into a temp file: %v", err)
		}

		return nil
	}

	tmp, err := afero.TempFile(fs, destDir, "."+destFile+"~")
	if err != nil {
		return fmt.Errorf("creating tmp file for atomic write: %v", err)
	}
	defer func() { _ = tmp.Close() }()
	defer func() { _ = fs.Remove(tmp.Name()) }()

	if err := afero.WriteFile(fs, tmp.Name(), data, fileMode); err != nil {
		return fmt.Errorf("error writing into a temp file: %v", err)
	}

	return fs.Rename(tmp.Name(), destPath)
}

// MemMapFs can't rename files that live in subdirectories, so tests fall
// back to a plain write.
func isRenameBugged(fs afero.Fs) bool {
	switch fs.(type) {
	case *afero.MemMapFs:
		return true
	default:
		return false
	}
}
