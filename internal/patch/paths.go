package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedPath maps an original source path into the generated mirror:
// the project-root prefix is replaced by the build working directory, so
// the project tree is reproduced under the build directory.
func GeneratedPath(buildDir, projectRoot, file string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(projectRoot), filepath.Clean(file))
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", file, projectRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside project root %s", file, projectRoot)
	}
	return filepath.Join(buildDir, rel), nil
}

// Write writes data to path atomically: a temp file in the target directory
// is renamed over the destination, so a failed invocation never leaves a
// half-written generated file behind. The target directory must already
// exist; a missing directory is a fatal I/O error, not something to mkdir
// around.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gcweave-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
