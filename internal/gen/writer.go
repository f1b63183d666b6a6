package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes the generated files into outputDir, creating it when
// needed. Debug sidecars left by an earlier failed run are removed.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	stale, err := filepath.Glob(filepath.Join(outputDir, "*"+debugSuffix))
	if err != nil {
		return fmt.Errorf("listing debug files: %w", err)
	}

	for _, p := range stale {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("removing %s: %w", filepath.Base(p), err)
		}
	}

	for _, file := range files {
		if err := os.WriteFile(filepath.Join(outputDir, file.Filename), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
