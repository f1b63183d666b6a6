package gen

import (
	"os"
	"path/filepath"
	"strings"
)

const debugSuffix = ".unformatted.go"

// writeDebugUnformatted keeps source that go/format rejected next to the
// intended output, as <name>.unformatted.go. Errors are returned for the
// caller to ignore.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + debugSuffix

	return os.WriteFile(filepath.Join(outDir, name), content, filePerm)
}
