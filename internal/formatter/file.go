package formatter

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes rendered output to path, creating the parent directory if
// needed and replacing any previous content of the file
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
