// Package artifact writes the normalized grammar document and installs it
// into the code generator's input directory.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/grammata/esgrammar/normalize"
)

// Write serializes doc to path, creating parent directories as needed.
func Write(fs afero.Fs, path string, doc *normalize.Document) error {
	b, err := doc.MarshalIndent()
	if err != nil {
		return fmt.Errorf("serializing grammar document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := afero.WriteFile(fs, path, b, 0o644); err != nil {
		return fmt.Errorf("writing grammar document: %w", err)
	}
	return nil
}

// Install copies the artifact at path into destDir under its base name.
// The destination is removed first so no stale content survives when the
// new artifact is smaller or shaped differently.
func Install(fs afero.Fs, path, destDir string) error {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading grammar artifact: %w", err)
	}
	if err := fs.MkdirAll(destDir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := fs.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale artifact: %w", err)
	}
	if err := afero.WriteFile(fs, dest, b, 0o644); err != nil {
		return fmt.Errorf("installing grammar artifact: %w", err)
	}
	return nil
}
