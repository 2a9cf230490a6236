package contentpack

import (
	"fmt"
	"path/filepath"

	"github.com/cpkit/cpkit/internal/validation"
)

// FileSystem is the narrow filesystem surface the package needs. The
// platform package provides the OS-backed implementation.
type FileSystem interface {
	// EnsureDir creates path and any missing parents.
	EnsureDir(path string) error
	// WriteFile replaces the file at path with data, all or nothing.
	WriteFile(path string, data []byte) error
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)
}

// WriteDir renders p and writes manifest.json and content.json into dir,
// creating it if needed and overwriting existing files. Each file is written
// independently; a failure on the second leaves the first in place.
func WriteDir(p *Package, dir string, fsys FileSystem) error {
	docs, err := Render(p)
	if err != nil {
		return err
	}
	return docs.WriteDir(dir, fsys)
}

// WriteDir writes an already rendered pair into dir.
func (d *Documents) WriteDir(dir string, fsys FileSystem) error {
	if err := fsys.EnsureDir(dir); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{ManifestFileName, d.Manifest},
		{ContentFileName, d.Content},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := fsys.WriteFile(path, f.data); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// LoadDir reads an existing manifest.json and content.json pair from dir.
// See ParseDocuments for how schema problems are reported.
func LoadDir(dir string, fsys FileSystem) (*Package, *validation.Result, error) {
	manifest, err := fsys.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", ManifestFileName, err)
	}
	content, err := fsys.ReadFile(filepath.Join(dir, ContentFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", ContentFileName, err)
	}
	return ParseDocuments(manifest, content)
}
