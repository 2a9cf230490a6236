package contentpack

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/cpkit/cpkit/internal/validation"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

// validPackage is the reference package: it validates with no errors.
func validPackage() *Package {
	p := NewPackage()
	p.Manifest.Name = "Test"
	p.Manifest.Author = "A"
	p.Manifest.Version = "1.0.0"
	p.Manifest.Description = "d"
	p.Manifest.UniqueID = "Author.Test"
	p.Changes = []Patch{{Action: ActionLoad, Target: "Assets/x.png"}}
	return p
}

func errorPaths(r *validation.Result) []string {
	paths := make([]string, len(r.Errors))
	for i, issue := range r.Errors {
		paths[i] = issue.FieldPath
	}
	return paths
}

func hasError(r *validation.Result, path, code string) bool {
	for _, issue := range r.Errors {
		if issue.FieldPath == path && (code == "" || issue.Code == code) {
			return true
		}
	}
	return false
}

// memFS is an in-memory FileSystem.
type memFS struct {
	dirs     map[string]bool
	files    map[string][]byte
	failOn   string
	failErr  error
	ensureCt int
}

func newMemFS() *memFS {
	return &memFS{dirs: map[string]bool{}, files: map[string][]byte{}}
}

func (m *memFS) EnsureDir(path string) error {
	m.ensureCt++
	if m.failOn == path {
		return m.failErr
	}
	m.dirs[path] = true
	return nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	if m.failOn == path {
		return m.failErr
	}
	if !m.dirs[filepath.Dir(path)] {
		return fs.ErrNotExist
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found: " + path)
	}
	return data, nil
}

func mustRender(t *testing.T, p *Package) *Documents {
	t.Helper()
	docs, err := Render(p)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return docs
}
