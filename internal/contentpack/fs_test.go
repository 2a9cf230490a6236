package contentpack

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpkit/cpkit/internal/platform"
)

func TestWriteDir_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Mods", "[CP] Test")

	if err := WriteDir(validPackage(), dir, platform.OS{}); err != nil {
		t.Fatalf("WriteDir() error: %v", err)
	}

	for _, name := range []string{ManifestFileName, ContentFileName} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !json.Valid(data) {
			t.Errorf("%s is not valid JSON:\n%s", name, data)
		}
	}
}

func TestWriteDir_Overwrites(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	p := validPackage()
	if err := WriteDir(p, dir, platform.OS{}); err != nil {
		t.Fatalf("WriteDir() error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		t.Fatal(err)
	}
	want := mustRender(t, p).Manifest
	if string(got) != string(want) {
		t.Errorf("manifest.json not overwritten:\n%s", got)
	}
}

func TestWriteDir_LoadDirRoundTrip(t *testing.T) {
	fs := newMemFS()
	p := validPackage()
	p.Manifest.UpdateKeys = []string{"Nexus:1"}
	p.Changes[0].Set("FromFile", "assets/x.png")

	if err := WriteDir(p, "out", fs); err != nil {
		t.Fatalf("WriteDir() error: %v", err)
	}
	if fs.ensureCt != 1 {
		t.Errorf("EnsureDir called %d times, want 1", fs.ensureCt)
	}

	loaded, result, err := LoadDir("out", fs)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if !result.Valid() {
		t.Errorf("schema issues: %v", result.Errors)
	}

	again := mustRender(t, loaded)
	orig := mustRender(t, p)
	if string(again.Manifest) != string(orig.Manifest) || string(again.Content) != string(orig.Content) {
		t.Errorf("re-rendered documents differ:\n%s\n%s", again.Content, orig.Content)
	}
}

func TestWriteDir_EnsureDirFailure(t *testing.T) {
	fs := newMemFS()
	fs.failOn = "out"
	fs.failErr = errors.New("read-only")

	err := WriteDir(validPackage(), "out", fs)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fs.failErr) {
		t.Errorf("error %v should wrap %v", err, fs.failErr)
	}
	if len(fs.files) != 0 {
		t.Errorf("files written after EnsureDir failure: %v", fs.files)
	}
}

func TestWriteDir_SecondFileFailureKeepsFirst(t *testing.T) {
	fs := newMemFS()
	fs.failOn = filepath.Join("out", ContentFileName)
	fs.failErr = errors.New("disk full")

	err := WriteDir(validPackage(), "out", fs)
	if !errors.Is(err, fs.failErr) {
		t.Fatalf("error = %v, want wrapped %v", err, fs.failErr)
	}
	if _, ok := fs.files[filepath.Join("out", ManifestFileName)]; !ok {
		t.Error("manifest.json should remain after content.json fails")
	}
}

func TestWriteDir_EmptyDraft(t *testing.T) {
	fs := newMemFS()
	if err := WriteDir(NewPackage(), "draft", fs); err != nil {
		t.Fatalf("WriteDir() of empty draft error: %v", err)
	}
	if len(fs.files) != 2 {
		t.Errorf("files = %d, want 2", len(fs.files))
	}
}

func TestLoadDir_MissingFile(t *testing.T) {
	fs := newMemFS()
	if _, _, err := LoadDir("nowhere", fs); err == nil {
		t.Fatal("expected error for missing documents")
	}
}
