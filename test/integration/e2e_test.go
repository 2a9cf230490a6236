//go:build integration

package integration_test

import (
	"path/filepath"
	"testing"

	"github.com/cpkit/cpkit/internal/contentpack"
	"github.com/cpkit/cpkit/internal/platform"
	"github.com/cpkit/cpkit/internal/scaffold"
)

// TestFullFlowScaffoldBuildReload tests the complete flow:
// scaffold a source -> edit it -> validate -> write documents -> reload and revalidate.
func TestFullFlowScaffoldBuildReload(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	outDir := filepath.Join(root, "Mods", "[CP] Spring Flowers")

	// Step 1: Scaffold.
	data := scaffold.NewScaffoldData("Spring Flowers", "Ana", "")
	res, err := scaffold.Generate(data, srcDir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Warnings) > 0 {
		t.Fatalf("scaffold warnings: %v", res.Warnings)
	}
	source := filepath.Join(srcDir, contentpack.SourceFileName)
	assertFileExists(t, source)

	// Step 2: Load and extend with an EditData change.
	p, err := contentpack.LoadSource(source)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	edit := contentpack.Patch{Action: contentpack.ActionEditData, Target: "Data/Objects", When: map[string]string{"Season": "spring"}}
	edit.Set("Entries", map[string]any{"472": map[string]any{"Price": 25}})
	p.Changes = append(p.Changes, edit)

	// Step 3: Validate.
	if r := contentpack.Validate(p); !r.Valid() {
		t.Fatalf("Validate: %s", r.Summary())
	}

	// Step 4: Write.
	if err := contentpack.WriteDir(p, outDir, platform.OS{}); err != nil {
		t.Fatalf("WriteDir: %v", err)
	}
	assertOnlyFiles(t, outDir, contentpack.ManifestFileName, contentpack.ContentFileName)
	assertFileContains(t, filepath.Join(outDir, contentpack.ManifestFileName), `"UniqueID": "Ana.SpringFlowers"`)
	assertFileContains(t, filepath.Join(outDir, contentpack.ContentFileName), `"Season": "spring"`)

	// Step 5: Reload and revalidate.
	loaded, schemaResult, err := contentpack.LoadDir(outDir, platform.OS{})
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !schemaResult.Valid() {
		t.Fatalf("schema issues: %s", schemaResult.Summary())
	}
	if r := contentpack.Validate(loaded); !r.Valid() {
		t.Fatalf("reloaded package invalid: %s", r.Summary())
	}
	if len(loaded.Changes) != 2 {
		t.Errorf("reloaded %d changes, want 2", len(loaded.Changes))
	}
}

// TestFullFlowRepairInvalidPackage walks a package from invalid to valid,
// checking that every problem is reported together.
func TestFullFlowRepairInvalidPackage(t *testing.T) {
	src := filepath.Join(t.TempDir(), contentpack.SourceFileName)
	writeFile(t, src, `name: Broken
author: Ana
version: 1.0.0
description: needs fixing
unique_id: AnaBroken
changes:
  - action: EditData
`)

	p, err := contentpack.LoadSource(src)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	r := contentpack.Validate(p)
	wantPaths := []string{"Manifest.UniqueID", "Changes[0].Target"}
	for _, path := range wantPaths {
		if len(r.ErrorsAt(path)) == 0 {
			t.Errorf("missing error at %s; got %s", path, r.Summary())
		}
	}

	p.Manifest.UniqueID = "Ana.Broken"
	p.Changes[0].Target = "Data/Objects"
	r = contentpack.Validate(p)
	if !r.Valid() {
		t.Fatalf("still invalid: %s", r.Summary())
	}
}
