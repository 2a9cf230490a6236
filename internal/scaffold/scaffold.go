package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/cpkit/cpkit/internal/contentpack"
)

const templateSet = "content-pack"

var idUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name              string // e.g., "Spring Flowers"
	Author            string // e.g., "Ana"
	Description       string
	Version           string // Semver, e.g., "1.0.0"
	UniqueID          string // Derived: <Author>.<Name> with unsafe characters removed
	MinimumAPIVersion string
	FrameworkID       string
	SampleTarget      string
	Year              int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
// An empty author becomes "YourName" and an empty minimumAPIVersion the
// package default.
func NewScaffoldData(name, author, minimumAPIVersion string) *ScaffoldData {
	if strings.TrimSpace(author) == "" {
		author = "YourName"
	}
	if minimumAPIVersion == "" {
		minimumAPIVersion = contentpack.DefaultMinimumAPIVersion
	}
	return &ScaffoldData{
		Name:              name,
		Author:            author,
		Description:       fmt.Sprintf("Content Patcher pack: %s", name),
		Version:           "1.0.0",
		UniqueID:          DeriveUniqueID(author, name),
		MinimumAPIVersion: minimumAPIVersion,
		FrameworkID:       contentpack.FrameworkID,
		SampleTarget:      "Mods/" + DeriveUniqueID(author, name) + "/Example",
		Year:              time.Now().Year(),
	}
}

// DeriveUniqueID joins author and name into an "Author.Name" ID, dropping
// characters the ID format does not allow.
func DeriveUniqueID(author, name string) string {
	return idSegment(author, "YourName") + "." + idSegment(name, "ContentPack")
}

func idSegment(s, fallback string) string {
	seg := idUnsafe.ReplaceAllString(s, "")
	if seg == "" {
		return fallback
	}
	return seg
}

// Generate writes the content pack template set into outputDir and
// validates the generated package.yaml.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	templatesDir := path.Join("scaffolds", templateSet)

	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", templateSet, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	funcs := template.FuncMap{"quote": strconv.Quote}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		tmpl, err := template.New(entry.Name()).Funcs(funcs).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	if err := os.MkdirAll(filepath.Join(outputDir, "assets"), 0755); err != nil {
		return nil, fmt.Errorf("creating assets directory: %w", err)
	}

	// Validate the generated source.
	sourceFile := filepath.Join(outputDir, contentpack.SourceFileName)
	p, err := contentpack.LoadSource(sourceFile)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not load generated package: %v", err))
		return result, nil
	}
	valResult := contentpack.Validate(p)
	for _, issue := range valResult.Errors {
		result.Warnings = append(result.Warnings, issue.String())
	}
	for _, issue := range valResult.Warnings {
		result.Warnings = append(result.Warnings, issue.String())
	}

	return result, nil
}
