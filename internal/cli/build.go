package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cpkit/cpkit/internal/config"
	"github.com/cpkit/cpkit/internal/contentpack"
	"github.com/cpkit/cpkit/internal/platform"
	"github.com/cpkit/cpkit/internal/preview"
)

var (
	buildOut   string
	buildDraft bool
	buildDiff  bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (default: output_dir setting, \"dist\")")
	buildCmd.Flags().BoolVar(&buildDraft, "draft", false, "Write the documents even if validation fails")
	buildCmd.Flags().BoolVar(&buildDiff, "diff", false, "Show changes against the existing files instead of writing")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [source]",
	Short: "Validate a package source and write manifest.json and content.json",
	Long: `Validate a package source file (default: package.yaml) and write the
manifest.json and content.json pair into the output directory, creating it if
needed and overwriting existing files.

Examples:
  cpkit build
  cpkit build flowers.yaml --out "Mods/[CP] Spring Flowers"
  cpkit build --draft --diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, result, err := loadPackage(sourceArg(args), "")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !result.Valid() || len(result.Warnings) > 0 {
			printResult(out, packageLabel(p), result)
		}
		if !result.Valid() && !buildDraft {
			return errInvalidPackage
		}

		docs, err := contentpack.Render(p)
		if err != nil {
			return err
		}

		dir := resolveBuildDir()
		if buildDiff {
			return printDiff(cmd, dir, docs)
		}

		logger.Info("writing package", "dir", dir)
		if err := docs.WriteDir(dir, platform.OS{}); err != nil {
			return err
		}
		successColor.Fprintf(out, "Built %s into %s/", packageLabel(p), dir)
		fmt.Fprintln(out)
		if !result.Valid() {
			warningColor.Fprintln(out, "Draft build: the package has errors and will not load as-is.")
		}
		return nil
	},
}

func resolveBuildDir() string {
	if buildOut != "" {
		return buildOut
	}
	if dir := config.OutputDir(); dir != "" {
		return dir
	}
	return "dist"
}

// printDiff compares the rendered documents with those already in dir.
func printDiff(cmd *cobra.Command, dir string, docs *contentpack.Documents) error {
	fsys := platform.OS{}
	changed := false
	for _, doc := range []struct {
		name string
		data []byte
	}{
		{contentpack.ManifestFileName, docs.Manifest},
		{contentpack.ContentFileName, docs.Content},
	} {
		existing, err := fsys.ReadFile(filepath.Join(dir, doc.name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		d := preview.Diff(doc.name, string(existing), string(doc.data))
		if !d.Changed() {
			continue
		}
		changed = true
		printFileDiff(cmd.OutOrStdout(), d)
	}
	if !changed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date.\n", dir)
	}
	return nil
}
