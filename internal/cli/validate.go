package cli

import (
	"github.com/spf13/cobra"
)

var (
	validateDir  string
	validateJSON bool
)

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "Validate an existing manifest.json/content.json directory instead of a source file")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the result as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Validate a content pack",
	Long: `Validate a package source file (default: package.yaml) or, with --dir, an existing
manifest.json and content.json pair. Every problem is reported in one pass.
Exits non-zero when the package has errors; warnings do not fail validation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, result, err := loadPackage(sourceArg(args), validateDir)
		if err != nil {
			return err
		}
		logger.Debug("validated", "changes", len(p.Changes), "errors", len(result.Errors), "warnings", len(result.Warnings))

		if validateJSON {
			if err := printResultJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else {
			printResult(cmd.OutOrStdout(), packageLabel(p), result)
		}

		if !result.Valid() {
			return errInvalidPackage
		}
		return nil
	},
}
