package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cpkit/cpkit/internal/config"
	"github.com/cpkit/cpkit/internal/contentpack"
	"github.com/cpkit/cpkit/internal/scaffold"
)

var (
	initUniqueID   string
	initAuthor     string
	initOutputDir  string
	initMinimumAPI string
)

func init() {
	initCmd.Flags().StringVar(&initUniqueID, "unique-id", "", "Unique ID (default: <Author>.<Name>)")
	initCmd.Flags().StringVar(&initAuthor, "author", "", "Author name (default: author setting)")
	initCmd.Flags().StringVar(&initOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	initCmd.Flags().StringVar(&initMinimumAPI, "minimum-api-version", "", "Minimum Content Patcher API version (default: minimum_api_version setting)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new content pack source",
	Long: `Scaffold a package.yaml source with one sample EditData change, a README,
and an empty assets/ directory.

Examples:
  cpkit init "Spring Flowers" --author Ana
  cpkit init Flowers --unique-id Ana.SpringFlowers --output-dir mods/flowers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("package name must not be blank")
		}

		author := initAuthor
		if author == "" {
			author = config.Author()
		}
		minAPI := initMinimumAPI
		if minAPI == "" {
			minAPI = config.MinimumAPIVersion()
		}

		data := scaffold.NewScaffoldData(name, author, minAPI)
		if initUniqueID != "" {
			if !contentpack.ValidUniqueID(initUniqueID) {
				return fmt.Errorf("invalid unique ID %q: expected <Author>.<Name> using letters, digits, '_', '.', or '-'", initUniqueID)
			}
			data.UniqueID = initUniqueID
			data.SampleTarget = "Mods/" + initUniqueID + "/Example"
		}

		outDir := initOutputDir
		if outDir == "" {
			outDir = filepath.Join(".", slug(name))
		}
		logger.Debug("scaffolding", "dir", outDir, "unique_id", data.UniqueID)

		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		successColor.Fprintf(out, "Created %s in %s/", data.UniqueID, result.OutputDir)
		fmt.Fprintln(out)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		for _, w := range result.Warnings {
			warningColor.Fprintf(out, "! %s", w)
			fmt.Fprintln(out)
		}

		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintf(out, "  1. Edit %s to describe your changes\n", contentpack.SourceFileName)
		fmt.Fprintf(out, "  2. Run '%s build' inside %s\n", rootCmd.Name(), result.OutputDir)
		return nil
	},
}

// slug lower-cases name and joins its words with dashes.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return "content-pack"
	}
	return b.String()
}
