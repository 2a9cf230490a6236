package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cpkit/cpkit/internal/contentpack"
)

var inspectYAML bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectYAML, "yaml", false, "Print the package as a package.yaml source instead of a summary")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <dir>",
	Short: "Summarize an existing manifest.json/content.json pair",
	Long: `Load the manifest.json and content.json in a directory and print a summary
of the manifest and its changes. With --yaml the pair is converted back into a
package.yaml source that 'build' can consume.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, result, err := loadPackage("", args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if inspectYAML {
			data, err := contentpack.MarshalSource(p)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Name:\t%s\n", p.Manifest.Name)
		fmt.Fprintf(w, "Unique ID:\t%s\n", p.Manifest.UniqueID)
		fmt.Fprintf(w, "Author:\t%s\n", p.Manifest.Author)
		fmt.Fprintf(w, "Version:\t%s\n", p.Manifest.Version)
		fmt.Fprintf(w, "Content pack for:\t%s\n", p.Manifest.ContentPackFor.UniqueID)
		if len(p.Manifest.UpdateKeys) > 0 {
			fmt.Fprintf(w, "Update keys:\t%s\n", strings.Join(p.Manifest.UpdateKeys, ", "))
		}
		fmt.Fprintf(w, "Changes:\t%d\n", len(p.Changes))
		w.Flush()

		if len(p.Changes) > 0 {
			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tACTION\tTARGET\tFIELDS\tWHEN")
			for i, c := range p.Changes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", i, c.Action, c.Target, fieldNames(c), len(c.When))
			}
			w.Flush()
		}

		fmt.Fprintln(out)
		printResult(out, packageLabel(p), result)
		if !result.Valid() {
			return errInvalidPackage
		}
		return nil
	},
}

func fieldNames(c contentpack.Patch) string {
	if len(c.Fields) == 0 {
		return "-"
	}
	names := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
