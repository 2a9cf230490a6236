package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cpkit/cpkit/internal/branding"
	"github.com/cpkit/cpkit/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	noColor bool
)

// logger carries progress and debug output on stderr. Command results go to
// cmd.OutOrStdout().
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: branding.CLIName(),
	Level:  log.WarnLevel,
})

// errInvalidPackage signals a failed validation whose issues were already
// printed.
var errInvalidPackage = errors.New("package is invalid")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds Content Patcher content packs. It validates a package source
against the framework's rules and writes the manifest.json and content.json pair the game loads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
		if noColor {
			color.NoColor = true
		}
		logger.Debug("config loaded", "file", config.FilePath())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errInvalidPackage) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
