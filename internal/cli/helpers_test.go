package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

const (
	validSource   = "../contentpack/testdata/valid-package.yaml"
	invalidSource = "../contentpack/testdata/invalid-package.yaml"
)

// execute runs the root command with args in an isolated config home and
// returns everything written to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CPKIT_HOME", filepath.Join(t.TempDir(), ".cpkit"))
	return executeWithHome(t, args...)
}

// executeWithHome runs the root command against the current CPKIT_HOME.
func executeWithHome(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	viper.Reset()
	t.Cleanup(viper.Reset)
	color.NoColor = true

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

// resetFlags clears flag variables left over from a previous run.
func resetFlags() {
	verbose, noColor = false, false
	validateDir, validateJSON = "", false
	buildOut, buildDraft, buildDiff = "", false, false
	inspectYAML = false
	initUniqueID, initAuthor, initOutputDir, initMinimumAPI = "", "", "", ""
	versionShort, versionJSON = false, false
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
