// Package branding provides the CLI's identity values. They are read once
// from the embedded branding.yaml, with built-in defaults for any key the
// file leaves out.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "cpkit",
			DisplayName: "cpkit",
			Description: "Build and validate Content Patcher content packs",
			HomeDir:     ".cpkit",
			EnvPrefix:   "CPKIT",
			GoModule:    "github.com/cpkit/cpkit",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name.
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g. EnvVar("author") is
// "CPKIT_AUTHOR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
