package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/cpkit/cpkit/internal/branding"
	"github.com/cpkit/cpkit/internal/contentpack"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyAuthor            = "author"
	KeyOutputDir         = "output_dir"
	KeyMinimumAPIVersion = "minimum_api_version"
)

// Keys lists every supported setting.
var Keys = []string{KeyAuthor, KeyOutputDir, KeyMinimumAPIVersion}

// Dir returns the config directory: $CPKIT_HOME if set, else ~/.cpkit.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyOutputDir, "dist")
	viper.SetDefault(KeyMinimumAPIVersion, contentpack.DefaultMinimumAPIVersion)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Author returns the default author for new packages.
func Author() string { return Get(KeyAuthor) }

// OutputDir returns the default build output directory.
func OutputDir() string { return Get(KeyOutputDir) }

// MinimumAPIVersion returns the minimum API version for new packages.
func MinimumAPIVersion() string { return Get(KeyMinimumAPIVersion) }

// IsKey reports whether key is a supported setting.
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
