package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/cpkit/cpkit/internal/contentpack"
)

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := filepath.Join(t.TempDir(), ".cpkit")
	t.Setenv("CPKIT_HOME", dir)
	return dir
}

func TestDirFromEnv(t *testing.T) {
	dir := setup(t)
	if Dir() != dir {
		t.Errorf("Dir() = %q, want %q", Dir(), dir)
	}
	if FilePath() != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", FilePath())
	}
}

func TestLoadDefaults(t *testing.T) {
	setup(t)
	Load()

	if OutputDir() != "dist" {
		t.Errorf("OutputDir() = %q, want dist", OutputDir())
	}
	if MinimumAPIVersion() != contentpack.DefaultMinimumAPIVersion {
		t.Errorf("MinimumAPIVersion() = %q", MinimumAPIVersion())
	}
	if Author() != "" {
		t.Errorf("Author() = %q, want empty", Author())
	}
}

func TestSetPersists(t *testing.T) {
	setup(t)
	Load()

	if err := Set(KeyAuthor, "Ana"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "author: Ana") {
		t.Errorf("config file = %q", data)
	}

	viper.Reset()
	Load()
	if Author() != "Ana" {
		t.Errorf("Author() after reload = %q, want Ana", Author())
	}
}

func TestEnvOverride(t *testing.T) {
	setup(t)
	t.Setenv("CPKIT_AUTHOR", "EnvAuthor")
	Load()
	if Author() != "EnvAuthor" {
		t.Errorf("Author() = %q, want EnvAuthor", Author())
	}
}

func TestSetUnknownKey(t *testing.T) {
	setup(t)
	Load()
	if err := Set("colour", "blue"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
