// Package config manages user-level settings stored at ~/.cpkit/config.yaml,
// overridable through CPKIT_* environment variables. The settings supply
// defaults for the author name, output directory, and minimum API version
// used by the init and build commands.
package config
