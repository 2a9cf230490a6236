// Package cli defines the Cobra command tree for the cpkit CLI. Each file in
// this package registers one top-level command (init, validate, build, etc.)
// with the root command. Commands delegate to internal packages for the
// package model, validation, and rendering, and only handle flags, output
// formatting, and exit status.
package cli
