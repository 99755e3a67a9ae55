// Package cli defines the Cobra command tree for the pizzly CLI. Each file
// registers one top-level command (list, get, check, config, version) with the
// root command. Commands delegate to the registry for loading and validating
// integrations and only handle flag parsing and output formatting.
package cli
