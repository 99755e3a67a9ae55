// Package config manages user-level settings stored at ~/.pizzly/config.yaml.
// Settings can be overridden with PIZZLY_* environment variables and with the
// CLI's persistent flags; they select the integrations directory, the log
// level and how many descriptor files are loaded in parallel.
package config
