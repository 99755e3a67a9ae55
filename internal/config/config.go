package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pizzly-labs/pizzly/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each maps to an env var, e.g. PIZZLY_INTEGRATIONS_DIR.
const (
	KeyIntegrationsDir = "integrations_dir"
	KeyLogLevel        = "log_level"
	KeyLoadConcurrency = "load_concurrency"
)

const (
	DefaultIntegrationsDir = "integrations"
	DefaultLogLevel        = "info"
	DefaultLoadConcurrency = 8
)

// Dir returns the path to the config directory (~/.pizzly/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pizzly/config.yaml).
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

	viper.SetDefault(KeyIntegrationsDir, DefaultIntegrationsDir)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyLoadConcurrency, DefaultLoadConcurrency)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IntegrationsDir returns the directory scanned for descriptor files.
func IntegrationsDir() string {
	return viper.GetString(KeyIntegrationsDir)
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// LoadConcurrency returns how many descriptor files may load in parallel.
func LoadConcurrency() int {
	return viper.GetInt(KeyLoadConcurrency)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
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
