package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentkit-dev/agentkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known setting keys.
const (
	// KeyTemplateDir points at a template directory used instead of the
	// bundled tree.
	KeyTemplateDir = "template_dir"

	// KeyVerbose turns on debug logging.
	KeyVerbose = "verbose"
)

var knownKeys = map[string]bool{
	KeyTemplateDir: true,
	KeyVerbose:     true,
}

// Dir returns the path to the agentkit config directory. AGENTKIT_HOME
// overrides the default of ~/.agentkit.
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

// Load returns a Viper instance reading the config file and AGENTKIT_*
// environment variables. A missing config file is not an error; a file that
// exists but cannot be parsed is.
func Load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyTemplateDir, "")
	v.SetDefault(KeyVerbose, false)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return v, nil
}

// Keys returns the sorted list of recognized setting keys.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateKey returns an error for keys agentkit does not recognize.
func ValidateKey(key string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(v *viper.Viper, key string) string {
	return v.GetString(key)
}

// Set writes a config key-value pair to the config file. The file is
// rewritten from its own contents only; environment overrides and defaults
// are never persisted.
func Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	fileOnly := viper.New()
	fileOnly.SetConfigFile(configFile)
	fileOnly.SetConfigType(fileType)
	if err := fileOnly.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configFile); !os.IsNotExist(statErr) {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	fileOnly.Set(key, value)

	if err := fileOnly.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
