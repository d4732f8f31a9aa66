package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kodama-kanban/kodama/internal/mailer"
)

// Config represents the application configuration.
type Config struct {
	// DataPath overrides the default board database location
	// (~/.kodama/kodama.db).
	DataPath string `yaml:"data_path"`

	// SMTP configures reminder delivery. Left empty, reminders are logged
	// instead of sent.
	SMTP mailer.SMTPConfig `yaml:"smtp"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaults(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func defaults() *Config {
	return &Config{
		KeyMappings: DefaultKeyMappings(),
	}
}

// applyDefaults fills in any key mappings missing from the config file.
func (c *Config) applyDefaults() {
	def := DefaultKeyMappings()
	c.KeyMappings.mergeFrom(def)
}

// getConfigPath returns the path to the config file, preferring
// XDG_CONFIG_HOME over ~/.config.
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "kodama", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kodama", "config.yaml"), nil
}
