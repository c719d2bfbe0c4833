package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"maestro/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/maestro"
	configFileName = "config.yaml"
)

// GetDefaultConfigPathOrPanic returns the default configuration directory.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from the specified directory. A missing
// config.yaml is not an error: defaults plus environment overrides apply.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return applyEnvOverrides(config), nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return applyEnvOverrides(config), nil
}

// applyEnvOverrides layers environment variables over the file-based
// configuration. Environment always wins so credentials never have to be
// written to disk.
func applyEnvOverrides(config Config) Config {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		config.Model.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		config.Model.BaseURL = v
	}
	if v := os.Getenv("MAESTRO_MODEL"); v != "" {
		config.Model.Name = v
	}
	if v := os.Getenv("MAESTRO_ENDPOINT"); v != "" {
		config.Provider.Endpoint = v
	}
	if v := os.Getenv("MAESTRO_TRANSPORT"); v != "" {
		config.Provider.Transport = v
	}
	return config
}
