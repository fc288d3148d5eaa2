package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfig holds per-user defaults. It has the same shape as RepoConfig.
type UserConfig = RepoConfig

// UserConfigPath returns the location of the user config file. It honours
// STACKTRAIN_CONFIG, then XDG_CONFIG_HOME, then ~/.config.
func UserConfigPath() (string, error) {
	if path := os.Getenv("STACKTRAIN_CONFIG"); path != "" {
		return path, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stacktrain", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "stacktrain", "config.yaml"), nil
}

// GetUserConfig reads the user configuration. A missing file is empty config.
func GetUserConfig() (*UserConfig, error) {
	path, err := UserConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UserConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", path, err)
	}
	return &config, nil
}
